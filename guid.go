package golix

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// symbolicAddress is the fixed sentinel address used by the reserved,
// test-only address algorithm 0. It deliberately has no cryptographic
// meaning.
var symbolicAddress = bytes.Repeat([]byte{0xAA}, 64)

// GUID globally identifies an object or an identity: a pair of an
// address-algorithm id and the fixed-length address it produced.
// Equality and hashing are over the concatenation algo_id || address.
type GUID struct {
	Algo    uint8
	Address []byte
}

// SymbolicGUID returns the reserved algo-0 GUID used for tests and
// placeholders.
func SymbolicGUID() GUID {
	return GUID{Algo: 0, Address: append([]byte(nil), symbolicAddress...)}
}

// Bytes returns algo_id || address, the quantity equality and hashing
// are defined over.
func (g GUID) Bytes() []byte {
	out := make([]byte, 0, 1+len(g.Address))
	out = append(out, g.Algo)
	out = append(out, g.Address...)
	return out
}

// Key returns a value usable as a map key for this GUID.
func (g GUID) Key() string { return string(g.Bytes()) }

// Equal reports whether two GUIDs identify the same object.
func (g GUID) Equal(o GUID) bool {
	return g.Algo == o.Algo && bytes.Equal(g.Address, o.Address)
}

// IsZero reports whether g is the unset GUID value.
func (g GUID) IsZero() bool { return g.Algo == 0 && g.Address == nil }

// String renders the GUID for logs and error messages only — never use
// this for wire encoding.
func (g GUID) String() string {
	return fmt.Sprintf("%02x:%s", g.Algo, hex.EncodeToString(g.Address))
}
