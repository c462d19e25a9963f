package golix

import (
	"crypto/sha512"
	"crypto/subtle"
)

// AddressAlgo computes and verifies the content address used to build a
// GUID. Algo 0 is the reserved, inoperative test algorithm: it ignores
// its input entirely and always returns the symbolic sentinel address.
type AddressAlgo interface {
	ID() uint8
	Len() int
	Compute(data []byte) []byte
	Verify(address, data []byte) error
}

type addressAlgo0 struct{}

func (addressAlgo0) ID() uint8 { return 0 }
func (addressAlgo0) Len() int  { return len(symbolicAddress) }
func (addressAlgo0) Compute(data []byte) []byte {
	return append([]byte(nil), symbolicAddress...)
}
func (addressAlgo0) Verify(address, data []byte) error { return nil }

type addressAlgo1 struct{}

func (addressAlgo1) ID() uint8 { return 1 }
func (addressAlgo1) Len() int  { return sha512.Size }
func (addressAlgo1) Compute(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}
func (addressAlgo1) Verify(address, data []byte) error {
	want := addressAlgo1{}.Compute(data)
	if len(want) != len(address) || subtle.ConstantTimeCompare(want, address) != 1 {
		return ErrAddressMismatch
	}
	return nil
}

var addressAlgos = map[uint8]AddressAlgo{
	0: addressAlgo0{},
	1: addressAlgo1{},
}

// AddressAlgoFor looks up a registered address algorithm by id.
func AddressAlgoFor(id uint8) (AddressAlgo, error) {
	a, ok := addressAlgos[id]
	if !ok {
		return nil, withDetail(ErrUnknownAddressAlgo, itoa(int(id)))
	}
	return a, nil
}

// Address computes the content address of data under the given
// address-algorithm id.
func Address(algoID uint8, data []byte) ([]byte, error) {
	a, err := AddressAlgoFor(algoID)
	if err != nil {
		return nil, err
	}
	return a.Compute(data), nil
}

// VerifyAddress recomputes the address of data and constant-time
// compares it against address, returning ErrAddressMismatch on
// disagreement.
func VerifyAddress(algoID uint8, address, data []byte) error {
	a, err := AddressAlgoFor(algoID)
	if err != nil {
		return err
	}
	return a.Verify(address, data)
}
