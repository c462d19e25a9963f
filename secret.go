package golix

import (
	"bytes"
	"encoding/binary"
)

const secretMagic = "SH"

// SecretVersionLatest is the only registered Secret wire version.
const SecretVersionLatest uint16 = 2

var secretVersions = map[uint16]bool{2: true}

// Secret is a versioned, self-describing symmetric key plus optional
// seed (nonce). It is typically minted fresh per GEOC by a FirstParty,
// handed to the caller for durable storage, and passed back to decrypt.
type Secret struct {
	Version uint16
	Cipher  uint8
	Key     []byte
	Seed    []byte
}

// NewSecret validates key/seed lengths against cipher's length table and
// builds a Secret at the latest wire version.
func NewSecret(cipher uint8, key, seed []byte) (*Secret, error) {
	lt, err := LengthsFor(cipher)
	if err != nil {
		return nil, withDetail(ErrInvalidSecretEncoding, "unregistered cipher")
	}
	if len(key) != lt.Key {
		return nil, withDetail(ErrInvalidSecretEncoding, "key length mismatch for cipher")
	}
	if len(seed) != lt.Seed {
		return nil, withDetail(ErrInvalidSecretEncoding, "seed length mismatch for cipher")
	}
	return &Secret{
		Version: SecretVersionLatest,
		Cipher:  cipher,
		Key:     append([]byte(nil), key...),
		Seed:    append([]byte(nil), seed...),
	}, nil
}

// Bytes serializes the Secret as "SH" || u16_be(version) || u8(cipher) ||
// key || seed.
func (s *Secret) Bytes() []byte {
	buf := make([]byte, 0, 2+2+1+len(s.Key)+len(s.Seed))
	buf = append(buf, secretMagic...)
	buf = binary.BigEndian.AppendUint16(buf, s.Version)
	buf = append(buf, s.Cipher)
	buf = append(buf, s.Key...)
	buf = append(buf, s.Seed...)
	return buf
}

// SecretFromBytes parses the wire form produced by Bytes, validating the
// magic, the registered version set, and the cipher-specific lengths.
func SecretFromBytes(data []byte) (*Secret, error) {
	if len(data) < 5 {
		return nil, withDetail(ErrInvalidSecretEncoding, "short input")
	}
	if !bytes.Equal(data[:2], []byte(secretMagic)) {
		return nil, withDetail(ErrInvalidSecretEncoding, "bad magic")
	}
	version := binary.BigEndian.Uint16(data[2:4])
	if !secretVersions[version] {
		return nil, withDetail(ErrInvalidSecretEncoding, "unsupported version")
	}
	cipher := data[4]
	lt, err := LengthsFor(cipher)
	if err != nil {
		return nil, withDetail(ErrInvalidSecretEncoding, "unregistered cipher")
	}
	want := 5 + lt.Key + lt.Seed
	if len(data) != want {
		return nil, withDetail(ErrInvalidSecretEncoding, "bad length for cipher")
	}
	key := append([]byte(nil), data[5:5+lt.Key]...)
	seed := append([]byte(nil), data[5+lt.Key:]...)
	return &Secret{Version: version, Cipher: cipher, Key: key, Seed: seed}, nil
}

// Equal reports whether two secrets carry identical fields.
func (s *Secret) Equal(o *Secret) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Version == o.Version && s.Cipher == o.Cipher &&
		bytes.Equal(s.Key, o.Key) && bytes.Equal(s.Seed, o.Seed)
}
