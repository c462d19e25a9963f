//go:build golix_testsuite

package golix

import "io"

// suiteV0 is the reserved, inoperative test suite: it ignores all input
// and returns fixed sentinel bytes for every operation. It exists purely
// so that surrounding wire-format code can be exercised without paying
// for real cryptography. Production builds must not import this file —
// it only compiles under the golix_testsuite build tag, so a
// misconfigured build cannot silently ship unsigned objects.
type suiteV0 struct{}

func init() { Register(suiteV0{}) }

func (suiteV0) ID() uint8            { return 0 }
func (suiteV0) Lengths() LengthTable { return lengthTables[0] }

func sentinelBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0xAA
	}
	return b
}

func (suiteV0) GenerateKeyBundle(rnd io.Reader) (*KeyBundle, *PublicKeyBundle, error) {
	return &KeyBundle{Cipher: 0}, &PublicKeyBundle{Cipher: 0}, nil
}

func (suiteV0) PublicOf(priv *KeyBundle) (*PublicKeyBundle, error) {
	return &PublicKeyBundle{Cipher: 0}, nil
}

func (suiteV0) Hash(data []byte) []byte { return sentinelBytes(64) }

func (suiteV0) Sign(priv *KeyBundle, data []byte) ([]byte, error) {
	return sentinelBytes(lengthTables[0].Sig), nil
}

func (suiteV0) Verify(pub *PublicKeyBundle, sig, data []byte) error { return nil }

func (suiteV0) EncryptAsym(pub *PublicKeyBundle, plaintext []byte) ([]byte, error) {
	return sentinelBytes(lengthTables[0].Asym), nil
}

func (suiteV0) DecryptAsym(priv *KeyBundle, ciphertext []byte) ([]byte, error) {
	return []byte{}, nil
}

// EncryptSym/DecryptSym are the identity transform: suite 0 has no real
// cipher, and a no-op is the simplest invertible stand-in for exercising
// callers that only care about plumbing, not confidentiality.
func (suiteV0) EncryptSym(secret *Secret, plaintext []byte) ([]byte, error) {
	return append([]byte(nil), plaintext...), nil
}

func (suiteV0) DecryptSym(secret *Secret, ciphertext []byte) ([]byte, error) {
	return append([]byte(nil), ciphertext...), nil
}

func (suiteV0) DeriveShared(priv *KeyBundle, pub *PublicKeyBundle, ownAddr, peerAddr []byte) ([]byte, error) {
	return sentinelBytes(64), nil
}

func (suiteV0) MAC(key, data []byte) []byte { return sentinelBytes(lengthTables[0].Mac) }

func (suiteV0) VerifyMAC(key, tag, data []byte) error { return nil }

func (suiteV0) PackPublicKeys(pub *PublicKeyBundle) []byte {
	lt := lengthTables[0]
	return sentinelBytes(2*lt.Asym + 32)
}

func (suiteV0) UnpackPublicKeys(cipher uint8, data []byte) (*PublicKeyBundle, error) {
	return &PublicKeyBundle{Cipher: 0}, nil
}
