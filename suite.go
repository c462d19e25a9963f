package golix

import (
	"io"
	"sync"
)

// Ciphersuite is the full per-suite capability set §4.E describes,
// implemented once per cipher id and looked up through the package
// registry at runtime (rather than via per-suite class hierarchies).
type Ciphersuite interface {
	ID() uint8
	Lengths() LengthTable

	GenerateKeyBundle(rnd io.Reader) (*KeyBundle, *PublicKeyBundle, error)
	PublicOf(priv *KeyBundle) (*PublicKeyBundle, error)

	Hash(data []byte) []byte
	Sign(priv *KeyBundle, data []byte) ([]byte, error)
	Verify(pub *PublicKeyBundle, sig, data []byte) error

	EncryptAsym(pub *PublicKeyBundle, plaintext []byte) ([]byte, error)
	DecryptAsym(priv *KeyBundle, ciphertext []byte) ([]byte, error)

	EncryptSym(secret *Secret, plaintext []byte) ([]byte, error)
	DecryptSym(secret *Secret, ciphertext []byte) ([]byte, error)

	DeriveShared(priv *KeyBundle, pub *PublicKeyBundle, ownAddr, peerAddr []byte) ([]byte, error)

	MAC(key, data []byte) []byte
	VerifyMAC(key, tag, data []byte) error

	// PackPublicKeys/UnpackPublicKeys (de)serialize the public key
	// bundle carried inside a GIDC, in the fixed per-suite layout §4.F
	// describes (e.g. suite 1: signature then encryption RSA modulus, each
	// big-endian fixed 512 bytes, then exchange public key 32 bytes).
	PackPublicKeys(pub *PublicKeyBundle) []byte
	UnpackPublicKeys(cipher uint8, data []byte) (*PublicKeyBundle, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[uint8]Ciphersuite{}
)

// Register installs suite into the process-wide registry under its own
// ID. Suite implementations call this from their own init().
func Register(suite Ciphersuite) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[suite.ID()] = suite
}

// SuiteFor looks up a registered Ciphersuite, returning ErrUnknownCipher
// if none is registered under cipher.
func SuiteFor(cipher uint8) (Ciphersuite, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[cipher]
	if !ok {
		return nil, withDetail(ErrUnknownCipher, itoa(int(cipher)))
	}
	return s, nil
}
