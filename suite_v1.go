package golix

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha512"
	"crypto/x509"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

// rsaKeyBits is the modulus size for both the signature and encryption
// key pairs of suite 1.
const rsaKeyBits = 4096

// rsaPublicExponent is the exponent every suite-1 RSA key uses; only the
// modulus travels on the wire (§4.F), so the exponent must be a fixed,
// out-of-band constant both ends agree on.
const rsaPublicExponent = 65537

// pssSaltLength is fixed at the SHA-512 digest size per §4.E; any other
// value breaks interop with a peer implementation.
const pssSaltLength = sha512.Size

func init() { Register(suiteV1{}) }

// suiteV1 is the live ciphersuite: RSA-4096 (PSS/OAEP, SHA-512) for
// signing and asymmetric encryption, Curve25519 + HKDF-SHA-512 for key
// agreement, AES-256-CTR for the symmetric cipher, HMAC-SHA512 for MACs.
type suiteV1 struct{}

func (suiteV1) ID() uint8           { return 1 }
func (suiteV1) Lengths() LengthTable { return lengthTables[1] }

func (s suiteV1) GenerateKeyBundle(rnd io.Reader) (*KeyBundle, *PublicKeyBundle, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	sigKey, err := rsa.GenerateKey(rnd, rsaKeyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("golix: generate signature key: %w", err)
	}
	encKey, err := rsa.GenerateKey(rnd, rsaKeyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("golix: generate encryption key: %w", err)
	}
	var scalar [32]byte
	if _, err := io.ReadFull(rnd, scalar[:]); err != nil {
		return nil, nil, fmt.Errorf("golix: generate exchange key: %w", err)
	}
	priv := &KeyBundle{Cipher: 1, Signature: sigKey, Encryption: encKey, Exchange: scalar}
	pub, err := s.PublicOf(priv)
	if err != nil {
		return nil, nil, err
	}
	return priv, pub, nil
}

func (suiteV1) PublicOf(priv *KeyBundle) (*PublicKeyBundle, error) {
	if priv == nil || priv.Cipher != 1 || priv.Signature == nil || priv.Encryption == nil {
		return nil, withDetail(ErrMalformedIdentity, "incomplete suite-1 key bundle")
	}
	var pub [32]byte
	curve25519.ScalarBaseMult(&pub, &priv.Exchange)
	return &PublicKeyBundle{
		Cipher:     1,
		Signature:  &priv.Signature.PublicKey,
		Encryption: &priv.Encryption.PublicKey,
		Exchange:   pub,
	}, nil
}

func (suiteV1) Hash(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}

func (suiteV1) Sign(priv *KeyBundle, data []byte) ([]byte, error) {
	if priv == nil || priv.Cipher != 1 || priv.Signature == nil {
		return nil, ErrIncompatibleSuite
	}
	digest := sha512.Sum512(data)
	sig, err := rsa.SignPSS(rand.Reader, priv.Signature, crypto.SHA512, digest[:], &rsa.PSSOptions{
		SaltLength: pssSaltLength,
		Hash:       crypto.SHA512,
	})
	if err != nil {
		return nil, fmt.Errorf("golix: sign: %w", err)
	}
	return sig, nil
}

func (suiteV1) Verify(pub *PublicKeyBundle, sig, data []byte) error {
	if pub == nil || pub.Cipher != 1 || pub.Signature == nil {
		return ErrIncompatibleSuite
	}
	digest := sha512.Sum512(data)
	if err := rsa.VerifyPSS(pub.Signature, crypto.SHA512, digest[:], sig, &rsa.PSSOptions{
		SaltLength: pssSaltLength,
		Hash:       crypto.SHA512,
	}); err != nil {
		return ErrBadSignature
	}
	return nil
}

func (suiteV1) EncryptAsym(pub *PublicKeyBundle, plaintext []byte) ([]byte, error) {
	if pub == nil || pub.Cipher != 1 || pub.Encryption == nil {
		return nil, ErrIncompatibleSuite
	}
	ct, err := rsa.EncryptOAEP(sha512.New(), rand.Reader, pub.Encryption, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("golix: encrypt_asym: %w", err)
	}
	return ct, nil
}

func (suiteV1) DecryptAsym(priv *KeyBundle, ciphertext []byte) ([]byte, error) {
	if priv == nil || priv.Cipher != 1 || priv.Encryption == nil {
		return nil, ErrIncompatibleSuite
	}
	pt, err := rsa.DecryptOAEP(sha512.New(), rand.Reader, priv.Encryption, ciphertext, nil)
	if err != nil {
		return nil, withCause(ErrBadRequest, err)
	}
	return pt, nil
}

func (s suiteV1) EncryptSym(secret *Secret, plaintext []byte) ([]byte, error) {
	return s.ctrTransform(secret, plaintext)
}

func (s suiteV1) DecryptSym(secret *Secret, ciphertext []byte) ([]byte, error) {
	return s.ctrTransform(secret, ciphertext)
}

// ctrTransform implements AES-256-CTR with the initial counter block set
// to the big-endian integer value of the secret's 16-byte seed. CTR mode
// is its own inverse, so encrypt and decrypt share this helper.
func (suiteV1) ctrTransform(secret *Secret, data []byte) ([]byte, error) {
	if secret == nil || secret.Cipher != 1 {
		return nil, ErrIncompatibleSuite
	}
	block, err := aes.NewCipher(secret.Key)
	if err != nil {
		return nil, fmt.Errorf("golix: aes cipher: %w", err)
	}
	iv := make([]byte, aes.BlockSize)
	copy(iv[aes.BlockSize-len(secret.Seed):], secret.Seed)
	out := make([]byte, len(data))
	cipher.NewCTR(block, iv).XORKeyStream(out, data)
	return out, nil
}

func (suiteV1) DeriveShared(priv *KeyBundle, pub *PublicKeyBundle, ownAddr, peerAddr []byte) ([]byte, error) {
	if priv == nil || priv.Cipher != 1 || pub == nil || pub.Cipher != 1 {
		return nil, ErrIncompatibleSuite
	}
	shared, err := curve25519.X25519(priv.Exchange[:], pub.Exchange[:])
	if err != nil {
		return nil, fmt.Errorf("golix: ecdh: %w", err)
	}
	// Symmetric XOR so both endpoints derive the same key regardless of
	// which side initiated.
	salt, err := xorBytes(ownAddr, peerAddr)
	if err != nil {
		return nil, err
	}
	out := make([]byte, sha512.Size)
	if _, err := io.ReadFull(hkdf.New(sha512.New, shared, salt, nil), out); err != nil {
		return nil, fmt.Errorf("golix: hkdf: %w", err)
	}
	return out, nil
}

func (suiteV1) MAC(key, data []byte) []byte {
	h := hmac.New(sha512.New, key)
	h.Write(data)
	return h.Sum(nil)
}

func (s suiteV1) VerifyMAC(key, tag, data []byte) error {
	if !hmac.Equal(s.MAC(key, data), tag) {
		return ErrBadMAC
	}
	return nil
}

func (suiteV1) PackPublicKeys(pub *PublicKeyBundle) []byte {
	lt := lengthTables[1]
	out := make([]byte, 0, 2*lt.Asym+32)
	out = append(out, modulusBytes(pub.Signature, lt.Asym)...)
	out = append(out, modulusBytes(pub.Encryption, lt.Asym)...)
	out = append(out, pub.Exchange[:]...)
	return out
}

func (suiteV1) UnpackPublicKeys(cipher uint8, data []byte) (*PublicKeyBundle, error) {
	if cipher != 1 {
		return nil, ErrIncompatibleSuite
	}
	lt := lengthTables[1]
	want := 2*lt.Asym + 32
	if len(data) != want {
		return nil, withDetail(ErrInvalidIdentity, "bad public key bundle length")
	}
	sigMod := new(big.Int).SetBytes(data[:lt.Asym])
	encMod := new(big.Int).SetBytes(data[lt.Asym : 2*lt.Asym])
	var exch [32]byte
	copy(exch[:], data[2*lt.Asym:])
	return &PublicKeyBundle{
		Cipher:     1,
		Signature:  &rsa.PublicKey{N: sigMod, E: rsaPublicExponent},
		Encryption: &rsa.PublicKey{N: encMod, E: rsaPublicExponent},
		Exchange:   exch,
	}, nil
}

func modulusBytes(pub *rsa.PublicKey, size int) []byte {
	b := pub.N.Bytes()
	if len(b) == size {
		return b
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}

// marshalRSAPrivate/parseRSAPrivate are the DER forms used by
// FirstParty.Serialize/FirstPartyFromSerialized (§4.G), matching the
// original implementation's RSA.exportKey(format='DER').
func marshalRSAPrivate(k *rsa.PrivateKey) []byte {
	return x509.MarshalPKCS1PrivateKey(k)
}

func parseRSAPrivate(der []byte) (*rsa.PrivateKey, error) {
	k, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, withDetail(ErrMalformedIdentity, "invalid RSA DER: "+err.Error())
	}
	return k, nil
}
