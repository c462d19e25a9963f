package golix

import "crypto/rsa"

// KeyBundle holds the private halves of an identity's three key pairs:
// signature and encryption are independent RSA-4096 key pairs, exchange
// is a Curve25519 scalar. For the inoperative suite 0 every field is
// left zero-valued; suite 0's Ciphersuite never reads them.
type KeyBundle struct {
	Cipher     uint8
	Signature  *rsa.PrivateKey
	Encryption *rsa.PrivateKey
	Exchange   [32]byte
}

// PublicKeyBundle holds the public halves of an identity's three key
// pairs, as published inside a GIDC.
type PublicKeyBundle struct {
	Cipher     uint8
	Signature  *rsa.PublicKey
	Encryption *rsa.PublicKey
	Exchange   [32]byte
}
