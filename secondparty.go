package golix

// SecondParty is the publishable, public-key-only view of another
// participant's identity: immutable after construction, shareable
// without synchronization, and usable to verify signatures or target
// asymmetric encryption. It never holds private material.
type SecondParty struct {
	cipher      uint8
	addressAlgo uint8
	guid        GUID
	publicKeys  PublicKeyBundle
	packed      []byte // packed (unsigned) GIDC body
	suite       Ciphersuite
}

// NewSecondPartyFromKeys packs pub into an unsigned GIDC, computes its
// GUID, and returns the resulting SecondParty.
func NewSecondPartyFromKeys(pub PublicKeyBundle, addressAlgo uint8) (*SecondParty, error) {
	suite, err := SuiteFor(pub.Cipher)
	if err != nil {
		return nil, err
	}
	if _, err := AddressAlgoFor(addressAlgo); err != nil {
		return nil, err
	}
	packedPub := suite.PackPublicKeys(&pub)
	unsigned := packGIDCUnsigned(pub.Cipher, addressAlgo, packedPub)
	addr, err := Address(addressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	return &SecondParty{
		cipher:      pub.Cipher,
		addressAlgo: addressAlgo,
		guid:        GUID{Algo: addressAlgo, Address: addr},
		publicKeys:  pub,
		packed:      unsigned,
		suite:       suite,
	}, nil
}

// SecondPartyFromPacked parses a packed GIDC (the external schema
// layer's job, stood in for by wire.go) and reconstructs the
// SecondParty it describes.
func SecondPartyFromPacked(data []byte) (*SecondParty, error) {
	cipher, addrAlgo, packedPub, err := unpackGIDC(data)
	if err != nil {
		return nil, withCause(ErrInvalidIdentity, err)
	}
	suite, err := SuiteFor(cipher)
	if err != nil {
		return nil, withCause(ErrInvalidIdentity, err)
	}
	pub, err := suite.UnpackPublicKeys(cipher, packedPub)
	if err != nil {
		return nil, withCause(ErrInvalidIdentity, err)
	}
	return NewSecondPartyFromKeys(*pub, addrAlgo)
}

func (sp *SecondParty) GUID() GUID                   { return sp.guid }
func (sp *SecondParty) Cipher() uint8                { return sp.cipher }
func (sp *SecondParty) AddressAlgo() uint8           { return sp.addressAlgo }
func (sp *SecondParty) PublicKeys() PublicKeyBundle  { return sp.publicKeys }
func (sp *SecondParty) PackedGIDC() []byte           { return append([]byte(nil), sp.packed...) }
