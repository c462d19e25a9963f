package golix

// ThirdParty verifies objects and identities it did not mint itself. It
// holds no key material — only ciphersuite lookups are needed to check a
// signature against a published SecondParty.
type ThirdParty struct{}

// NewThirdParty returns a verifier. ThirdParty carries no state, so its
// zero value is equally usable; the constructor exists for symmetry with
// FirstParty/SecondParty and room to grow (e.g. a trust cache).
func NewThirdParty() *ThirdParty { return &ThirdParty{} }

// UnpackObject parses data as whichever of the six object kinds its tag
// identifies. It does not verify anything; call VerifyObject next.
func (tp *ThirdParty) UnpackObject(data []byte) (any, error) {
	return UnpackObject(data)
}

// VerifyObject checks obj's signature against author's public signature
// key. GARQ is never verifiable this way — its authenticity comes from
// FirstParty.ReceiveRequest's MAC check instead, since only the intended
// recipient can derive that key — so VerifyObject rejects it with
// ErrAsymmetricNotVerifiable. GIDC is never signed at all, since its GUID
// is its own binding commitment, so it is rejected with
// ErrIdentityNotSignable.
func (tp *ThirdParty) VerifyObject(author *SecondParty, obj any) error {
	suite, err := SuiteFor(author.Cipher())
	if err != nil {
		return err
	}
	pub := author.PublicKeys()

	switch o := obj.(type) {
	case *GEOC:
		guid, err := o.GUID()
		if err != nil {
			return err
		}
		return suite.Verify(&pub, o.Signature, guid.Address)
	case *GOBS:
		guid, err := o.GUID()
		if err != nil {
			return err
		}
		return suite.Verify(&pub, o.Signature, guid.Address)
	case *GOBD:
		guid, err := o.GUID()
		if err != nil {
			return err
		}
		return suite.Verify(&pub, o.Signature, guid.Address)
	case *GDXX:
		guid, err := o.GUID()
		if err != nil {
			return err
		}
		return suite.Verify(&pub, o.Signature, guid.Address)
	case *GARQ:
		return ErrAsymmetricNotVerifiable
	case *GIDC:
		return ErrIdentityNotSignable
	default:
		return ErrUnknownObject
	}
}
