package golix

import (
	"crypto/rand"
	"io"

	"github.com/google/uuid"
)

// FirstParty is a full identity: private key material plus the
// corresponding SecondParty, able to mint and open every object kind.
// A FirstParty holds no mutable state after construction and may be
// shared across goroutines; a dynamic binding chain's history is passed
// in by the caller on each MakeBindDynamic call, not tracked here.
type FirstParty struct {
	keys   KeyBundle
	second *SecondParty
	suite  Ciphersuite
	cfg    Config
}

// GenerateFirstParty creates a fresh identity under cipher/addressAlgo
// using crypto/rand and a no-op logger.
func GenerateFirstParty(cipher, addressAlgo uint8) (*FirstParty, error) {
	return GenerateFirstPartyWithConfig(cipher, addressAlgo, DefaultConfig())
}

// GenerateFirstPartyWithConfig creates a fresh identity, using cfg.Rand
// for entropy (crypto/rand.Reader if nil) and logging the identity event
// through cfg.Logger.
func GenerateFirstPartyWithConfig(cipher, addressAlgo uint8, cfg Config) (*FirstParty, error) {
	suite, err := SuiteFor(cipher)
	if err != nil {
		return nil, err
	}
	if _, err := AddressAlgoFor(addressAlgo); err != nil {
		return nil, err
	}
	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.Reader
	}
	priv, pub, err := suite.GenerateKeyBundle(rnd)
	if err != nil {
		return nil, err
	}
	second, err := NewSecondPartyFromKeys(*pub, addressAlgo)
	if err != nil {
		return nil, err
	}
	cfg.logger().IdentityEvent("identity_generated", second.GUID().String(), cipher)
	return &FirstParty{keys: *priv, second: second, suite: suite, cfg: cfg}, nil
}

// SecondParty returns the publishable identity view, safe to share with
// peers.
func (fp *FirstParty) SecondParty() *SecondParty { return fp.second }

// GUID returns the identity's GUID, equal to SecondParty().GUID().
func (fp *FirstParty) GUID() GUID { return fp.second.GUID() }

// SerializedIdentity is the durable-storage form of a FirstParty: the
// DER-encoded RSA keys plus the raw exchange scalar, alongside the
// cipher/address-algo pair needed to reconstruct its SecondParty.
type SerializedIdentity struct {
	Cipher            uint8
	AddressAlgo       uint8
	SignatureKeyDER   []byte
	EncryptionKeyDER  []byte
	ExchangeScalar    [32]byte
}

// Serialize exports fp in the form FirstPartyFromSerialized reverses.
func (fp *FirstParty) Serialize() (SerializedIdentity, error) {
	if fp.keys.Signature == nil || fp.keys.Encryption == nil {
		return SerializedIdentity{}, withDetail(ErrMalformedIdentity, "incomplete key bundle")
	}
	return SerializedIdentity{
		Cipher:           fp.keys.Cipher,
		AddressAlgo:      fp.second.AddressAlgo(),
		SignatureKeyDER:  marshalRSAPrivate(fp.keys.Signature),
		EncryptionKeyDER: marshalRSAPrivate(fp.keys.Encryption),
		ExchangeScalar:   fp.keys.Exchange,
	}, nil
}

// FirstPartyFromSerialized reconstructs a FirstParty from a
// SerializedIdentity, re-deriving its SecondParty and logging the
// reconstruction through cfg.
func FirstPartyFromSerialized(s SerializedIdentity, cfg Config) (*FirstParty, error) {
	suite, err := SuiteFor(s.Cipher)
	if err != nil {
		return nil, withCause(ErrMalformedIdentity, err)
	}
	sigKey, err := parseRSAPrivate(s.SignatureKeyDER)
	if err != nil {
		return nil, err
	}
	encKey, err := parseRSAPrivate(s.EncryptionKeyDER)
	if err != nil {
		return nil, err
	}
	priv := KeyBundle{Cipher: s.Cipher, Signature: sigKey, Encryption: encKey, Exchange: s.ExchangeScalar}
	pub, err := suite.PublicOf(&priv)
	if err != nil {
		return nil, err
	}
	second, err := NewSecondPartyFromKeys(*pub, s.AddressAlgo)
	if err != nil {
		return nil, withCause(ErrMalformedIdentity, err)
	}
	cfg.logger().IdentityEvent("identity_restored", second.GUID().String(), s.Cipher)
	return &FirstParty{keys: priv, second: second, suite: suite, cfg: cfg}, nil
}

// NewSecret mints a fresh Secret sized for fp's ciphersuite, drawing key
// and seed material from cfg.Rand (crypto/rand.Reader if nil).
func (fp *FirstParty) NewSecret() (*Secret, error) {
	lt := fp.suite.Lengths()
	rnd := fp.cfg.Rand
	if rnd == nil {
		rnd = rand.Reader
	}
	key := make([]byte, lt.Key)
	if _, err := io.ReadFull(rnd, key); err != nil {
		return nil, err
	}
	seed := make([]byte, lt.Seed)
	if lt.Seed > 0 {
		if _, err := io.ReadFull(rnd, seed); err != nil {
			return nil, err
		}
	}
	return NewSecret(fp.keys.Cipher, key, seed)
}

// verifySigned checks sig against author's public signature key over
// guid.Address, the quantity every signed object kind signs.
func (fp *FirstParty) verifySigned(author *SecondParty, sig []byte, guid GUID) error {
	pub := author.PublicKeys()
	if err := fp.suite.Verify(&pub, sig, guid.Address); err != nil {
		fp.cfg.logger().SecurityFailure(ErrBadSignature.Code, guid.String())
		return err
	}
	return nil
}

// --- symmetric container: GEOC -------------------------------------------

// MakeContainer encrypts plaintext under secret and signs the resulting
// GEOC over its own GUID.
func (fp *FirstParty) MakeContainer(secret *Secret, plaintext []byte) (*GEOC, error) {
	ciphertext, err := fp.suite.EncryptSym(secret, plaintext)
	if err != nil {
		return nil, err
	}
	o := &GEOC{
		state:       stateEncoded,
		Cipher:      fp.keys.Cipher,
		AddressAlgo: fp.second.AddressAlgo(),
		Author:      fp.GUID(),
		Payload:     ciphertext,
	}
	unsigned := packGEOCUnsigned(o)
	o.state = statePacked
	guid, err := seal(o.AddressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	sig, err := fp.suite.Sign(&fp.keys, guid.Address)
	if err != nil {
		return nil, err
	}
	o.guid = guid
	o.Signature = sig
	o.state = stateSealed
	fp.cfg.logger().ObjectEvent("geoc_minted", "GEOC", guid.String())
	return o, nil
}

// ReceiveContainer verifies o's signature against author, then decrypts
// its payload under secret.
func (fp *FirstParty) ReceiveContainer(author *SecondParty, secret *Secret, o *GEOC) ([]byte, error) {
	guid, err := o.GUID()
	if err != nil {
		return nil, err
	}
	if err := fp.verifySigned(author, o.Signature, guid); err != nil {
		return nil, err
	}
	return fp.suite.DecryptSym(secret, o.Payload)
}

// --- static binding: GOBS -------------------------------------------------

// MakeBindStatic binds target, vouching it should be retained.
func (fp *FirstParty) MakeBindStatic(target GUID) (*GOBS, error) {
	o := &GOBS{
		state:       stateEncoded,
		Cipher:      fp.keys.Cipher,
		AddressAlgo: fp.second.AddressAlgo(),
		Binder:      fp.GUID(),
		Target:      target,
	}
	unsigned := packGOBSUnsigned(o)
	guid, err := seal(o.AddressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	sig, err := fp.suite.Sign(&fp.keys, guid.Address)
	if err != nil {
		return nil, err
	}
	o.guid = guid
	o.Signature = sig
	o.state = stateSealed
	fp.cfg.logger().ObjectEvent("gobs_minted", "GOBS", guid.String())
	return o, nil
}

// ReceiveBindStatic verifies o's signature against author and returns
// the bound target.
func (fp *FirstParty) ReceiveBindStatic(author *SecondParty, o *GOBS) (GUID, error) {
	guid, err := o.GUID()
	if err != nil {
		return GUID{}, err
	}
	if err := fp.verifySigned(author, o.Signature, guid); err != nil {
		return GUID{}, err
	}
	return o.Target, nil
}

// --- dynamic binding: GOBD -------------------------------------------------

// MakeBindDynamic publishes a new frame of a dynamic binding. Pass a nil
// dynamicAddress for the chain's first frame; subsequent frames pass the
// chain's persistent dynamic address and the prior frame's GUID prepended
// onto history.
func (fp *FirstParty) MakeBindDynamic(targets []GUID, dynamicAddress *GUID, history []GUID) (*GOBD, error) {
	o := &GOBD{
		state:          stateEncoded,
		Cipher:         fp.keys.Cipher,
		AddressAlgo:    fp.second.AddressAlgo(),
		Binder:         fp.GUID(),
		Targets:        append([]GUID(nil), targets...),
		DynamicAddress: dynamicAddress,
		History:        append([]GUID(nil), history...),
	}
	unsigned := packGOBDUnsigned(o)
	guid, err := seal(o.AddressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	sig, err := fp.suite.Sign(&fp.keys, guid.Address)
	if err != nil {
		return nil, err
	}
	o.guid = guid
	o.Signature = sig
	o.state = stateSealed
	fp.cfg.logger().ObjectEvent("gobd_minted", "GOBD", guid.String())
	return o, nil
}

// ReceiveBindDynamic verifies o's signature against author and returns
// its bound targets.
func (fp *FirstParty) ReceiveBindDynamic(author *SecondParty, o *GOBD) ([]GUID, error) {
	guid, err := o.GUID()
	if err != nil {
		return nil, err
	}
	if err := fp.verifySigned(author, o.Signature, guid); err != nil {
		return nil, err
	}
	return o.Targets, nil
}

// --- debinding: GDXX --------------------------------------------------------

// MakeDebind revokes a previously bound target.
func (fp *FirstParty) MakeDebind(target GUID) (*GDXX, error) {
	o := &GDXX{
		state:       stateEncoded,
		Cipher:      fp.keys.Cipher,
		AddressAlgo: fp.second.AddressAlgo(),
		Debinder:    fp.GUID(),
		Target:      target,
	}
	unsigned := packGDXXUnsigned(o)
	guid, err := seal(o.AddressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	sig, err := fp.suite.Sign(&fp.keys, guid.Address)
	if err != nil {
		return nil, err
	}
	o.guid = guid
	o.Signature = sig
	o.state = stateSealed
	fp.cfg.logger().ObjectEvent("gdxx_minted", "GDXX", guid.String())
	return o, nil
}

// ReceiveDebind verifies o's signature against author and returns the
// revoked target.
func (fp *FirstParty) ReceiveDebind(author *SecondParty, o *GDXX) (GUID, error) {
	guid, err := o.GUID()
	if err != nil {
		return GUID{}, err
	}
	if err := fp.verifySigned(author, o.Signature, guid); err != nil {
		return GUID{}, err
	}
	return o.Target, nil
}

// --- asymmetric request envelope: GARQ ------------------------------------

// MakeHandshake builds a Handshake inner payload proposing secret for
// target.
func (fp *FirstParty) MakeHandshake(target GUID, secret *Secret) *Handshake {
	return &Handshake{AuthorGUID: fp.GUID(), TargetGUID: target, Secret: secret}
}

// MakeAck builds an Ack inner payload for a prior handshake on target.
func (fp *FirstParty) MakeAck(target GUID, status uint8) *Ack {
	return &Ack{AuthorGUID: fp.GUID(), TargetGUID: target, Status: status}
}

// MakeNak builds a Nak inner payload for a prior handshake on target.
func (fp *FirstParty) MakeNak(target GUID, status uint8) *Nak {
	return &Nak{AuthorGUID: fp.GUID(), TargetGUID: target, Status: status}
}

// MakeRequest seals inner for recipient: OAEP-encrypts the packed inner
// payload under recipient's encryption key, then authenticates the
// resulting GARQ's GUID with an HMAC keyed by a Curve25519/HKDF secret
// shared between fp and recipient. The correlation id attached to its log
// lines is for log tracing only; it is not returned and never touches the
// wire.
func (fp *FirstParty) MakeRequest(recipient *SecondParty, inner InnerPayload) (*GARQ, error) {
	if recipient.Cipher() != fp.keys.Cipher {
		return nil, ErrIncompatibleSuite
	}
	correlationID := uuid.NewString()
	fp.cfg.logger().RequestEvent("request_minting", correlationID, recipient.GUID().String())

	packedInner, err := packInner(inner)
	if err != nil {
		return nil, err
	}
	recipientPub := recipient.PublicKeys()
	ciphertext, err := fp.suite.EncryptAsym(&recipientPub, packedInner)
	if err != nil {
		return nil, err
	}
	o := &GARQ{
		state:       stateEncoded,
		Cipher:      fp.keys.Cipher,
		AddressAlgo: recipient.AddressAlgo(),
		Recipient:   recipient.GUID(),
		Payload:     ciphertext,
	}
	unsigned := packGARQUnsigned(o)
	guid, err := seal(o.AddressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	macKey, err := fp.suite.DeriveShared(&fp.keys, &recipientPub, fp.GUID().Address, recipient.GUID().Address)
	if err != nil {
		return nil, err
	}
	o.guid = guid
	o.Signature = fp.suite.MAC(macKey, guid.Address)
	o.state = stateSealed
	fp.cfg.logger().RequestEvent("request_minted", correlationID, recipient.GUID().String())
	return o, nil
}

// UnpackRequest parses a packed GARQ addressed to fp and decrypts its
// inner payload with fp's encryption key. It does not verify the
// request's MAC or authenticate its author — callers must pass the
// result to ReceiveRequest, with a claimed requestor identity, before
// trusting anything about Plaintext. Every failure on this untrusted-input
// path returns the bare ErrBadRequest, with no differentiating detail
// text, so a peer probing a malformed or mistargeted request can't use
// the error to learn which stage rejected it; diagnostics go to the
// logger, never into the returned error.
func (fp *FirstParty) UnpackRequest(data []byte) (*GARQ, error) {
	o, err := unpackGARQ(data)
	if err != nil {
		fp.cfg.logger().SecurityFailure(ErrBadRequest.Code, "")
		return nil, ErrBadRequest
	}
	if o.Cipher != fp.keys.Cipher {
		fp.cfg.logger().SecurityFailure(ErrBadRequest.Code, o.guid.String())
		return nil, ErrBadRequest
	}
	if !o.Recipient.Equal(fp.GUID()) {
		fp.cfg.logger().SecurityFailure(ErrBadRequest.Code, o.guid.String())
		return nil, ErrBadRequest
	}
	plaintext, err := fp.suite.DecryptAsym(&fp.keys, o.Payload)
	if err != nil {
		fp.cfg.logger().SecurityFailure(ErrBadRequest.Code, o.guid.String())
		return nil, ErrBadRequest
	}
	inner, err := unpackInner(plaintext)
	if err != nil {
		fp.cfg.logger().SecurityFailure(ErrBadRequest.Code, o.guid.String())
		return nil, ErrBadRequest
	}
	o.Plaintext = inner
	o.Author = inner.Author()
	return o, nil
}

// ReceiveRequest authenticates o against requestor's claimed identity: it
// derives the shared MAC key from requestor's public keys, regardless of
// what o.Author claims, and verifies o's MAC tag over its own GUID. A
// requestor that doesn't match who actually minted o fails here, at the
// constant-time MAC comparison, with ErrBadMAC — there is no separate
// author-equality check ahead of it, since one would let a caller learn
// "wrong author" versus "wrong MAC" as distinguishable outcomes for the
// same forged input. On success ReceiveRequest returns the inner payload
// and clears o.Plaintext and o.Author, so a caller can't accidentally
// trust unauthenticated fields left over from UnpackRequest.
func (fp *FirstParty) ReceiveRequest(requestor *SecondParty, o *GARQ) (InnerPayload, error) {
	if o.Plaintext == nil {
		return nil, ErrBadRequest
	}
	requestorPub := requestor.PublicKeys()
	macKey, err := fp.suite.DeriveShared(&fp.keys, &requestorPub, fp.GUID().Address, requestor.GUID().Address)
	if err != nil {
		return nil, err
	}
	if err := fp.suite.VerifyMAC(macKey, o.Signature, o.guid.Address); err != nil {
		fp.cfg.logger().SecurityFailure(ErrBadMAC.Code, o.guid.String())
		return nil, err
	}
	inner := o.Plaintext
	o.Plaintext = nil
	o.Author = GUID{}
	return inner, nil
}
