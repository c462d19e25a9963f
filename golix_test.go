package golix

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustFirstParty(t *testing.T) *FirstParty {
	t.Helper()
	fp, err := GenerateFirstParty(1, 1)
	require.NoError(t, err)
	return fp
}

// Property 1: Secret round-trip.
func TestSecretRoundTrip(t *testing.T) {
	fp := mustFirstParty(t)
	secret, err := fp.NewSecret()
	require.NoError(t, err)

	restored, err := SecretFromBytes(secret.Bytes())
	require.NoError(t, err)
	require.True(t, secret.Equal(restored))
}

// Property 2: identity round-trip.
func TestIdentityRoundTrip(t *testing.T) {
	fp := mustFirstParty(t)
	ser, err := fp.Serialize()
	require.NoError(t, err)

	restored, err := FirstPartyFromSerialized(ser, DefaultConfig())
	require.NoError(t, err)
	require.True(t, restored.GUID().Equal(fp.GUID()))

	o, err := restored.MakeBindStatic(SymbolicGUID())
	require.NoError(t, err)
	tp := NewThirdParty()
	require.NoError(t, tp.VerifyObject(restored.SecondParty(), o))
}

// Property 3: signed-object round-trip, across every signed kind.
func TestSignedObjectRoundTrip(t *testing.T) {
	fp := mustFirstParty(t)
	tp := NewThirdParty()
	target := SymbolicGUID()

	t.Run("GEOC", func(t *testing.T) {
		secret, err := fp.NewSecret()
		require.NoError(t, err)
		o, err := fp.MakeContainer(secret, []byte("hello"))
		require.NoError(t, err)
		require.NoError(t, tp.VerifyObject(fp.SecondParty(), o))

		guid, err := o.GUID()
		require.NoError(t, err)
		unsigned := packGEOCUnsigned(o)
		wantAddr, err := Address(o.AddressAlgo, unsigned)
		require.NoError(t, err)
		require.Equal(t, wantAddr, guid.Address)

		packed := packGEOCSealed(o)
		back, err := unpackGEOC(packed)
		require.NoError(t, err)
		require.Equal(t, o.Payload, back.Payload)
		require.Equal(t, o.Author, back.Author)
		require.Equal(t, o.Signature, back.Signature)
		backGUID, err := back.GUID()
		require.NoError(t, err)
		require.True(t, guid.Equal(backGUID))
	})

	t.Run("GOBS", func(t *testing.T) {
		o, err := fp.MakeBindStatic(target)
		require.NoError(t, err)
		require.NoError(t, tp.VerifyObject(fp.SecondParty(), o))

		packed := packGOBSSealed(o)
		back, err := unpackGOBS(packed)
		require.NoError(t, err)
		require.Equal(t, o.Target, back.Target)
		require.Equal(t, o.Binder, back.Binder)
	})

	t.Run("GOBD", func(t *testing.T) {
		o, err := fp.MakeBindDynamic([]GUID{target}, nil, nil)
		require.NoError(t, err)
		require.NoError(t, tp.VerifyObject(fp.SecondParty(), o))

		packed := packGOBDSealed(o)
		back, err := unpackGOBD(packed)
		require.NoError(t, err)
		require.Equal(t, o.Targets, back.Targets)
		require.Nil(t, back.DynamicAddress)
	})

	t.Run("GDXX", func(t *testing.T) {
		o, err := fp.MakeDebind(target)
		require.NoError(t, err)
		require.NoError(t, tp.VerifyObject(fp.SecondParty(), o))

		packed := packGDXXSealed(o)
		back, err := unpackGDXX(packed)
		require.NoError(t, err)
		require.Equal(t, o.Target, back.Target)
	})
}

// Property 4: symmetric cipher is its own inverse.
func TestSymmetricCipherInverse(t *testing.T) {
	fp := mustFirstParty(t)
	secret, err := fp.NewSecret()
	require.NoError(t, err)

	suite, err := SuiteFor(1)
	require.NoError(t, err)

	msg := []byte("the quick brown fox jumps over the lazy dog")
	ct, err := suite.EncryptSym(secret, msg)
	require.NoError(t, err)
	require.NotEqual(t, msg, ct)

	pt, err := suite.DecryptSym(secret, ct)
	require.NoError(t, err)
	require.Equal(t, msg, pt)
}

// Property 5 / Scenario S2: asymmetric request round-trip.
func TestAsymmetricRequestRoundTrip(t *testing.T) {
	a := mustFirstParty(t)
	b := mustFirstParty(t)

	secret, err := a.NewSecret()
	require.NoError(t, err)
	handshake := a.MakeHandshake(SymbolicGUID(), secret)

	req, err := a.MakeRequest(b.SecondParty(), handshake)
	require.NoError(t, err)

	packed := packGARQSealed(req)
	garq, err := b.UnpackRequest(packed)
	require.NoError(t, err)
	require.True(t, garq.Author.Equal(a.GUID()))

	inner, err := b.ReceiveRequest(a.SecondParty(), garq)
	require.NoError(t, err)

	hs, ok := inner.(*Handshake)
	require.True(t, ok)
	require.True(t, hs.Secret.Equal(secret))

	require.True(t, garq.Author.IsZero())
	require.Nil(t, garq.Plaintext)
}

// Property 6 / Scenario S6: shared-secret symmetry.
func TestSharedSecretSymmetry(t *testing.T) {
	a := mustFirstParty(t)
	b := mustFirstParty(t)

	suite, err := SuiteFor(1)
	require.NoError(t, err)

	aPriv := a.keys
	bPriv := b.keys
	aPub := a.second.PublicKeys()
	bPub := b.second.PublicKeys()

	fromA, err := suite.DeriveShared(&aPriv, &bPub, a.GUID().Address, b.GUID().Address)
	require.NoError(t, err)
	fromB, err := suite.DeriveShared(&bPriv, &aPub, b.GUID().Address, a.GUID().Address)
	require.NoError(t, err)

	require.Equal(t, fromA, fromB)
	require.Len(t, fromA, 64)
	require.False(t, bytes.Equal(fromA, make([]byte, 64)))
}

// Property 7: flipped bits in a sealed object's packed form (here, the
// last byte of its signature trailer) fail verification with a
// security-class error.
func TestTamperedSealedObjectFails(t *testing.T) {
	fp := mustFirstParty(t)
	o, err := fp.MakeBindStatic(SymbolicGUID())
	require.NoError(t, err)

	packed := packGOBSSealed(o)
	packed[len(packed)-1] ^= 0xFF

	back, err := unpackGOBS(packed)
	require.NoError(t, err)

	tp := NewThirdParty()
	err = tp.VerifyObject(fp.SecondParty(), back)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrBadSignature)
}

// Property 8: swapping in another object's valid signature fails.
func TestSwappedSignatureFails(t *testing.T) {
	fp := mustFirstParty(t)
	o1, err := fp.MakeBindStatic(SymbolicGUID())
	require.NoError(t, err)
	o2, err := fp.MakeDebind(SymbolicGUID())
	require.NoError(t, err)

	o1.Signature = o2.Signature

	tp := NewThirdParty()
	err = tp.VerifyObject(fp.SecondParty(), o1)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrBadSignature)
}

// Property 9: a mismatched purported requestor fails ReceiveRequest with
// a MAC error.
func TestReceiveRequestMismatchedRequestorFails(t *testing.T) {
	a := mustFirstParty(t)
	b := mustFirstParty(t)
	impostor := mustFirstParty(t)

	secret, err := a.NewSecret()
	require.NoError(t, err)
	ack := a.MakeAck(SymbolicGUID(), 1)
	req, err := a.MakeRequest(b.SecondParty(), ack)
	require.NoError(t, err)

	garq, err := b.UnpackRequest(packGARQSealed(req))
	require.NoError(t, err)

	_, err = b.ReceiveRequest(impostor.SecondParty(), garq)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrBadMAC)

	_ = secret
}

// Property 10 / Scenario S5: a Secret whose cipher disagrees with the
// FirstParty's suite raises IncompatibleSuite.
func TestSecretCipherMismatchFails(t *testing.T) {
	fp := mustFirstParty(t)
	mismatched := &Secret{Version: SecretVersionLatest, Cipher: 0, Key: make([]byte, 32), Seed: nil}

	_, err := fp.MakeContainer(mismatched, []byte("x"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrIncompatibleSuite)
}

// Scenario S1.
func TestMakeContainerScenario(t *testing.T) {
	fp := mustFirstParty(t)
	secret, err := fp.NewSecret()
	require.NoError(t, err)

	geoc, err := fp.MakeContainer(secret, []byte("hello"))
	require.NoError(t, err)
	require.Len(t, geoc.Signature, 512)

	guid, err := geoc.GUID()
	require.NoError(t, err)
	require.Len(t, guid.Address, 64)

	plaintext, err := fp.ReceiveContainer(fp.SecondParty(), secret, geoc)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), plaintext)
}

// Scenario S3.
func TestBindDebindScenario(t *testing.T) {
	a := mustFirstParty(t)
	b := mustFirstParty(t)
	tp := NewThirdParty()

	target := SymbolicGUID()
	gobs, err := a.MakeBindStatic(target)
	require.NoError(t, err)
	gobsGUID, err := gobs.GUID()
	require.NoError(t, err)

	gdxx, err := a.MakeDebind(gobsGUID)
	require.NoError(t, err)

	require.NoError(t, tp.VerifyObject(a.SecondParty(), gobs))
	require.NoError(t, tp.VerifyObject(a.SecondParty(), gdxx))

	err = tp.VerifyObject(b.SecondParty(), gobs)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrBadSignature)
}

// Scenario S4.
func TestSecretFromBytesBadMagic(t *testing.T) {
	bad := append([]byte("XX"), make([]byte, 48)...)
	_, err := SecretFromBytes(bad)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidSecretEncoding)
}

func TestUnpackObjectDispatchesByTag(t *testing.T) {
	fp := mustFirstParty(t)
	o, err := fp.MakeBindStatic(SymbolicGUID())
	require.NoError(t, err)

	parsed, err := UnpackObject(packGOBSSealed(o))
	require.NoError(t, err)
	gobs, ok := parsed.(*GOBS)
	require.True(t, ok)
	require.Equal(t, o.Target, gobs.Target)
}

func TestUnpackObjectRejectsShortInput(t *testing.T) {
	_, err := UnpackObject([]byte{1, 2})
	require.ErrorIs(t, err, ErrUnknownObject)
}
