package golix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGIDCPackUnpackRoundTrip(t *testing.T) {
	fp := mustFirstParty(t)
	packed := fp.SecondParty().PackedGIDC()

	second, err := SecondPartyFromPacked(packed)
	require.NoError(t, err)
	require.True(t, second.GUID().Equal(fp.GUID()))
	require.Equal(t, fp.SecondParty().PublicKeys().Signature.N, second.PublicKeys().Signature.N)

	parsed, err := UnpackObject(packed)
	require.NoError(t, err)
	gidc, ok := parsed.(*GIDC)
	require.True(t, ok)
	require.True(t, gidc.GUID.Equal(fp.GUID()))
}

func TestInnerPayloadPackUnpackRoundTrip(t *testing.T) {
	fp := mustFirstParty(t)
	secret, err := fp.NewSecret()
	require.NoError(t, err)
	target := SymbolicGUID()

	h := fp.MakeHandshake(target, secret)
	packedH, err := packInner(h)
	require.NoError(t, err)
	decodedH, err := unpackInner(packedH)
	require.NoError(t, err)
	hs, ok := decodedH.(*Handshake)
	require.True(t, ok)
	require.True(t, hs.Secret.Equal(secret))
	require.True(t, hs.AuthorGUID.Equal(fp.GUID()))

	a := fp.MakeAck(target, 7)
	packedA, err := packInner(a)
	require.NoError(t, err)
	decodedA, err := unpackInner(packedA)
	require.NoError(t, err)
	ack, ok := decodedA.(*Ack)
	require.True(t, ok)
	require.Equal(t, uint8(7), ack.Status)

	n := fp.MakeNak(target, 3)
	packedN, err := packInner(n)
	require.NoError(t, err)
	decodedN, err := unpackInner(packedN)
	require.NoError(t, err)
	nak, ok := decodedN.(*Nak)
	require.True(t, ok)
	require.Equal(t, uint8(3), nak.Status)
}

func TestUnpackGOBSRejectsBadTag(t *testing.T) {
	_, err := unpackGOBS([]byte("nope"))
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestAddressAlgoZeroIsSentinel(t *testing.T) {
	addr, err := Address(0, []byte("anything"))
	require.NoError(t, err)
	require.Equal(t, symbolicAddress, addr)
	require.NoError(t, VerifyAddress(0, addr, []byte("anything else")))
}

func TestAddressAlgoOneDetectsMismatch(t *testing.T) {
	addr, err := Address(1, []byte("data"))
	require.NoError(t, err)
	err = VerifyAddress(1, addr, []byte("different data"))
	require.ErrorIs(t, err, ErrAddressMismatch)
}
