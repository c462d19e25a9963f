package golix

// objectState models the one-way Empty -> BodyFilled -> Packed -> Sealed
// typestate §4.I describes. Go has no first-class way to make this a
// compile-time error without fighting the plain-struct style the rest of
// this package uses, so the discipline is enforced at runtime by each
// object's own accessor methods instead.
type objectState uint8

const (
	stateEmpty objectState = iota
	stateEncoded
	statePacked
	stateSealed
)

// GIDC is the identity container: published once per identity, never
// mutated, and never signed — its GUID is itself the binding commitment.
type GIDC struct {
	Cipher      uint8
	AddressAlgo uint8
	GUID        GUID
	PublicKeys  PublicKeyBundle
}

// GEOC is an encrypted container: an author's symmetrically encrypted
// payload, signed over its own GUID.
type GEOC struct {
	state       objectState
	Cipher      uint8
	AddressAlgo uint8
	Author      GUID
	Payload     []byte // ciphertext
	guid        GUID
	Signature   []byte
}

func (o *GEOC) GUID() (GUID, error) {
	if o.state < statePacked {
		return GUID{}, ErrIncompleteObject
	}
	return o.guid, nil
}

// GOBS is a static binding: a binder vouching that target should be
// retained, signed over its own GUID.
type GOBS struct {
	state       objectState
	Cipher      uint8
	AddressAlgo uint8
	Binder      GUID
	Target      GUID
	guid        GUID
	Signature   []byte
}

func (o *GOBS) GUID() (GUID, error) {
	if o.state < statePacked {
		return GUID{}, ErrIncompleteObject
	}
	return o.guid, nil
}

// GOBD is a dynamic binding: an ordered frame history over a chain of
// target GUIDs, published under a dynamic address that moves forward
// one frame at a time.
type GOBD struct {
	state          objectState
	Cipher         uint8
	AddressAlgo    uint8
	Binder         GUID
	Targets        []GUID
	DynamicAddress *GUID // nil on first publication
	History        []GUID
	guid           GUID
	Signature      []byte
}

func (o *GOBD) GUID() (GUID, error) {
	if o.state < statePacked {
		return GUID{}, ErrIncompleteObject
	}
	return o.guid, nil
}

// GDXX is a debinding: a debinder revoking a previously bound target,
// signed over its own GUID.
type GDXX struct {
	state       objectState
	Cipher      uint8
	AddressAlgo uint8
	Debinder    GUID
	Target      GUID
	guid        GUID
	Signature   []byte
}

func (o *GDXX) GUID() (GUID, error) {
	if o.state < statePacked {
		return GUID{}, ErrIncompleteObject
	}
	return o.guid, nil
}

// GARQ is the asymmetric request envelope: an OAEP-sealed inner payload,
// MAC-authenticated over its own GUID with a key derived from the
// sender/recipient ECDH exchange. The public header never reveals the
// author; Author/Plaintext are populated only by UnpackRequest and are
// cleared by ReceiveRequest once verified.
type GARQ struct {
	state       objectState
	Cipher      uint8
	AddressAlgo uint8
	Recipient   GUID
	Payload     []byte // OAEP ciphertext of the packed inner payload
	guid        GUID
	Signature   []byte // an HMAC tag, despite the name — see §4.G step 6

	Author    GUID
	Plaintext InnerPayload
}

func (o *GARQ) GUID() (GUID, error) {
	if o.state < statePacked {
		return GUID{}, ErrIncompleteObject
	}
	return o.guid, nil
}

// seal computes guid = Address(addrAlgo, unsigned). It does not touch
// any object's state; each caller attaches the trailer and sets the
// state itself. Every mint path in firstparty.go funnels through this so
// the signed/MACed quantity is always exactly guid.Address, never the
// whole packed body.
func seal(addrAlgoID uint8, unsigned []byte) (GUID, error) {
	addr, err := Address(addrAlgoID, unsigned)
	if err != nil {
		return GUID{}, err
	}
	return GUID{Algo: addrAlgoID, Address: addr}, nil
}
