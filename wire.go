package golix

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ParseError is the uniform parse-error signal the external schema
// layer is expected to expose (§4.D / §1 Out of scope). This package
// ships a concrete, deliberately simple framing underneath that
// interface — fixed field layout, no compression, no versioning
// cleverness — so the rest of the pipeline has something real to pack
// and unpack against.
type ParseError struct {
	Kind string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("golix: wire: %s", e.Kind)
	}
	return fmt.Sprintf("golix: wire: %s: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(kind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

const wireVersion = 1

var (
	tagGIDC = [4]byte{'G', 'I', 'D', 'C'}
	tagGEOC = [4]byte{'G', 'E', 'O', 'C'}
	tagGOBS = [4]byte{'G', 'O', 'B', 'S'}
	tagGOBD = [4]byte{'G', 'O', 'B', 'D'}
	tagGDXX = [4]byte{'G', 'D', 'X', 'X'}
	tagGARQ = [4]byte{'G', 'A', 'R', 'Q'}

	tagHandshake = [4]byte{'H', 'S', 'H', 'K'}
	tagAck       = [4]byte{'H', 'A', 'C', 'K'}
	tagNak       = [4]byte{'H', 'N', 'A', 'K'}
)

// --- low-level field helpers -------------------------------------------------

func writeBlob(buf *bytes.Buffer, b []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(b)))
	buf.Write(n[:])
	buf.Write(b)
}

func readBlob(r *bytes.Reader) ([]byte, error) {
	var n [4]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(n[:])
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func writeGUID(buf *bytes.Buffer, g GUID) {
	buf.WriteByte(g.Algo)
	writeBlob(buf, g.Address)
}

func readGUID(r *bytes.Reader) (GUID, error) {
	algo, err := r.ReadByte()
	if err != nil {
		return GUID{}, err
	}
	addr, err := readBlob(r)
	if err != nil {
		return GUID{}, err
	}
	return GUID{Algo: algo, Address: addr}, nil
}

func writeGUIDList(buf *bytes.Buffer, list []GUID) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(list)))
	buf.Write(n[:])
	for _, g := range list {
		writeGUID(buf, g)
	}
}

func readGUIDList(r *bytes.Reader) ([]GUID, error) {
	var n [4]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return nil, err
	}
	count := binary.BigEndian.Uint32(n[:])
	out := make([]GUID, 0, count)
	for i := uint32(0); i < count; i++ {
		g, err := readGUID(r)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func readTag(r *bytes.Reader) ([4]byte, error) {
	var tag [4]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return tag, err
	}
	return tag, nil
}

func consumedBytes(all []byte, r *bytes.Reader) []byte {
	return all[:len(all)-r.Len()]
}

// --- GIDC ---------------------------------------------------------------

func packGIDCUnsigned(cipher, addrAlgo uint8, packedPubKeys []byte) []byte {
	var buf bytes.Buffer
	buf.Write(tagGIDC[:])
	buf.WriteByte(wireVersion)
	buf.WriteByte(cipher)
	buf.WriteByte(addrAlgo)
	writeBlob(&buf, packedPubKeys)
	return buf.Bytes()
}

func unpackGIDC(data []byte) (cipher, addrAlgo uint8, packedPubKeys []byte, err error) {
	r := bytes.NewReader(data)
	tag, err := readTag(r)
	if err != nil || tag != tagGIDC {
		return 0, 0, nil, parseErrorf("GIDC", "bad tag")
	}
	if _, err := r.ReadByte(); err != nil { // version
		return 0, 0, nil, parseErrorf("GIDC", "truncated")
	}
	if cipher, err = r.ReadByte(); err != nil {
		return 0, 0, nil, parseErrorf("GIDC", "truncated")
	}
	if addrAlgo, err = r.ReadByte(); err != nil {
		return 0, 0, nil, parseErrorf("GIDC", "truncated")
	}
	if packedPubKeys, err = readBlob(r); err != nil {
		return 0, 0, nil, parseErrorf("GIDC", "truncated public keys")
	}
	return cipher, addrAlgo, packedPubKeys, nil
}

// --- GEOC ---------------------------------------------------------------

func packGEOCUnsigned(o *GEOC) []byte {
	var buf bytes.Buffer
	buf.Write(tagGEOC[:])
	buf.WriteByte(wireVersion)
	buf.WriteByte(o.Cipher)
	buf.WriteByte(o.AddressAlgo)
	writeGUID(&buf, o.Author)
	writeBlob(&buf, o.Payload)
	return buf.Bytes()
}

func packGEOCSealed(o *GEOC) []byte {
	buf := bytes.NewBuffer(packGEOCUnsigned(o))
	writeBlob(buf, o.Signature)
	return buf.Bytes()
}

func unpackGEOC(data []byte) (*GEOC, error) {
	r := bytes.NewReader(data)
	tag, err := readTag(r)
	if err != nil || tag != tagGEOC {
		return nil, parseErrorf("GEOC", "bad tag")
	}
	if _, err := r.ReadByte(); err != nil {
		return nil, parseErrorf("GEOC", "truncated")
	}
	o := &GEOC{}
	if o.Cipher, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("GEOC", "truncated")
	}
	if o.AddressAlgo, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("GEOC", "truncated")
	}
	if o.Author, err = readGUID(r); err != nil {
		return nil, parseErrorf("GEOC", "truncated author")
	}
	if o.Payload, err = readBlob(r); err != nil {
		return nil, parseErrorf("GEOC", "truncated payload")
	}
	unsigned := consumedBytes(data, r)
	if o.Signature, err = readBlob(r); err != nil {
		return nil, parseErrorf("GEOC", "truncated signature")
	}
	guid, err := seal(o.AddressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	o.guid = guid
	o.state = stateSealed
	return o, nil
}

// --- GOBS ---------------------------------------------------------------

func packGOBSUnsigned(o *GOBS) []byte {
	var buf bytes.Buffer
	buf.Write(tagGOBS[:])
	buf.WriteByte(wireVersion)
	buf.WriteByte(o.Cipher)
	buf.WriteByte(o.AddressAlgo)
	writeGUID(&buf, o.Binder)
	writeGUID(&buf, o.Target)
	return buf.Bytes()
}

func packGOBSSealed(o *GOBS) []byte {
	buf := bytes.NewBuffer(packGOBSUnsigned(o))
	writeBlob(buf, o.Signature)
	return buf.Bytes()
}

func unpackGOBS(data []byte) (*GOBS, error) {
	r := bytes.NewReader(data)
	tag, err := readTag(r)
	if err != nil || tag != tagGOBS {
		return nil, parseErrorf("GOBS", "bad tag")
	}
	if _, err := r.ReadByte(); err != nil {
		return nil, parseErrorf("GOBS", "truncated")
	}
	o := &GOBS{}
	if o.Cipher, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("GOBS", "truncated")
	}
	if o.AddressAlgo, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("GOBS", "truncated")
	}
	if o.Binder, err = readGUID(r); err != nil {
		return nil, parseErrorf("GOBS", "truncated binder")
	}
	if o.Target, err = readGUID(r); err != nil {
		return nil, parseErrorf("GOBS", "truncated target")
	}
	unsigned := consumedBytes(data, r)
	if o.Signature, err = readBlob(r); err != nil {
		return nil, parseErrorf("GOBS", "truncated signature")
	}
	guid, err := seal(o.AddressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	o.guid = guid
	o.state = stateSealed
	return o, nil
}

// --- GOBD ---------------------------------------------------------------

func packGOBDUnsigned(o *GOBD) []byte {
	var buf bytes.Buffer
	buf.Write(tagGOBD[:])
	buf.WriteByte(wireVersion)
	buf.WriteByte(o.Cipher)
	buf.WriteByte(o.AddressAlgo)
	writeGUID(&buf, o.Binder)
	writeGUIDList(&buf, o.Targets)
	if o.DynamicAddress == nil {
		buf.WriteByte(0)
	} else {
		buf.WriteByte(1)
		writeGUID(&buf, *o.DynamicAddress)
	}
	writeGUIDList(&buf, o.History)
	return buf.Bytes()
}

func packGOBDSealed(o *GOBD) []byte {
	buf := bytes.NewBuffer(packGOBDUnsigned(o))
	writeBlob(buf, o.Signature)
	return buf.Bytes()
}

func unpackGOBD(data []byte) (*GOBD, error) {
	r := bytes.NewReader(data)
	tag, err := readTag(r)
	if err != nil || tag != tagGOBD {
		return nil, parseErrorf("GOBD", "bad tag")
	}
	if _, err := r.ReadByte(); err != nil {
		return nil, parseErrorf("GOBD", "truncated")
	}
	o := &GOBD{}
	if o.Cipher, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("GOBD", "truncated")
	}
	if o.AddressAlgo, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("GOBD", "truncated")
	}
	if o.Binder, err = readGUID(r); err != nil {
		return nil, parseErrorf("GOBD", "truncated binder")
	}
	if o.Targets, err = readGUIDList(r); err != nil {
		return nil, parseErrorf("GOBD", "truncated targets")
	}
	hasDynamic, err := r.ReadByte()
	if err != nil {
		return nil, parseErrorf("GOBD", "truncated")
	}
	if hasDynamic == 1 {
		g, err := readGUID(r)
		if err != nil {
			return nil, parseErrorf("GOBD", "truncated dynamic address")
		}
		o.DynamicAddress = &g
	}
	if o.History, err = readGUIDList(r); err != nil {
		return nil, parseErrorf("GOBD", "truncated history")
	}
	unsigned := consumedBytes(data, r)
	if o.Signature, err = readBlob(r); err != nil {
		return nil, parseErrorf("GOBD", "truncated signature")
	}
	guid, err := seal(o.AddressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	o.guid = guid
	o.state = stateSealed
	return o, nil
}

// --- GDXX ---------------------------------------------------------------

func packGDXXUnsigned(o *GDXX) []byte {
	var buf bytes.Buffer
	buf.Write(tagGDXX[:])
	buf.WriteByte(wireVersion)
	buf.WriteByte(o.Cipher)
	buf.WriteByte(o.AddressAlgo)
	writeGUID(&buf, o.Debinder)
	writeGUID(&buf, o.Target)
	return buf.Bytes()
}

func packGDXXSealed(o *GDXX) []byte {
	buf := bytes.NewBuffer(packGDXXUnsigned(o))
	writeBlob(buf, o.Signature)
	return buf.Bytes()
}

func unpackGDXX(data []byte) (*GDXX, error) {
	r := bytes.NewReader(data)
	tag, err := readTag(r)
	if err != nil || tag != tagGDXX {
		return nil, parseErrorf("GDXX", "bad tag")
	}
	if _, err := r.ReadByte(); err != nil {
		return nil, parseErrorf("GDXX", "truncated")
	}
	o := &GDXX{}
	if o.Cipher, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("GDXX", "truncated")
	}
	if o.AddressAlgo, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("GDXX", "truncated")
	}
	if o.Debinder, err = readGUID(r); err != nil {
		return nil, parseErrorf("GDXX", "truncated debinder")
	}
	if o.Target, err = readGUID(r); err != nil {
		return nil, parseErrorf("GDXX", "truncated target")
	}
	unsigned := consumedBytes(data, r)
	if o.Signature, err = readBlob(r); err != nil {
		return nil, parseErrorf("GDXX", "truncated signature")
	}
	guid, err := seal(o.AddressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	o.guid = guid
	o.state = stateSealed
	return o, nil
}

// --- GARQ -----------------------------------------------------------------

func packGARQUnsigned(o *GARQ) []byte {
	var buf bytes.Buffer
	buf.Write(tagGARQ[:])
	buf.WriteByte(wireVersion)
	buf.WriteByte(o.Cipher)
	buf.WriteByte(o.AddressAlgo)
	writeGUID(&buf, o.Recipient)
	writeBlob(&buf, o.Payload)
	return buf.Bytes()
}

func packGARQSealed(o *GARQ) []byte {
	buf := bytes.NewBuffer(packGARQUnsigned(o))
	writeBlob(buf, o.Signature)
	return buf.Bytes()
}

func unpackGARQ(data []byte) (*GARQ, error) {
	r := bytes.NewReader(data)
	tag, err := readTag(r)
	if err != nil || tag != tagGARQ {
		return nil, parseErrorf("GARQ", "bad tag")
	}
	if _, err := r.ReadByte(); err != nil {
		return nil, parseErrorf("GARQ", "truncated")
	}
	o := &GARQ{}
	if o.Cipher, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("GARQ", "truncated")
	}
	if o.AddressAlgo, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("GARQ", "truncated")
	}
	if o.Recipient, err = readGUID(r); err != nil {
		return nil, parseErrorf("GARQ", "truncated recipient")
	}
	if o.Payload, err = readBlob(r); err != nil {
		return nil, parseErrorf("GARQ", "truncated payload")
	}
	unsigned := consumedBytes(data, r)
	if o.Signature, err = readBlob(r); err != nil {
		return nil, parseErrorf("GARQ", "truncated signature")
	}
	guid, err := seal(o.AddressAlgo, unsigned)
	if err != nil {
		return nil, err
	}
	o.guid = guid
	o.state = stateSealed
	return o, nil
}

// --- inner payloads (packed, then OAEP-sealed as a GARQ's Payload) ------

func packHandshake(h *Handshake) []byte {
	var buf bytes.Buffer
	buf.Write(tagHandshake[:])
	writeGUID(&buf, h.AuthorGUID)
	writeGUID(&buf, h.TargetGUID)
	writeBlob(&buf, h.Secret.Bytes())
	return buf.Bytes()
}

func packAck(a *Ack) []byte {
	var buf bytes.Buffer
	buf.Write(tagAck[:])
	writeGUID(&buf, a.AuthorGUID)
	writeGUID(&buf, a.TargetGUID)
	buf.WriteByte(a.Status)
	return buf.Bytes()
}

func packNak(n *Nak) []byte {
	var buf bytes.Buffer
	buf.Write(tagNak[:])
	writeGUID(&buf, n.AuthorGUID)
	writeGUID(&buf, n.TargetGUID)
	buf.WriteByte(n.Status)
	return buf.Bytes()
}

func packInner(inner InnerPayload) ([]byte, error) {
	switch v := inner.(type) {
	case *Handshake:
		return packHandshake(v), nil
	case *Ack:
		return packAck(v), nil
	case *Nak:
		return packNak(v), nil
	default:
		return nil, withDetail(ErrInvalidIdentity, "unknown inner payload type")
	}
}

// unpackInner tries, in order, handshake then ack then nak, returning
// the first that parses successfully — mirroring §4.G's unpack_request.
func unpackInner(data []byte) (InnerPayload, error) {
	if h, err := unpackHandshake(data); err == nil {
		return h, nil
	}
	if a, err := unpackAck(data); err == nil {
		return a, nil
	}
	if n, err := unpackNak(data); err == nil {
		return n, nil
	}
	return nil, ErrBadRequest
}

func unpackHandshake(data []byte) (*Handshake, error) {
	r := bytes.NewReader(data)
	tag, err := readTag(r)
	if err != nil || tag != tagHandshake {
		return nil, parseErrorf("Handshake", "bad tag")
	}
	h := &Handshake{}
	if h.AuthorGUID, err = readGUID(r); err != nil {
		return nil, parseErrorf("Handshake", "truncated author")
	}
	if h.TargetGUID, err = readGUID(r); err != nil {
		return nil, parseErrorf("Handshake", "truncated target")
	}
	secretBytes, err := readBlob(r)
	if err != nil {
		return nil, parseErrorf("Handshake", "truncated secret")
	}
	secret, err := SecretFromBytes(secretBytes)
	if err != nil {
		return nil, parseErrorf("Handshake", "bad secret")
	}
	h.Secret = secret
	return h, nil
}

func unpackAck(data []byte) (*Ack, error) {
	r := bytes.NewReader(data)
	tag, err := readTag(r)
	if err != nil || tag != tagAck {
		return nil, parseErrorf("Ack", "bad tag")
	}
	a := &Ack{}
	if a.AuthorGUID, err = readGUID(r); err != nil {
		return nil, parseErrorf("Ack", "truncated author")
	}
	if a.TargetGUID, err = readGUID(r); err != nil {
		return nil, parseErrorf("Ack", "truncated target")
	}
	if a.Status, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("Ack", "truncated status")
	}
	return a, nil
}

func unpackNak(data []byte) (*Nak, error) {
	r := bytes.NewReader(data)
	tag, err := readTag(r)
	if err != nil || tag != tagNak {
		return nil, parseErrorf("Nak", "bad tag")
	}
	n := &Nak{}
	if n.AuthorGUID, err = readGUID(r); err != nil {
		return nil, parseErrorf("Nak", "truncated author")
	}
	if n.TargetGUID, err = readGUID(r); err != nil {
		return nil, parseErrorf("Nak", "truncated target")
	}
	if n.Status, err = r.ReadByte(); err != nil {
		return nil, parseErrorf("Nak", "truncated status")
	}
	return n, nil
}

// --- dispatch for ThirdParty.UnpackObject -------------------------------

// UnpackObject reads the 4-byte kind tag at the start of data and parses
// data as the object kind that tag names. Input shorter than a tag, an
// unrecognised tag, or a body that does not parse as its tagged kind all
// yield ErrUnknownObject, carrying the underlying error as its cause.
func UnpackObject(data []byte) (obj any, err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrUnknownObject) {
			obj, err = nil, withCause(ErrUnknownObject, err)
		}
	}()
	if len(data) < 4 {
		return nil, ErrUnknownObject
	}
	var tag [4]byte
	copy(tag[:], data[:4])
	switch tag {
	case tagGEOC:
		return unpackGEOC(data)
	case tagGOBS:
		return unpackGOBS(data)
	case tagGOBD:
		return unpackGOBD(data)
	case tagGDXX:
		return unpackGDXX(data)
	case tagGARQ:
		return unpackGARQ(data)
	case tagGIDC:
		cipher, addrAlgo, packedPub, err := unpackGIDC(data)
		if err != nil {
			return nil, err
		}
		suite, err := SuiteFor(cipher)
		if err != nil {
			return nil, err
		}
		pub, err := suite.UnpackPublicKeys(cipher, packedPub)
		if err != nil {
			return nil, err
		}
		unsigned := packGIDCUnsigned(cipher, addrAlgo, packedPub)
		addr, err := Address(addrAlgo, unsigned)
		if err != nil {
			return nil, err
		}
		return &GIDC{
			Cipher:      cipher,
			AddressAlgo: addrAlgo,
			GUID:        GUID{Algo: addrAlgo, Address: addr},
			PublicKeys:  *pub,
		}, nil
	default:
		return nil, ErrUnknownObject
	}
}
