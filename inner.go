package golix

// InnerPayload is one of the three request payloads carried, OAEP-sealed,
// inside a GARQ: Handshake, Ack, or Nak.
type InnerPayload interface {
	innerKind() string
	Author() GUID
	Target() GUID
}

// Handshake proposes a shared Secret for a target object.
type Handshake struct {
	AuthorGUID GUID
	TargetGUID GUID
	Secret     *Secret
}

func (h *Handshake) innerKind() string { return "handshake" }
func (h *Handshake) Author() GUID      { return h.AuthorGUID }
func (h *Handshake) Target() GUID      { return h.TargetGUID }

// Ack acknowledges a prior handshake for a target object.
type Ack struct {
	AuthorGUID GUID
	TargetGUID GUID
	Status     uint8
}

func (a *Ack) innerKind() string { return "ack" }
func (a *Ack) Author() GUID      { return a.AuthorGUID }
func (a *Ack) Target() GUID      { return a.TargetGUID }

// Nak rejects a prior handshake for a target object.
type Nak struct {
	AuthorGUID GUID
	TargetGUID GUID
	Status     uint8
}

func (n *Nak) innerKind() string { return "nak" }
func (n *Nak) Author() GUID      { return n.AuthorGUID }
func (n *Nak) Target() GUID      { return n.TargetGUID }
