package illumium

// Subtype names for the built-in codecs, as they appear in media types
// like "application/vnd.illumium.v1+json+sbox+base64"
const (
	SubtypeJSON      = "json"
	SubtypeBase64    = "base64"
	SubtypeSealedBox = "sealedbox"
	SubtypeSecretBox = "sbox"
)

// Codec transforms message bodies between an outer (wire) form and an
// inner form. Encode wraps a body in the codec's layer, Decode strips
// it. Implementations must not modify the input slice.
type Codec interface {
	// Subtype names the codec's layer in the Content-Type chain
	Subtype() string

	// Encode wraps body in the codec's layer
	Encode(body []byte) ([]byte, error)

	// Decode strips the codec's layer from body
	Decode(body []byte) ([]byte, error)
}

// UnwrapType removes subtype from the end of mediatype. It reports
// whether mediatype actually ended with subtype; when it did not, the
// returned string is empty.
func UnwrapType(mediatype, subtype string) (string, bool) {
	if mediatype == "" {
		return "", false
	}
	ct := ParseContentType(mediatype)
	last, ok := ct.LastSubtype()
	if !ok || last != subtype {
		return "", false
	}
	ct.PopSubtype()
	return ct.String(), true
}

// WrapType appends subtype to the end of mediatype. It reports whether
// mediatype was usable; only an empty mediatype is refused.
func WrapType(mediatype, subtype string) (string, bool) {
	if mediatype == "" {
		return "", false
	}
	ct := ParseContentType(mediatype)
	ct.PushSubtype(subtype)
	return ct.String(), true
}

// Chain resolves codecs by their subtype and drives whole-message
// transcoding. A server registers every codec it serves once and lets
// inbound Content-Type chains pick the layers to strip.
//
// Register is not safe to call concurrently with other methods; build
// the chain up front and treat it as read-only afterwards.
type Chain struct {
	codecs map[string]Codec
}

// NewChain creates a chain holding the given codecs
func NewChain(codecs ...Codec) *Chain {
	c := &Chain{
		codecs: make(map[string]Codec, len(codecs)),
	}
	for _, codec := range codecs {
		c.Register(codec)
	}
	return c
}

// Register adds a codec, replacing any previous codec with the same subtype
func (c *Chain) Register(codec Codec) {
	c.codecs[codec.Subtype()] = codec
}

// Lookup returns the registered codec for subtype
func (c *Chain) Lookup(subtype string) (Codec, bool) {
	codec, ok := c.codecs[subtype]
	return codec, ok
}

// Decode strips codec layers from the message, innermost last, until
// the Content-Type chain ends or names a subtype with no registered
// codec. Running out of known subtypes is not an error; a registered
// codec failing to decode is.
func (c *Chain) Decode(m *Message) error {
	for {
		ct := ParseContentType(m.ContentType())
		last, ok := ct.LastSubtype()
		if !ok {
			return nil
		}
		codec, ok := c.codecs[last]
		if !ok {
			return nil
		}
		if err := m.DecodeAuto(codec); err != nil {
			return err
		}
	}
}

// Encode applies the named codec layers to the message in order,
// pushing each subtype onto the Content-Type chain. An unregistered
// subtype fails with ErrUnknownSubtype before any further layer is
// applied.
func (c *Chain) Encode(m *Message, subtypes ...string) error {
	for _, subtype := range subtypes {
		codec, ok := c.codecs[subtype]
		if !ok {
			return encodeErr(subtype, ErrUnknownSubtype)
		}
		if err := m.EncodeAuto(codec); err != nil {
			return err
		}
	}
	return nil
}
