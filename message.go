package illumium

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// DefaultBodyLimit is a reasonable upper bound for API message bodies
const DefaultBodyLimit int64 = 1 << 20 // 1 MiB

// Message is a buffered HTTP message: the headers that describe a body
// together with the body itself. Codecs transform messages in place,
// keeping the Content-Type chain and the body encoding in step.
type Message struct {
	Header http.Header
	Body   []byte
}

// NewMessage creates a message with the given media type and body
func NewMessage(mediatype string, body []byte) *Message {
	m := &Message{
		Header: make(http.Header),
		Body:   body,
	}
	if mediatype != "" {
		m.SetContentType(mediatype)
	}
	return m
}

// ReadRequest buffers a request body into a message. The body is always
// drained and closed. A positive limit bounds the number of bytes read;
// anything larger fails with ErrBodyTooLarge.
func ReadRequest(r *http.Request, limit int64) (*Message, error) {
	return readMessage(r.Header, r.Body, limit)
}

// ReadResponse buffers a response body into a message under the same
// limit rules as ReadRequest.
func ReadResponse(resp *http.Response, limit int64) (*Message, error) {
	return readMessage(resp.Header, resp.Body, limit)
}

func readMessage(header http.Header, body io.ReadCloser, limit int64) (*Message, error) {
	m := &Message{Header: header.Clone()}
	if m.Header == nil {
		m.Header = make(http.Header)
	}

	if body == nil {
		m.Body = []byte{}
		return m, nil
	}
	defer body.Close()

	data, err := readLimited(body, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	m.Body = data
	return m, nil
}

// readLimited drains r, refusing bodies longer than limit bytes.
// A limit of zero or less reads without bound.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrBodyTooLarge
	}
	return data, nil
}

// Request builds a client request carrying the message headers and body
func (m *Message) Request(method, url string) (*http.Request, error) {
	req, err := http.NewRequest(method, url, bytes.NewReader(m.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if m.Header != nil {
		req.Header = m.Header.Clone()
	}
	return req, nil
}

// Response builds a buffered response around the message, mainly for
// tests and proxies. Servers should use Write instead.
func (m *Message) Response(status int) *http.Response {
	header := m.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(m.Body)),
		ContentLength: int64(len(m.Body)),
	}
}

// Write sends the message through a response writer with the given status
func (m *Message) Write(w http.ResponseWriter, status int) error {
	header := w.Header()
	for key, values := range m.Header {
		header[key] = values
	}
	w.WriteHeader(status)
	if _, err := w.Write(m.Body); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}

// ContentType returns the message media type, or "" when unset
func (m *Message) ContentType() string {
	return m.Header.Get("Content-Type")
}

// SetContentType replaces the message media type
func (m *Message) SetContentType(mediatype string) {
	if m.Header == nil {
		m.Header = make(http.Header)
	}
	m.Header.Set("Content-Type", mediatype)
}

// HeaderIs checks a header against an exact value
func (m *Message) HeaderIs(key, want string) bool {
	return m.Header.Get(key) == want
}

// Codec flavors. Each codec comes in three forms, mirrored by the JSON
// helpers in json.go: plain (body only), Type (bound to an exact media
// type), and Auto (driven by the Content-Type subtype chain).

// Decode applies the codec to the body, leaving headers untouched.
// The body is only replaced when decoding succeeds.
func (m *Message) Decode(c Codec) error {
	body, err := c.Decode(m.Body)
	if err != nil {
		return decodeErr(c.Subtype(), err)
	}
	m.Body = body
	return nil
}

// DecodeType decodes the body after checking Content-Type matches
// mediatype exactly
func (m *Message) DecodeType(c Codec, mediatype string) error {
	if !m.HeaderIs("Content-Type", mediatype) {
		return decodeErr(c.Subtype(), ErrUnexpectedType)
	}
	return m.Decode(c)
}

// DecodeAuto pops the codec subtype off the Content-Type chain and
// decodes the body, leaving Content-Type describing the inner layer
func (m *Message) DecodeAuto(c Codec) error {
	inner, ok := UnwrapType(m.ContentType(), c.Subtype())
	if !ok {
		return decodeErr(c.Subtype(), ErrUnexpectedType)
	}
	if err := m.Decode(c); err != nil {
		return err
	}
	m.SetContentType(inner)
	return nil
}

// Encode applies the codec to the body, leaving headers untouched
func (m *Message) Encode(c Codec) error {
	body, err := c.Encode(m.Body)
	if err != nil {
		return encodeErr(c.Subtype(), err)
	}
	m.Body = body
	return nil
}

// EncodeType encodes the body and sets Content-Type to mediatype
func (m *Message) EncodeType(c Codec, mediatype string) error {
	if err := m.Encode(c); err != nil {
		return err
	}
	m.SetContentType(mediatype)
	return nil
}

// EncodeAuto encodes the body and pushes the codec subtype onto the
// Content-Type chain. The message must already carry a media type.
func (m *Message) EncodeAuto(c Codec) error {
	wrapped, ok := WrapType(m.ContentType(), c.Subtype())
	if !ok {
		return encodeErr(c.Subtype(), ErrUnexpectedType)
	}
	if err := m.Encode(c); err != nil {
		return err
	}
	m.SetContentType(wrapped)
	return nil
}
