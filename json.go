package illumium

import (
	"encoding/json"
)

// JSON is the innermost layer of every media type chain: it is where
// bytes become typed values, so it gets dedicated helpers instead of a
// Codec. The three flavors line up with the generic codec flavors on
// Message.

// DecodeJSON unmarshals the body into v without touching headers
func (m *Message) DecodeJSON(v any) error {
	if err := json.Unmarshal(m.Body, v); err != nil {
		return decodeErr(SubtypeJSON, ErrInvalidData)
	}
	return nil
}

// DecodeJSONType unmarshals the body after checking Content-Type
// matches mediatype exactly
func (m *Message) DecodeJSONType(v any, mediatype string) error {
	if !m.HeaderIs("Content-Type", mediatype) {
		return decodeErr(SubtypeJSON, ErrUnexpectedType)
	}
	return m.DecodeJSON(v)
}

// DecodeJSONAuto unmarshals the body, popping the json subtype off the
// Content-Type chain. The media type must end with "+json".
func (m *Message) DecodeJSONAuto(v any) error {
	inner, ok := UnwrapType(m.ContentType(), SubtypeJSON)
	if !ok {
		return decodeErr(SubtypeJSON, ErrUnexpectedType)
	}
	if err := m.DecodeJSON(v); err != nil {
		return err
	}
	m.SetContentType(inner)
	return nil
}

// EncodeJSON marshals v into the body without touching headers
func (m *Message) EncodeJSON(v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return encodeErr(SubtypeJSON, ErrInvalidData)
	}
	m.Body = body
	return nil
}

// EncodeJSONType marshals v into the body and sets Content-Type to
// mediatype
func (m *Message) EncodeJSONType(v any, mediatype string) error {
	if err := m.EncodeJSON(v); err != nil {
		return err
	}
	m.SetContentType(mediatype)
	return nil
}

// EncodeJSONAuto marshals v into the body and pushes the json subtype
// onto the Content-Type chain. The message must already carry a media
// type naming the payload.
func (m *Message) EncodeJSONAuto(v any) error {
	wrapped, ok := WrapType(m.ContentType(), SubtypeJSON)
	if !ok {
		return encodeErr(SubtypeJSON, ErrUnexpectedType)
	}
	if err := m.EncodeJSON(v); err != nil {
		return err
	}
	m.SetContentType(wrapped)
	return nil
}
