// Package illumium provides the message codec layer for HTTP APIs that
// exchange layered payloads, enabling end-to-end encrypted request and
// response bodies with modern cryptographic primitives.
//
// # Overview
//
// illumium models an HTTP message as buffered headers plus body and
// describes how the body is encoded through its Content-Type. Each
// codec layer appends a subtype to the media type:
//
//	application/vnd.illumium.v1+json+sealedbox+base64
//
// reads inside out: a JSON document, sealed to the server key, armored
// as base64. Decoding strips layers right to left until the typed
// payload remains; encoding pushes them back left to right.
//
// # Supported Codecs
//
// - base64: standard padded base64 armor for embedding binary layers
//   in text transports
// - sealedbox: anonymous NaCl sealed boxes (X25519 +
//   XSalsa20-Poly1305), sealed to a recipient public key
// - sbox: NaCl secret boxes under a shared symmetric key, with a
//   random nonce prepended to each body
//
// JSON is the innermost layer where bytes become typed values, so it
// has dedicated helpers on Message rather than a Codec.
//
// # Basic Usage
//
//	// Server-side key material
//	keyring, err := illumium.GenerateKeyring()
//	if err != nil {
//	    panic(err)
//	}
//	chain := keyring.Chain()
//
//	// Buffer and unwrap an incoming request
//	msg, err := illumium.ReadRequest(r, illumium.DefaultBodyLimit)
//	if err != nil {
//	    // body too large or unreadable
//	}
//	if err := chain.Decode(msg); err != nil {
//	    // a codec layer failed to strip
//	}
//
//	var params EchoParams
//	if err := msg.DecodeJSONAuto(&params); err != nil {
//	    // payload was not the expected JSON
//	}
//
// Responses are built the same way in reverse: EncodeJSONAuto, then
// Chain.Encode with the layers the client asked for, then Write.
//
// # Security Considerations
//
// Protected against:
//   - Passive observation of request and response bodies in transit,
//     beyond what TLS provides
//   - Tampering with sealed bodies (authenticated encryption)
//   - Forged tokens (secret box key never leaves the server)
//
// Not protected against:
//   - Traffic analysis (body sizes and timing remain visible)
//   - A compromised server key
//   - Replay of sealed requests; deduplicate at the application layer
//     if replays matter
//
// # Keys
//
// All keys are 32 bytes. The Keyring groups the server keypair with the
// token key and persists as JSON over an absfs.FileSystem, or inline in
// an environment variable for deployments without a key file. Keys
// marshal as base64 text wherever encoding.TextMarshaler is honored.
package illumium
