package illumium

import (
	"strings"
)

// ContentType is a media type whose subtypes form a chain of applied
// encodings, innermost first. "application/vnd.illumium.v1+json+base64"
// describes a vendor document that was JSON-serialized and then
// base64-armored; decoding walks the chain from the right.
type ContentType struct {
	full string
	offs []int // end offset of the type, then of each subtype
}

// ParseContentType parses a media type of the form "type/sub1+sub2+...".
// A value without a slash is treated as a bare type with no subtypes.
func ParseContentType(src string) *ContentType {
	offs := make([]int, 0, 4)

	if i := strings.IndexByte(src, '/'); i >= 0 {
		offs = append(offs, i)
		off := i + 1
		for {
			j := strings.IndexByte(src[off:], '+')
			if j < 0 {
				offs = append(offs, len(src))
				break
			}
			off += j
			offs = append(offs, off)
			off++
		}
	} else {
		offs = append(offs, len(src))
	}

	return &ContentType{full: src, offs: offs}
}

// String returns the media type with all popped subtypes removed
func (ct *ContentType) String() string {
	return ct.full[:ct.offs[len(ct.offs)-1]]
}

// Type returns the main type ("application" of "application/json")
func (ct *ContentType) Type() string {
	return ct.full[:ct.offs[0]]
}

// NumSubtypes returns the number of subtypes in the chain
func (ct *ContentType) NumSubtypes() int {
	return len(ct.offs) - 1
}

// Subtype returns the subtype at the given position, innermost first
func (ct *ContentType) Subtype(index int) (string, bool) {
	if index < 0 || index >= ct.NumSubtypes() {
		return "", false
	}
	return ct.full[ct.offs[index]+1 : ct.offs[index+1]], true
}

// LastSubtype returns the outermost subtype of the chain
func (ct *ContentType) LastSubtype() (string, bool) {
	return ct.Subtype(ct.NumSubtypes() - 1)
}

// Subtypes returns all subtypes in chain order
func (ct *ContentType) Subtypes() []string {
	n := ct.NumSubtypes()
	if n == 0 {
		return nil
	}
	subs := make([]string, n)
	for i := range subs {
		subs[i], _ = ct.Subtype(i)
	}
	return subs
}

// PopSubtype removes the outermost subtype. Popping a bare type is a no-op.
func (ct *ContentType) PopSubtype() {
	if ct.NumSubtypes() > 0 {
		ct.offs = ct.offs[:len(ct.offs)-1]
	}
}

// PushSubtype appends a subtype to the chain
func (ct *ContentType) PushSubtype(subtype string) {
	sep := byte('+')
	if ct.NumSubtypes() == 0 {
		sep = '/'
	}

	// Rebase on the visible prefix so pushes after pops do not
	// resurrect removed subtypes.
	base := ct.full[:ct.offs[len(ct.offs)-1]]

	var b strings.Builder
	b.Grow(len(base) + 1 + len(subtype))
	b.WriteString(base)
	b.WriteByte(sep)
	b.WriteString(subtype)

	ct.full = b.String()
	ct.offs = append(ct.offs, len(ct.full))
}
