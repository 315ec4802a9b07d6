package illumium

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// DecodeQuery decodes the request query string into v, a pointer to a
// struct with schema tags. ok reports whether the URL carried a query
// string at all: an absent query is not an error, so optional
// parameters read as (false, nil) rather than failing.
func DecodeQuery(r *http.Request, v any) (ok bool, err error) {
	if r.URL == nil || r.URL.RawQuery == "" {
		return false, nil
	}

	values, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return true, fmt.Errorf("failed to parse query: %w", err)
	}
	if err := queryDecoder.Decode(v, values); err != nil {
		return true, fmt.Errorf("failed to decode query: %w", err)
	}

	return true, nil
}
