package illumium

import (
	"net/http"
	"strings"
)

// RoutedRequest wraps a request with a split point in its URL path:
// everything before the split has been routed, everything after is
// still to be matched. Nested routers shift the split rightwards as
// they consume prefixes.
type RoutedRequest struct {
	request *http.Request
	split   int
}

// NewRoutedRequest wraps a request with nothing routed yet
func NewRoutedRequest(r *http.Request) *RoutedRequest {
	return &RoutedRequest{request: r}
}

// Request returns the wrapped request
func (rr *RoutedRequest) Request() *http.Request {
	return rr.request
}

// Prefix returns the routed part of the path
func (rr *RoutedRequest) Prefix() string {
	return rr.request.URL.Path[:rr.split]
}

// Path returns the part of the path still to be routed
func (rr *RoutedRequest) Path() string {
	return rr.request.URL.Path[rr.split:]
}

// Route moves the split so that rest is the unrouted tail. The split is
// clamped to the path bounds, so a rest longer than the path routes
// nothing.
func (rr *RoutedRequest) Route(rest string) *RoutedRequest {
	split := len(rr.request.URL.Path) - len(rest)
	if split < 0 {
		split = 0
	}
	rr.split = split
	return rr
}

// Shift consumes prefix from the unrouted tail, reporting whether the
// tail actually started with it
func (rr *RoutedRequest) Shift(prefix string) bool {
	if !strings.HasPrefix(rr.Path(), prefix) {
		return false
	}
	rr.split += len(prefix)
	return true
}
