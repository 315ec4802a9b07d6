package illumium

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Headers set by fronting proxies and load balancers
const (
	HeaderRealIP       = "X-Real-IP"
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderRequestID    = "X-Request-ID"
)

// RealIP returns the client address a fronting proxy advertised in
// X-Real-IP, or nil when the header is absent or unparsable
func RealIP(r *http.Request) net.IP {
	return net.ParseIP(strings.TrimSpace(r.Header.Get(HeaderRealIP)))
}

// ForwardedFor returns the proxy hop list from X-Forwarded-For, client
// first. A single unparsable entry invalidates the whole list.
func ForwardedFor(r *http.Request) []net.IP {
	raw := r.Header.Get(HeaderForwardedFor)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ips := make([]net.IP, 0, len(parts))
	for _, part := range parts {
		ip := net.ParseIP(strings.TrimSpace(part))
		if ip == nil {
			return nil
		}
		ips = append(ips, ip)
	}
	return ips
}

// ClientIP returns the best available client address: X-Real-IP first,
// then the first X-Forwarded-For hop, then the transport remote
// address. Returns nil when none of them parse.
func ClientIP(r *http.Request) net.IP {
	if ip := RealIP(r); ip != nil {
		return ip
	}
	if ips := ForwardedFor(r); len(ips) > 0 {
		return ips[0]
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}

// RequestID returns the inbound X-Request-ID, or a fresh UUID when the
// request carries none. The ID is not written back to the request.
func RequestID(r *http.Request) string {
	if id := r.Header.Get(HeaderRequestID); id != "" {
		return id
	}
	return uuid.NewString()
}
