package illumium

import (
	"net"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRealIP(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "ipv4", header: "203.0.113.7", want: "203.0.113.7"},
		{name: "ipv6", header: "2001:db8::1", want: "2001:db8::1"},
		{name: "padded", header: "  203.0.113.7  ", want: "203.0.113.7"},
		{name: "garbage", header: "not-an-ip"},
		{name: "absent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderRealIP, tt.header)
			}

			got := RealIP(req)
			if tt.want == "" {
				if got != nil {
					t.Errorf("RealIP() = %v, want nil", got)
				}
				return
			}
			if !got.Equal(net.ParseIP(tt.want)) {
				t.Errorf("RealIP() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForwardedFor(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   []string
	}{
		{
			name:   "single hop",
			header: "203.0.113.7",
			want:   []string{"203.0.113.7"},
		},
		{
			name:   "proxy chain",
			header: "203.0.113.7, 10.0.0.1, 10.0.0.2",
			want:   []string{"203.0.113.7", "10.0.0.1", "10.0.0.2"},
		},
		{
			name:   "mixed families",
			header: "2001:db8::1,203.0.113.7",
			want:   []string{"2001:db8::1", "203.0.113.7"},
		},
		{
			name:   "one bad hop poisons the list",
			header: "203.0.113.7, unknown, 10.0.0.1",
		},
		{
			name: "absent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderForwardedFor, tt.header)
			}

			got := ForwardedFor(req)
			if len(got) != len(tt.want) {
				t.Fatalf("ForwardedFor() = %v, want %v", got, tt.want)
			}
			for i, want := range tt.want {
				if !got[i].Equal(net.ParseIP(want)) {
					t.Errorf("ForwardedFor()[%d] = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	t.Run("prefers X-Real-IP", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderRealIP, "203.0.113.7")
		req.Header.Set(HeaderForwardedFor, "10.0.0.1")

		if got := ClientIP(req); !got.Equal(net.ParseIP("203.0.113.7")) {
			t.Errorf("ClientIP() = %v, want 203.0.113.7", got)
		}
	})

	t.Run("falls back to first forwarded hop", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderForwardedFor, "203.0.113.7, 10.0.0.1")

		if got := ClientIP(req); !got.Equal(net.ParseIP("203.0.113.7")) {
			t.Errorf("ClientIP() = %v, want 203.0.113.7", got)
		}
	})

	t.Run("falls back to remote address", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.0.2.1:4711"

		if got := ClientIP(req); !got.Equal(net.ParseIP("192.0.2.1")) {
			t.Errorf("ClientIP() = %v, want 192.0.2.1", got)
		}
	})

	t.Run("remote address without port", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.0.2.1"

		if got := ClientIP(req); !got.Equal(net.ParseIP("192.0.2.1")) {
			t.Errorf("ClientIP() = %v, want 192.0.2.1", got)
		}
	})
}

func TestRequestID(t *testing.T) {
	t.Run("passes through the inbound id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderRequestID, "req-42")

		if got := RequestID(req); got != "req-42" {
			t.Errorf("RequestID() = %q, want %q", got, "req-42")
		}
	})

	t.Run("generates a uuid when absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)

		got := RequestID(req)
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("RequestID() = %q, want a parsable UUID: %v", got, err)
		}

		other := RequestID(req)
		if got == other {
			t.Error("generated ids should differ between calls")
		}
	})
}
