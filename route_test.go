package illumium

import (
	"net/http/httptest"
	"testing"
)

func TestRoutedRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/users/42", nil)
	rr := NewRoutedRequest(req)

	if rr.Request() != req {
		t.Error("Request() should return the wrapped request")
	}
	if got := rr.Prefix(); got != "" {
		t.Errorf("Prefix() = %q, want empty before routing", got)
	}
	if got := rr.Path(); got != "/api/v1/users/42" {
		t.Errorf("Path() = %q, want the full path", got)
	}
}

func TestRoutedRequestRoute(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		rest       string
		wantPrefix string
		wantPath   string
	}{
		{
			name:       "proper tail",
			url:        "/api/v1/users/42",
			rest:       "/users/42",
			wantPrefix: "/api/v1",
			wantPath:   "/users/42",
		},
		{
			name:       "whole path",
			url:        "/api/v1",
			rest:       "/api/v1",
			wantPrefix: "",
			wantPath:   "/api/v1",
		},
		{
			name:       "empty tail",
			url:        "/api/v1",
			rest:       "",
			wantPrefix: "/api/v1",
			wantPath:   "",
		},
		{
			name:       "tail longer than path routes nothing",
			url:        "/api",
			rest:       "/api/v1/users",
			wantPrefix: "",
			wantPath:   "/api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := NewRoutedRequest(httptest.NewRequest("GET", tt.url, nil))
			rr.Route(tt.rest)

			if got := rr.Prefix(); got != tt.wantPrefix {
				t.Errorf("Prefix() = %q, want %q", got, tt.wantPrefix)
			}
			if got := rr.Path(); got != tt.wantPath {
				t.Errorf("Path() = %q, want %q", got, tt.wantPath)
			}
		})
	}
}

func TestRoutedRequestShift(t *testing.T) {
	rr := NewRoutedRequest(httptest.NewRequest("GET", "/api/v1/users/42", nil))

	if !rr.Shift("/api") {
		t.Fatal("Shift(/api) should succeed")
	}
	if got := rr.Path(); got != "/v1/users/42" {
		t.Errorf("Path() = %q, want %q", got, "/v1/users/42")
	}

	if rr.Shift("/users") {
		t.Error("Shift(/users) should fail, the tail starts with /v1")
	}
	if got := rr.Path(); got != "/v1/users/42" {
		t.Errorf("Path() = %q, want unchanged after failed shift", got)
	}

	if !rr.Shift("/v1/users") {
		t.Fatal("Shift(/v1/users) should succeed")
	}
	if got, want := rr.Prefix(), "/api/v1/users"; got != want {
		t.Errorf("Prefix() = %q, want %q", got, want)
	}
	if got := rr.Path(); got != "/42" {
		t.Errorf("Path() = %q, want %q", got, "/42")
	}
}
