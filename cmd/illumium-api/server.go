package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	illumium "github.com/illumium/illumium-api"
)

// mediaTypeV1 is the vendor type every payload is wrapped in
const mediaTypeV1 = "application/vnd.illumium.v1"

// Server serves the layered-codec API over the keyring's codec chain
type Server struct {
	cfg     *Config
	keyring *illumium.Keyring
	chain   *illumium.Chain
	logger  *slog.Logger
	http    *http.Server
	started time.Time
}

// NewServer wires the router and handlers around the keyring
func NewServer(cfg *Config, keyring *illumium.Keyring, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		keyring: keyring,
		chain:   keyring.Chain(),
		logger:  logger,
		started: time.Now(),
	}

	router := mux.NewRouter()
	api := router.PathPrefix(cfg.APIPrefix).Subrouter()
	api.HandleFunc("/key", s.handleKey).Methods("GET")
	api.HandleFunc("/echo", s.handleEcho).Methods("POST")
	api.HandleFunc("/info", s.handleInfo).Methods("GET")
	router.Use(s.requestMiddleware)

	s.http = &http.Server{
		Addr:    cfg.Listen,
		Handler: router,
	}
	return s
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until SIGINT or SIGTERM, then drains connections within
// the configured shutdown timeout
func (s *Server) Run() error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Listen, "prefix", s.cfg.APIPrefix)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		s.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// requestMiddleware tags each request with an ID and logs its outcome
func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := illumium.RequestID(r)
		w.Header().Set(illumium.HeaderRequestID, id)

		next.ServeHTTP(w, r)

		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"client", clientAddr(r),
			"elapsed", time.Since(start),
		)
	})
}

func clientAddr(r *http.Request) string {
	if ip := illumium.ClientIP(r); ip != nil {
		return ip.String()
	}
	return r.RemoteAddr
}

type keyResponse struct {
	PublicKey illumium.PublicKey `json:"public_key"`
}

// handleKey publishes the key clients seal their requests to
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	m := illumium.NewMessage(mediaTypeV1, nil)
	if err := m.EncodeJSONAuto(keyResponse{PublicKey: s.keyring.Public}); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.write(w, m, http.StatusOK)
}

type echoResponse struct {
	Echo  json.RawMessage `json:"echo"`
	Token string          `json:"token"`
}

type sessionToken struct {
	ID     string    `json:"id"`
	Client string    `json:"client,omitempty"`
	Issued time.Time `json:"issued"`
}

// handleEcho strips the codec layers from the request body and returns
// the inner payload together with an opaque session token
func (s *Server) handleEcho(w http.ResponseWriter, r *http.Request) {
	m, err := illumium.ReadRequest(r, s.cfg.BodyLimit)
	if err != nil {
		s.fail(w, r, codecStatus(err), err)
		return
	}

	if err := s.chain.Decode(m); err != nil {
		s.fail(w, r, codecStatus(err), err)
		return
	}

	var payload json.RawMessage
	if err := m.DecodeJSONAuto(&payload); err != nil {
		s.fail(w, r, codecStatus(err), err)
		return
	}

	token, err := s.issueToken(r)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	resp := illumium.NewMessage(m.ContentType(), nil)
	if err := resp.EncodeJSONAuto(echoResponse{Echo: payload, Token: token}); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.write(w, resp, http.StatusOK)
}

// issueToken seals the request identity under the token key; only this
// server can read it back
func (s *Server) issueToken(r *http.Request) (string, error) {
	tok := illumium.NewMessage(mediaTypeV1, nil)
	if err := tok.EncodeJSONAuto(sessionToken{
		ID:     illumium.RequestID(r),
		Client: clientAddr(r),
		Issued: time.Now().UTC(),
	}); err != nil {
		return "", err
	}
	if err := s.chain.Encode(tok, illumium.SubtypeSecretBox, illumium.SubtypeBase64); err != nil {
		return "", err
	}
	return string(tok.Body), nil
}

type infoQuery struct {
	Verbose bool `schema:"verbose"`
}

type infoResponse struct {
	Version   string             `json:"version"`
	Uptime    string             `json:"uptime"`
	PublicKey illumium.PublicKey `json:"public_key"`
	Client    string             `json:"client,omitempty"`
	Forwarded []string           `json:"forwarded,omitempty"`
}

// handleInfo reports server state, with client transport details when
// ?verbose=true
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var q infoQuery
	if _, err := illumium.DecodeQuery(r, &q); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	info := infoResponse{
		Version:   version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		PublicKey: s.keyring.Public,
	}
	if q.Verbose {
		info.Client = clientAddr(r)
		for _, ip := range illumium.ForwardedFor(r) {
			info.Forwarded = append(info.Forwarded, ip.String())
		}
	}

	m := illumium.NewMessage(mediaTypeV1, nil)
	if err := m.EncodeJSONAuto(info); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.write(w, m, http.StatusOK)
}

func (s *Server) write(w http.ResponseWriter, m *illumium.Message, status int) {
	if err := m.Write(w, status); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)

	m := illumium.NewMessage("", nil)
	if encErr := m.EncodeJSONType(errorResponse{Error: err.Error()}, "application/json"); encErr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	s.write(w, m, status)
}

// codecStatus maps codec failures onto HTTP statuses
func codecStatus(err error) int {
	switch {
	case errors.Is(err, illumium.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, illumium.ErrUnexpectedType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}
