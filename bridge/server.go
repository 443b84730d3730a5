// Copyright 2026 The Burrow Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os/exec"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/burrowterm/burrow/config"
)

//go:embed static/index.html
var indexHTML []byte

// Server is the HTTP surface of the bridge: the embedded browser
// terminal page, a health check, and the websocket endpoint that spawns
// one engine session per connection.
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer builds a server around the given configuration.
func NewServer(configuration *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config: configuration,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The bridge is a single-user tool; the page is served
			// from the same listener, and attach clients send no
			// Origin header.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/", s.handleIndex)
	router.Get("/healthz", s.handleHealth)
	router.Get("/ws", s.handleSession)
	return router
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok\n"))
}

// handleSession upgrades the connection and runs one engine session on
// a fresh PTY. A spawn failure is surfaced as a websocket close with an
// internal-error code, not as terminal text.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	connection, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	logger := s.logger.With("remote", r.RemoteAddr)
	command := exec.Command(s.config.EngineBinary,
		"--root", s.config.SandboxRoot,
		"--audit-log", s.config.AuditLog)

	if err := Run(newWebsocketTransport(connection), command, Options{Logger: logger}); err != nil {
		logger.Error("session failed", "error", err)
		message := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session failed")
		_ = connection.WriteMessage(websocket.CloseMessage, message)
		connection.Close()
	}
}

// websocketTransport adapts a gorilla websocket connection to the
// Transport interface. The relay uses one reading and one writing
// goroutine, which matches the connection's single-reader,
// single-writer concurrency contract.
type websocketTransport struct {
	connection *websocket.Conn
	closeOnce  sync.Once
}

func newWebsocketTransport(connection *websocket.Conn) *websocketTransport {
	return &websocketTransport{connection: connection}
}

func (t *websocketTransport) ReadFrame() (payload []byte, text bool, err error) {
	messageType, payload, err := t.connection.ReadMessage()
	if err != nil {
		return nil, false, err
	}
	return payload, messageType == websocket.TextMessage, nil
}

func (t *websocketTransport) WriteFrame(payload []byte) error {
	return t.connection.WriteMessage(websocket.BinaryMessage, payload)
}

func (t *websocketTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		err = t.connection.Close()
	})
	return err
}
