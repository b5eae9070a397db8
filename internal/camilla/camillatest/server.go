// Package camillatest provides a fake CamillaDSP websocket server for tests.
package camillatest

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// Handler answers one command. Returning nil closes the connection without
// replying.
type Handler func(command []byte) []byte

// Reply returns a Handler that always answers with body.
func Reply(body string) Handler {
	return func([]byte) []byte { return []byte(body) }
}

// Server is a running fake daemon.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	received [][]byte
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewServer starts a fake daemon on 127.0.0.1 and stops it when t ends.
func NewServer(t testing.TB, h Handler) *Server {
	t.Helper()

	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.received = append(s.received, msg)
		s.mu.Unlock()

		reply := h(msg)
		if reply == nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			return
		}

		// wait for the client's close frame
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(s.Close)

	return s
}

// Port returns the TCP port the server listens on.
func (s *Server) Port() int {
	_, port, _ := net.SplitHostPort(s.Listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return p
}

// Received returns the messages received so far.
func (s *Server) Received() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.received...)
}
