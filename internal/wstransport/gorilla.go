// Package wstransport implements the transport.Dialer capability using
// gorilla/websocket, matching what this corpus already pulls in
// (transitively, via prebuilt chat clients) for the same concern.
package wstransport

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nduhart/tmigo/internal/transport"
)

// Gorilla is the default transport.Dialer, speaking the "irc"
// subprotocol Twitch expects on its chat gateway.
type Gorilla struct {
	HandshakeTimeout time.Duration
}

func (g Gorilla) Dial(ctx context.Context, url string, header http.Header) (transport.Socket, error) {
	dialer := websocket.Dialer{
		Subprotocols:     []string{"irc"},
		HandshakeTimeout: g.handshakeTimeout(),
	}
	conn, _, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return &socket{conn: conn}, nil
}

func (g Gorilla) handshakeTimeout() time.Duration {
	if g.HandshakeTimeout > 0 {
		return g.HandshakeTimeout
	}
	return 10 * time.Second
}

type socket struct {
	conn *websocket.Conn
}

func (s *socket) ReadMessage() ([]byte, error) {
	_, data, err := s.conn.ReadMessage()
	return data, err
}

func (s *socket) WriteMessage(data []byte) error {
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *socket) Close() error {
	return s.conn.Close()
}
