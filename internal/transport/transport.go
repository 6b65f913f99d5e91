// Package transport defines the capability the connection core consumes
// to open and drive a WebSocket connection, keeping the core free of any
// concrete WebSocket implementation (or of browser-vs-host selection, per
// the design note that transport choice must be a capability parameter,
// not global state).
package transport

import (
	"context"
	"net/http"
)

// Socket is a single open duplex connection.
type Socket interface {
	// ReadMessage blocks for the next text frame's payload.
	ReadMessage() ([]byte, error)
	// WriteMessage sends a single text frame.
	WriteMessage(data []byte) error
	Close() error
}

// Dialer opens a Socket to a WebSocket URL.
type Dialer interface {
	Dial(ctx context.Context, url string, header http.Header) (Socket, error)
}
