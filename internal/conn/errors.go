package conn

import "errors"

var (
	// ErrUnableToConnect is returned when the initial WebSocket dial fails.
	ErrUnableToConnect = errors.New("Unable to connect.")
	// ErrConnectionClosed is returned by operations attempted while no
	// socket is open, including while a reconnect is pending.
	ErrConnectionClosed = errors.New("Connection closed.")
	// ErrAlreadyConnecting is returned by Connect when called while a
	// connection attempt or an open connection is already in progress.
	ErrAlreadyConnecting = errors.New("connect called while already connecting or connected")
)

// HandshakeError reports a CAP/PASS/NICK handshake rejected by the
// server, verbatim in the offending NOTICE's text. Reconnect is disabled
// for the connection that produced it.
type HandshakeError struct {
	Reason string
}

func (e *HandshakeError) Error() string { return e.Reason }
