package tmi

import (
	"github.com/nduhart/tmigo/internal/conn"
	"github.com/nduhart/tmigo/internal/correlate"
)

// Transport and connection errors, per SPEC_FULL.md §7's error taxonomy.
var (
	ErrUnableToConnect  = conn.ErrUnableToConnect
	ErrConnectionClosed = conn.ErrConnectionClosed
	ErrNotConnected     = correlate.ErrNotConnected
	ErrNoResponse       = correlate.ErrNoResponse
)

// HandshakeError reports a CAP/PASS/NICK handshake rejected by the
// server; Reconnect is disabled for the connection that produced it.
type HandshakeError = conn.HandshakeError

// NoticeError wraps the msg-id of a NOTICE that rejected an in-flight
// command, e.g. "already_banned".
type NoticeError = correlate.NoticeError

// UsageError is returned synchronously for command arguments invalid
// on their face, before anything reaches the wire.
type UsageError = correlate.UsageError
