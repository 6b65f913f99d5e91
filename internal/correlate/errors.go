package correlate

import "errors"

var (
	// ErrNotConnected is returned by any correlated command issued while
	// the underlying connection isn't open.
	ErrNotConnected = errors.New("Not connected to server.")
	// ErrNoResponse is returned when a command's timeout elapses with
	// neither a success nor failure NOTICE having arrived.
	ErrNoResponse = errors.New("No response from Twitch.")
)

// NoticeError wraps the msg-id of a NOTICE that rejected an in-flight
// command (e.g. "already_banned").
type NoticeError struct {
	MsgID   string
	Message string
	Channel string
}

func (e *NoticeError) Error() string { return e.MsgID }

// UsageError is returned synchronously, before anything reaches the
// wire, for command arguments that are invalid on their face (whisper
// to self, missing reply target, etc).
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string { return e.Command + ": " + e.Reason }
