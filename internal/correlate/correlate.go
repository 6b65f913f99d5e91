// Package correlate turns the connection core's fire-and-observe IRC
// exchanges into request/response operations. Twitch's gateway never
// echoes a request id, so a pending command's completion or rejection
// is inferred from later NOTICE/ROOMSTATE traffic landing on an
// internal "_promise<Command>[:channel]" bus topic — see
// conn.PromiseSuccessTopic/PromiseFailTopic for the naming scheme this
// package listens on.
package correlate

import (
	"context"
	"time"

	"github.com/nduhart/tmigo/internal/bus"
	"github.com/nduhart/tmigo/internal/conn"
	"github.com/nduhart/tmigo/internal/ircmsg"
)

// Sender is the subset of *conn.Conn the correlation layer drives. A
// narrow interface rather than the concrete type so this package's
// tests can drive it against a bare bus without a live socket.
type Sender interface {
	Send(line string) error
	Bus() *bus.Bus
	CommandTimeout() time.Duration
	IsConnected() bool
	Join(channels ...string)
}

// Do sends line, then races a one-shot listener pair on cmd's promise
// topics against the sender's computed command timeout. channel is the
// channel the completing NOTICE arrives on: the global default channel
// for commands that are not channel-scoped (color, whisper). On success
// it returns the completing NOTICE's text, if any (some completions,
// like a clear's CLEARCHAT, carry none).
func Do(ctx context.Context, s Sender, cmd, channel, line string) (string, error) {
	if !s.IsConnected() {
		return "", ErrNotConnected
	}

	type outcome struct {
		text string
		err  error
	}
	resultCh := make(chan outcome, 1)
	successSub := s.Bus().Once(conn.PromiseSuccessTopic(cmd, channel), func(args []interface{}) {
		var text string
		if len(args) > 1 {
			text, _ = args[1].(string)
		}
		resultCh <- outcome{text: text}
	})
	failSub := s.Bus().Once(conn.PromiseFailTopic(cmd, channel), func(args []interface{}) {
		msgID, _ := args[0].(string)
		text, _ := args[1].(string)
		resultCh <- outcome{err: &NoticeError{MsgID: msgID, Message: text, Channel: channel}}
	})

	if err := s.Send(line); err != nil {
		successSub.Cancel()
		failSub.Cancel()
		return "", err
	}

	timer := time.NewTimer(s.CommandTimeout())
	defer timer.Stop()

	select {
	case o := <-resultCh:
		successSub.Cancel()
		failSub.Cancel()
		return o.text, o.err
	case <-timer.C:
		successSub.Cancel()
		failSub.Cancel()
		return "", ErrNoResponse
	case <-ctx.Done():
		successSub.Cancel()
		failSub.Cancel()
		return "", ctx.Err()
	}
}

// DoJoin implements the multi-channel JOIN correlation rule: one wire
// line for all channels, a per-channel timeout budget, and rejection
// of the whole call on the first channel-level failure (other channels
// may still end up joined from the connection's perspective — state
// mutation there is independent of this future's fulfilment).
func DoJoin(ctx context.Context, s Sender, channels []string) ([]string, error) {
	if !s.IsConnected() {
		return nil, ErrNotConnected
	}
	normalized := make([]string, len(channels))
	for i, ch := range channels {
		normalized[i] = ircmsg.Channel(ch)
	}

	type outcome struct{ err error }
	doneCh := make(chan outcome, len(normalized))
	subs := make([]*bus.Subscription, 0, 2*len(normalized))
	for _, ch := range normalized {
		subs = append(subs, s.Bus().Once(conn.PromiseSuccessTopic("join", ch), func(args []interface{}) {
			doneCh <- outcome{}
		}))
		subs = append(subs, s.Bus().Once(conn.PromiseFailTopic("join", ch), func(args []interface{}) {
			msgID, _ := args[0].(string)
			text, _ := args[1].(string)
			doneCh <- outcome{err: &NoticeError{MsgID: msgID, Message: text, Channel: ch}}
		}))
	}
	cancelAll := func() {
		for _, sub := range subs {
			sub.Cancel()
		}
	}

	s.Join(normalized...)

	timeout := s.CommandTimeout() * time.Duration(len(normalized))
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	remaining := len(normalized)
	for remaining > 0 {
		select {
		case o := <-doneCh:
			if o.err != nil {
				cancelAll()
				return nil, o.err
			}
			remaining--
		case <-timer.C:
			cancelAll()
			return nil, ErrNoResponse
		case <-ctx.Done():
			cancelAll()
			return nil, ctx.Err()
		}
	}
	cancelAll()
	return normalized, nil
}
