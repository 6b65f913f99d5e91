package conn

import (
	"context"
	"strings"

	"github.com/nduhart/tmigo/internal/ircmsg"
)

// Join enqueues a single JOIN wire command for one or more channels
// onto the rate-limited join queue. Per spec, N channels in one call go
// out as a single "JOIN #a,#b,#c" line. Membership is remembered in
// desiredChannels so a reconnect can silently restore it (see
// drainChannelsIntoJoinQueue).
func (c *Conn) Join(channels ...string) {
	normalized := make([]string, len(channels))
	for i, ch := range channels {
		normalized[i] = ircmsg.Channel(ch)
	}
	c.joinQueue.Enqueue(func(ctx context.Context) error {
		return c.doJoin(normalized)
	})
}

// Part sends PART immediately (joins are throttled to avoid tripping
// Twitch's rate limits; parts are not).
func (c *Conn) Part(channel string) error {
	channel = ircmsg.Channel(channel)
	var result error
	c.do(func() {
		delete(c.desiredChannels, channel)
		if c.sock == nil || (c.connState != StateOpenHandshaking && c.connState != StateOpenReady) {
			result = ErrConnectionClosed
			return
		}
		c.rawSendLocked("PART " + channel)
	})
	return result
}

func (c *Conn) doJoin(channels []string) error {
	if len(channels) == 0 {
		return nil
	}
	var result error
	c.do(func() {
		if c.sock == nil || (c.connState != StateOpenHandshaking && c.connState != StateOpenReady) {
			result = ErrConnectionClosed
			return
		}
		for _, ch := range channels {
			c.desiredChannels[ch] = true
		}
		c.rawSendLocked("JOIN " + strings.Join(channels, ","))
	})
	return result
}

// drainChannelsIntoJoinQueue re-enqueues every previously-desired
// channel as one batch after a fresh handshake, so a reconnect restores
// membership without the caller re-issuing Join. Must run on the owner
// goroutine (called from dispatchServer's "376" case); it only enqueues
// work, never blocks on c.do itself.
func (c *Conn) drainChannelsIntoJoinQueue() {
	if len(c.desiredChannels) == 0 {
		return
	}
	channels := make([]string, 0, len(c.desiredChannels))
	for ch := range c.desiredChannels {
		channels = append(channels, ch)
	}
	c.joinQueue.Enqueue(func(ctx context.Context) error {
		return c.doJoin(channels)
	})
}
