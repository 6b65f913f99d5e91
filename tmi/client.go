// Package tmi is a client library for Twitch's IRCv3-over-WebSocket
// chat protocol: it connects, authenticates, joins channels, parses
// incoming messages into typed events, and turns outgoing chat
// commands into request/response operations correlated against the
// server's NOTICE/ROOMSTATE/USERSTATE traffic (Twitch's gateway never
// echoes a request id, so completion has to be inferred).
package tmi

import (
	"context"
	"strings"
	"time"

	"github.com/nduhart/tmigo/internal/conn"
	"github.com/nduhart/tmigo/internal/ircmsg"
)

// Client is a single connection to Twitch chat. Construct with New,
// then Connect before issuing any command.
type Client struct {
	conn *conn.Conn
	opts Options
}

// New constructs a Client from opts. Zero-valued tunables fall back to
// their defaults as described on Options; start from DefaultOptions()
// to also get TLS and automatic reconnect.
func New(opts Options) *Client {
	if opts.GlobalDefaultChannel == "" {
		opts.GlobalDefaultChannel = conn.DefaultGlobalDefaultChannel
	}
	return &Client{
		conn: conn.New(opts.toConnConfig()),
		opts: opts,
	}
}

// Connect dials the transport and runs the handshake, blocking until
// numeric 376 arrives (returning the server-assigned username) or the
// handshake fails. On success, any channels configured via
// Options.Channels are enqueued to join.
func (c *Client) Connect(ctx context.Context) (string, error) {
	username, err := c.conn.Connect(ctx)
	if err != nil {
		return "", err
	}
	if len(c.opts.Channels) > 0 {
		c.conn.Join(c.opts.Channels...)
	}
	return username, nil
}

// Disconnect closes the connection and suppresses automatic reconnect.
func (c *Client) Disconnect() {
	c.conn.Disconnect()
}

// Reconnect tears down any existing connection and dials a fresh one
// immediately, bypassing the backoff timer.
func (c *Client) Reconnect(ctx context.Context) (string, error) {
	return c.conn.Reconnect(ctx)
}

// Channels returns the channels currently joined.
func (c *Client) Channels() []string {
	return c.conn.Channels()
}

// IsConnected reports whether the underlying socket is open.
func (c *Client) IsConnected() bool {
	return c.conn.IsConnected()
}

// Latency returns the most recently measured PING/PONG round trip.
func (c *Client) Latency() time.Duration {
	return c.conn.Latency()
}

// IsMod reports whether the client's own user currently holds moderator
// status in channel, per the last MODE/USERSTATE update seen for it.
func (c *Client) IsMod(channel string) bool {
	channel = ircmsg.Channel(channel)
	return c.conn.ModState().IsModerator(channel, strings.ToLower(c.opts.Identity.Username))
}
