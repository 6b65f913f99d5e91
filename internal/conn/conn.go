// Package conn implements the connection core: the WebSocket lifecycle,
// the CAP/PASS/NICK handshake, ping/pong liveness, reconnection, and the
// dispatcher that turns parsed IRC lines into bus events. All mutable
// state is owned by a single goroutine (run); every other goroutine
// (the reader, timers, and public-API callers) only ever hands work to
// that goroutine through cmdCh, per the single-threaded cooperative
// model this component is built around.
package conn

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/nduhart/tmigo/internal/bus"
	"github.com/nduhart/tmigo/internal/modstate"
	"github.com/nduhart/tmigo/internal/queue"
	"github.com/nduhart/tmigo/internal/transport"
)

// Conn is the connection core. Construct with New, then call Connect.
type Conn struct {
	cfg    Config
	bus    *bus.Bus
	log    *zap.SugaredLogger
	state  modstate.State

	cmdCh  chan func()
	ctx    context.Context
	cancel context.CancelFunc

	sock transport.Socket

	connState State

	reconnects     int
	reconnectTimer time.Duration
	userAsked      bool // Disconnect() was called explicitly; suppress auto-reconnect
	reconnectOK    bool // the current Config permits reconnect (handshake failures disable it)

	channels        map[string]bool
	desiredChannels map[string]bool
	joinQueue       *queue.DelayQueue

	assignedUsername string
	pendingUsername  string
	latency          time.Duration

	pingTimer    *time.Timer
	pongDeadline *time.Timer
	pingInFlight bool
	pingSentAt   time.Time
}

func New(cfg Config) *Conn {
	cfg.applyDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	c := &Conn{
		cfg:         cfg,
		bus:         bus.New(),
		log:         cfg.Logger,
		state:       *modstate.New(),
		cmdCh:       make(chan func(), 64),
		ctx:         ctx,
		cancel:      cancel,
		connState:       StateClosed,
		reconnectTimer:  cfg.ReconnectInterval,
		reconnectOK:     cfg.Reconnect,
		channels:        make(map[string]bool),
		desiredChannels: make(map[string]bool),
	}
	c.joinQueue = queue.New(cfg.JoinInterval, func(err error) {
		c.log.Warnw("join queue task failed", "error", err)
	})
	go c.run()
	go c.joinQueue.Run(ctx)
	return c
}

// Bus exposes the event bus for the public command surface and embedder
// subscriptions.
func (c *Conn) Bus() *bus.Bus { return c.bus }

// ModState exposes the auxiliary connection state for read access by the
// public surface. Callers must accept an eventually-consistent view.
func (c *Conn) ModState() *modstate.State { return &c.state }

// run is the sole owner-goroutine: every state mutation happens here.
func (c *Conn) run() {
	for {
		select {
		case fn := <-c.cmdCh:
			fn()
		case <-c.ctx.Done():
			return
		}
	}
}

// do posts fn to the owner goroutine and blocks until it has run. Must
// only be called from outside the owner goroutine (public API callers,
// timers); calling it from within a cmdCh-dispatched function deadlocks.
func (c *Conn) do(fn func()) {
	done := make(chan struct{})
	select {
	case c.cmdCh <- func() { fn(); close(done) }:
		<-done
	case <-c.ctx.Done():
	}
}

// post fire-and-forgets fn onto the owner goroutine. Used by timers and
// the reader goroutine, which have no result to wait for.
func (c *Conn) post(fn func()) {
	select {
	case c.cmdCh <- fn:
	case <-c.ctx.Done():
	}
}

// State returns the current connection state. Safe to call from any
// goroutine.
func (c *Conn) State() State {
	var s State
	c.do(func() { s = c.connState })
	return s
}

// AssignedUsername returns the username the server confirmed at
// handshake completion (numeric 376), or "" before that.
func (c *Conn) AssignedUsername() string {
	var u string
	c.do(func() { u = c.assignedUsername })
	return u
}

// IsConnected reports whether the socket is open, whether or not the
// handshake has completed — a command sent while StateOpenHandshaking
// still reaches the wire, it just races the handshake.
func (c *Conn) IsConnected() bool {
	s := c.State()
	return s == StateOpenHandshaking || s == StateOpenReady
}

// Channels returns the currently joined channel set.
func (c *Conn) Channels() []string {
	var out []string
	c.do(func() {
		out = make([]string, 0, len(c.channels))
		for ch := range c.channels {
			out = append(out, ch)
		}
	})
	return out
}

// Latency returns the most recently measured PING/PONG round trip.
func (c *Conn) Latency() time.Duration {
	var l time.Duration
	c.do(func() { l = c.latency })
	return l
}

// CommandTimeout computes the correlation-layer wait per spec: at least
// 600ms, otherwise current latency plus a 100ms margin.
func (c *Conn) CommandTimeout() time.Duration {
	l := c.Latency()
	computed := l + 100*time.Millisecond
	if computed < 600*time.Millisecond {
		return 600 * time.Millisecond
	}
	return computed
}

// Send writes a single raw IRC line (without terminator) to the socket.
// It is non-blocking with respect to any response; the caller owns
// correlating a reply if one is expected.
func (c *Conn) Send(line string) error {
	err := ErrConnectionClosed
	c.do(func() {
		if c.sock == nil || (c.connState != StateOpenHandshaking && c.connState != StateOpenReady) {
			return
		}
		if c.cfg.TraceLine != nil {
			c.cfg.TraceLine("send", line)
		}
		err = c.sock.WriteMessage([]byte(line + "\r\n"))
	})
	return err
}

func (c *Conn) wireURL() string {
	scheme := "ws"
	if c.cfg.Secure {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.cfg.Server, c.cfg.Port)
}

// anonymousUsername synthesizes a justinfan login per spec: "justinfan"
// followed by a random integer in [1000, 81000).
func anonymousUsername() string {
	return fmt.Sprintf("justinfan%d", 1000+rand.Intn(80000))
}
