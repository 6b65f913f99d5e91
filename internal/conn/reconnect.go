package conn

import "time"

// closeSocketLocked tears down the current socket and its timers. Must
// be called from the owner goroutine; safe to call on an already-closed
// Conn.
func (c *Conn) closeSocketLocked() {
	c.cancelPingTimers()
	if c.sock != nil {
		_ = c.sock.Close()
		c.sock = nil
	}
}

// maybeReconnect runs the exponential-ish backoff policy from spec
// §4.3: reconnectTimer grows by ReconnectDecay each attempt, capped at
// MaxReconnectInterval, and resets to the configured base on a
// successful handshake (see dispatchServer's "376" case). Must be
// called from the owner goroutine.
func (c *Conn) maybeReconnect() {
	if c.userAsked || !c.reconnectOK {
		return
	}
	if c.cfg.MaxReconnectAttempts > 0 && c.reconnects >= c.cfg.MaxReconnectAttempts {
		c.bus.Emit("maxreconnect")
		return
	}

	c.connState = StateReconnectWaiting
	delay := c.reconnectTimer
	c.reconnects++
	c.reconnectTimer = time.Duration(float64(c.reconnectTimer) * c.cfg.ReconnectDecay)
	if c.reconnectTimer > c.cfg.MaxReconnectInterval {
		c.reconnectTimer = c.cfg.MaxReconnectInterval
	}

	c.bus.Emit("reconnect", delay)
	time.AfterFunc(delay, func() {
		go func() {
			if _, err := c.Connect(c.ctx); err == ErrUnableToConnect {
				c.post(c.maybeReconnect)
			}
		}()
	})
}

// scheduleServerRequestedReconnect handles an unsolicited RECONNECT
// numeric: Twitch asks well-behaved clients to reconnect on their own
// schedule ahead of a planned server restart. The backoff is reset to
// the base interval first so the follow-up connect happens promptly
// rather than waiting out whatever backoff a prior failure left behind.
func (c *Conn) scheduleServerRequestedReconnect() {
	c.reconnectTimer = c.cfg.ReconnectInterval
	wasReady := c.connState == StateOpenReady || c.connState == StateOpenHandshaking
	c.closeSocketLocked()
	c.connState = StateClosed
	if !wasReady {
		return
	}
	c.bus.Emit("disconnected", "server requested reconnect")
	c.maybeReconnect()
}
