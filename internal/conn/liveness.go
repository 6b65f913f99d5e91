package conn

import "time"

// armPing schedules the next keepalive PING per spec: one every
// PingInterval while the connection is open. Must be called from the
// owner goroutine.
func (c *Conn) armPing() {
	c.pingTimer = time.AfterFunc(c.cfg.PingInterval, func() {
		c.post(c.sendPing)
	})
}

// sendPing fires the PING and arms the PONG timeout. Runs on the owner
// goroutine (posted by the pingTimer callback).
func (c *Conn) sendPing() {
	if c.connState != StateOpenReady && c.connState != StateOpenHandshaking {
		return
	}
	c.pingSentAt = time.Now()
	c.pingInFlight = true
	c.rawSendLocked("PING")
	c.pongDeadline = time.AfterFunc(c.cfg.PingTimeout, func() {
		c.post(c.handlePongTimeout)
	})
}

// handlePong records the round trip and reschedules the next PING. Runs
// on the owner goroutine.
func (c *Conn) handlePong() {
	if !c.pingInFlight {
		return
	}
	c.pingInFlight = false
	if c.pongDeadline != nil {
		c.pongDeadline.Stop()
		c.pongDeadline = nil
	}
	c.latency = time.Since(c.pingSentAt)
	c.bus.Emit("pong", c.latency)
	c.armPing()
}

// PingOnce sends an explicit PING (unless one is already outstanding,
// in which case it shares that one's result) and returns a channel that
// receives the measured latency when the matching PONG arrives. The
// channel is never closed; callers race it against their own timeout.
func (c *Conn) PingOnce() <-chan time.Duration {
	ch := make(chan time.Duration, 1)
	c.bus.Once("pong", func(args []interface{}) {
		lat, _ := args[0].(time.Duration)
		select {
		case ch <- lat:
		default:
		}
	})
	c.post(func() {
		if c.pingInFlight {
			return
		}
		if c.connState != StateOpenReady && c.connState != StateOpenHandshaking {
			return
		}
		c.sendPing()
	})
	return ch
}

// handlePongTimeout force-closes the socket per spec's liveness rule:
// no PONG within PingTimeout means the connection is presumed dead.
func (c *Conn) handlePongTimeout() {
	if !c.pingInFlight {
		return
	}
	c.pingInFlight = false
	wasReady := c.connState == StateOpenReady || c.connState == StateOpenHandshaking
	c.closeSocketLocked()
	c.connState = StateClosed
	if !wasReady {
		return
	}
	c.bus.Emit("disconnected", "ping timeout")
	c.maybeReconnect()
}

// cancelPingTimers stops any in-flight timers. Called whenever the
// socket goes away, so a stale timer never fires against a replaced
// connection.
func (c *Conn) cancelPingTimers() {
	if c.pingTimer != nil {
		c.pingTimer.Stop()
		c.pingTimer = nil
	}
	if c.pongDeadline != nil {
		c.pongDeadline.Stop()
		c.pongDeadline = nil
	}
	c.pingInFlight = false
}
