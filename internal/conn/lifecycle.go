package conn

import "context"

// Disconnect closes the connection and suppresses any automatic
// reconnect, per the "explicit disconnect" flag design note.
func (c *Conn) Disconnect() {
	c.do(func() {
		c.userAsked = true
		wasReady := c.connState == StateOpenReady || c.connState == StateOpenHandshaking
		c.closeSocketLocked()
		c.connState = StateClosed
		if wasReady {
			c.bus.Emit("disconnected", "client requested disconnect")
		}
	})
}

// Reconnect tears down any existing connection and immediately dials a
// fresh one, bypassing the backoff timer.
func (c *Conn) Reconnect(ctx context.Context) (string, error) {
	c.Disconnect()
	c.do(func() { c.userAsked = false })
	return c.Connect(ctx)
}
