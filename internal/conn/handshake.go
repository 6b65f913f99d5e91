package conn

import (
	"context"
	"regexp"
	"strings"
)

const (
	topicHandshakeOK   = "_promiseConnect"
	topicHandshakeFail = "_promiseConnectFail"
)

var justinfanRe = regexp.MustCompile(`^justinfan\d+$`)

// Connect dials the transport, runs the CAP/PASS/NICK handshake, and
// blocks until numeric 376 arrives (success, returning the server's
// assigned username) or an authentication-failure NOTICE arrives
// (failure).
func (c *Conn) Connect(ctx context.Context) (string, error) {
	var busy bool
	c.do(func() {
		if c.connState != StateClosed && c.connState != StateReconnectWaiting {
			busy = true
			return
		}
		c.connState = StateConnecting
		c.userAsked = false
	})
	if busy {
		return "", ErrAlreadyConnecting
	}
	c.bus.Emit("connecting", c.cfg.Server, c.cfg.Port)

	okCh := make(chan string, 1)
	failCh := make(chan string, 1)
	subOK := c.bus.Once(topicHandshakeOK, func(a []interface{}) {
		u, _ := a[0].(string)
		okCh <- u
	})
	subFail := c.bus.Once(topicHandshakeFail, func(a []interface{}) {
		r, _ := a[0].(string)
		failCh <- r
	})

	sock, err := c.cfg.Transport.Dial(ctx, c.wireURL(), nil)
	if err != nil {
		subOK.Cancel()
		subFail.Cancel()
		c.do(func() { c.connState = StateClosed })
		return "", ErrUnableToConnect
	}

	c.do(func() {
		c.sock = sock
		c.connState = StateOpenHandshaking
		c.sendHandshake()
	})
	go c.readLoop(sock)

	select {
	case username := <-okCh:
		subFail.Cancel()
		c.bus.Emit("connected", c.cfg.Server, c.cfg.Port)
		c.bus.Emit("logon")
		return username, nil
	case reason := <-failCh:
		subOK.Cancel()
		c.do(func() {
			c.reconnectOK = false
			c.closeSocketLocked()
			c.connState = StateClosed
		})
		c.bus.Emit("disconnected", reason)
		return "", &HandshakeError{Reason: reason}
	case <-ctx.Done():
		subOK.Cancel()
		subFail.Cancel()
		c.do(func() {
			c.closeSocketLocked()
			c.connState = StateClosed
		})
		return "", ctx.Err()
	}
}

// sendHandshake must be called from the owner goroutine.
func (c *Conn) sendHandshake() {
	caps := "twitch.tv/tags twitch.tv/commands"
	if !c.cfg.SkipMembership {
		caps += " twitch.tv/membership"
	}
	c.rawSendLocked("CAP REQ :" + caps)

	username := c.cfg.Identity.Username
	if c.cfg.Identity.Anonymous() {
		username = anonymousUsername()
		c.rawSendLocked("PASS SCHMOOPIIE")
	} else if justinfanRe.MatchString(username) {
		c.rawSendLocked("PASS SCHMOOPIIE")
	} else if c.cfg.Identity.Password != nil {
		if pass, err := c.cfg.Identity.Password(); err == nil && pass != "" {
			if len(pass) < 6 || pass[:6] != "oauth:" {
				pass = "oauth:" + pass
			}
			c.rawSendLocked("PASS " + pass)
		}
	}
	c.rawSendLocked("NICK " + username)
	c.pendingUsername = username
}

// rawSendLocked writes directly to the socket. Must be called from the
// owner goroutine (hence "Locked" — guarded by being on that goroutine,
// not by a mutex).
func (c *Conn) rawSendLocked(line string) {
	if c.sock == nil {
		return
	}
	if c.cfg.TraceLine != nil {
		c.cfg.TraceLine("send", line)
	}
	_ = c.sock.WriteMessage([]byte(line + "\r\n"))
}

// handshakeFailurePhrases are substrings of a NOTICE's message that
// indicate the login itself was rejected, per spec.
var handshakeFailurePhrases = []string{
	"Login unsuccessful",
	"Login authentication failed",
	"Error logging in",
	"Improperly formatted auth",
	"Invalid NICK",
}

func isHandshakeFailure(msg string) bool {
	lower := strings.ToLower(msg)
	for _, phrase := range handshakeFailurePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
