package conn

import (
	"time"

	"go.uber.org/zap"

	"github.com/nduhart/tmigo/internal/transport"
	"github.com/nduhart/tmigo/internal/wstransport"
)

// PasswordFunc allows an embedder to produce the OAuth token lazily (or
// asynchronously), per the "password: string or producer function
// returning string/future" configuration option.
type PasswordFunc func() (string, error)

// Identity is the login identity used during the handshake. A zero
// Identity performs an anonymous "justinfan" login.
type Identity struct {
	Username string
	Password PasswordFunc
}

func (id Identity) Anonymous() bool {
	return id.Username == ""
}

// Config carries every connection-level tunable from the public Options
// surface, translated into the shape the connection core consumes.
type Config struct {
	Server string
	Port   int
	Secure bool

	Identity Identity

	SkipMembership       bool
	GlobalDefaultChannel string

	Reconnect            bool
	ReconnectDecay       float64
	ReconnectInterval    time.Duration
	MaxReconnectInterval time.Duration
	MaxReconnectAttempts int // 0 = unbounded

	PingInterval time.Duration
	PingTimeout  time.Duration

	JoinInterval time.Duration

	Transport transport.Dialer
	Logger    *zap.SugaredLogger

	// TraceLine, if non-nil, is called with every raw wire line (both
	// directions) for debug tracing.
	TraceLine func(direction string, line string)
}

const (
	DefaultReconnectDecay       = 1.5
	DefaultReconnectInterval    = 1000 * time.Millisecond
	DefaultMaxReconnectInterval = 30 * time.Second
	DefaultPingInterval         = 60 * time.Second
	DefaultPingTimeout          = 9999 * time.Millisecond
	DefaultJoinInterval         = 2000 * time.Millisecond
	MinJoinInterval             = 300 * time.Millisecond
	DefaultGlobalDefaultChannel = "#tmijs"
)

// applyDefaults fills in zero-valued tunables with the spec's defaults.
func (c *Config) applyDefaults() {
	if c.Server == "" {
		c.Server = "irc-ws.chat.twitch.tv"
	}
	if c.Port == 0 {
		if c.Secure {
			c.Port = 443
		} else {
			c.Port = 80
		}
	}
	if c.GlobalDefaultChannel == "" {
		c.GlobalDefaultChannel = DefaultGlobalDefaultChannel
	}
	if c.ReconnectDecay <= 0 {
		c.ReconnectDecay = DefaultReconnectDecay
	}
	if c.ReconnectInterval <= 0 {
		c.ReconnectInterval = DefaultReconnectInterval
	}
	if c.MaxReconnectInterval <= 0 {
		c.MaxReconnectInterval = DefaultMaxReconnectInterval
	}
	if c.PingInterval <= 0 {
		c.PingInterval = DefaultPingInterval
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = DefaultPingTimeout
	}
	if c.JoinInterval <= 0 {
		c.JoinInterval = DefaultJoinInterval
	}
	if c.JoinInterval < MinJoinInterval {
		c.JoinInterval = MinJoinInterval
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop().Sugar()
	}
	if c.Transport == nil {
		c.Transport = wstransport.Gorilla{}
	}
}
