package tmi

import (
	"time"

	"go.uber.org/zap"

	"github.com/nduhart/tmigo/internal/conn"
	"github.com/nduhart/tmigo/internal/logging"
	"github.com/nduhart/tmigo/internal/transport"
)

// Identity is the login identity used during the handshake. A zero
// Identity performs an anonymous "justinfan" login.
type Identity struct {
	Username string
	// Password returns the OAuth token, optionally already prefixed
	// with "oauth:". May be nil for anonymous logins.
	Password func() (string, error)
}

// Options configures a Client. Zero-valued durations, numbers and
// strings fall back to the documented defaults (see DefaultOptions).
// The booleans Secure and Reconnect are used as given, so a zero
// Options connects without TLS and never reconnects automatically.
type Options struct {
	Identity Identity

	Server string
	Port   int
	Secure bool

	Channels             []string
	GlobalDefaultChannel string
	SkipMembership       bool

	Reconnect            bool
	ReconnectDecay       float64
	ReconnectInterval    time.Duration
	MaxReconnectInterval time.Duration
	MaxReconnectAttempts int

	PingInterval time.Duration
	PingTimeout  time.Duration

	JoinInterval time.Duration

	// Debug turns on debug-level structured logging and, if TraceWire
	// is also set, wire-line tracing.
	Debug     bool
	Logger    *zap.SugaredLogger
	TraceWire func(direction, line string)

	// Transport overrides the WebSocket implementation; defaults to
	// wstransport.Gorilla.
	Transport transport.Dialer
}

// DefaultOptions returns an Options with every tunable set to the
// documented default, anonymous identity, and reconnect enabled.
func DefaultOptions() Options {
	return Options{
		Secure:               true,
		GlobalDefaultChannel: conn.DefaultGlobalDefaultChannel,
		Reconnect:            true,
		ReconnectDecay:       conn.DefaultReconnectDecay,
		ReconnectInterval:    conn.DefaultReconnectInterval,
		MaxReconnectInterval: conn.DefaultMaxReconnectInterval,
		PingInterval:         conn.DefaultPingInterval,
		PingTimeout:          conn.DefaultPingTimeout,
		JoinInterval:         conn.DefaultJoinInterval,
	}
}

func (o Options) toConnConfig() conn.Config {
	logger := o.Logger
	if logger == nil {
		logger = logging.New(o.Debug, "info")
	}

	cfg := conn.Config{
		Server:               o.Server,
		Port:                 o.Port,
		Secure:               o.Secure,
		SkipMembership:       o.SkipMembership,
		GlobalDefaultChannel: o.GlobalDefaultChannel,
		Reconnect:            o.Reconnect,
		ReconnectDecay:       o.ReconnectDecay,
		ReconnectInterval:    o.ReconnectInterval,
		MaxReconnectInterval: o.MaxReconnectInterval,
		MaxReconnectAttempts: o.MaxReconnectAttempts,
		PingInterval:         o.PingInterval,
		PingTimeout:          o.PingTimeout,
		JoinInterval:         o.JoinInterval,
		Transport:            o.Transport,
		Logger:               logger,
	}
	cfg.Identity.Username = o.Identity.Username
	if o.Identity.Password != nil {
		cfg.Identity.Password = conn.PasswordFunc(o.Identity.Password)
	}
	if o.TraceWire != nil && o.Debug {
		cfg.TraceLine = o.TraceWire
	}
	return cfg
}
