package conn

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/nduhart/tmigo/internal/transport"
)

// fakeSocket is an in-memory transport.Socket standing in for a real
// WebSocket, letting tests drive both directions of the wire.
type fakeSocket struct {
	toClient   chan []byte
	fromClient chan []byte
	closed     chan struct{}
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{
		toClient:   make(chan []byte, 32),
		fromClient: make(chan []byte, 32),
		closed:     make(chan struct{}),
	}
}

func (s *fakeSocket) ReadMessage() ([]byte, error) {
	select {
	case data := <-s.toClient:
		return data, nil
	case <-s.closed:
		return nil, errors.New("closed")
	}
}

func (s *fakeSocket) WriteMessage(data []byte) error {
	select {
	case s.fromClient <- data:
		return nil
	case <-s.closed:
		return errors.New("closed")
	}
}

func (s *fakeSocket) Close() error {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
	return nil
}

// serverSend queues a line as if the server sent it.
func (s *fakeSocket) serverSend(line string) {
	s.toClient <- []byte(line + "\r\n")
}

// nextClientLine waits for the next line the client wrote, stripped of
// its terminator.
func (s *fakeSocket) nextClientLine(timeout time.Duration) (string, bool) {
	select {
	case data := <-s.fromClient:
		line := string(data)
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		return line, true
	case <-time.After(timeout):
		return "", false
	}
}

type fakeDialer struct {
	sock *fakeSocket
	err  error
}

func (d fakeDialer) Dial(ctx context.Context, url string, header http.Header) (transport.Socket, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.sock, nil
}

// testConfig builds a Config wired to sock, with every timer sped up so
// tests don't wait on production-scale intervals.
func testConfig(sock *fakeSocket) Config {
	return Config{
		Transport:            fakeDialer{sock: sock},
		JoinInterval:         MinJoinInterval,
		PingInterval:         time.Hour,
		PingTimeout:          50 * time.Millisecond,
		ReconnectInterval:    5 * time.Millisecond,
		MaxReconnectInterval: 20 * time.Millisecond,
		ReconnectDecay:       1.0,
	}
}

// completeHandshake drains the CAP/PASS/NICK lines and replies with a
// successful 001/376, unblocking Connect.
func completeHandshake(sock *fakeSocket, username string) {
	for i := 0; i < 3; i++ {
		sock.nextClientLine(time.Second)
	}
	sock.serverSend(":tmi.twitch.tv 001 " + username + " :Welcome, GLHF!")
	sock.serverSend(":tmi.twitch.tv 376 " + username + " :>")
}
