package tmi

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/nduhart/tmigo/internal/transport"
)

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

func (s *fakeSocket) serverSend(line string) {
	s.toClient <- []byte(line + "\r\n")
}

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

type fakeDialer struct{ sock *fakeSocket }

func (d fakeDialer) Dial(ctx context.Context, url string, header http.Header) (transport.Socket, error) {
	return d.sock, nil
}

func connectedTestClient(t *testing.T) (*Client, *fakeSocket) {
	t.Helper()
	sock := newFakeSocket()
	opts := DefaultOptions()
	opts.Transport = fakeDialer{sock: sock}
	opts.Identity = Identity{Username: "testuser"}
	opts.Reconnect = false
	opts.PingInterval = time.Hour
	opts.PingTimeout = time.Hour

	c := New(opts)

	resultCh := make(chan error, 1)
	go func() {
		_, err := c.Connect(context.Background())
		resultCh <- err
	}()

	for i := 0; i < 2; i++ {
		sock.nextClientLine(time.Second)
	}
	sock.serverSend(":tmi.twitch.tv 001 testuser :Welcome, GLHF!")
	sock.serverSend(":tmi.twitch.tv 376 testuser :>")

	select {
	case err := <-resultCh:
		if err != nil {
			t.Fatalf("connect failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("connect did not resolve")
	}
	return c, sock
}
