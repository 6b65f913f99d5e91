package conn

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestConnectSucceedsOnNumeric376(t *testing.T) {
	sock := newFakeSocket()
	c := New(testConfig(sock))
	defer c.cancel()

	resultCh := make(chan struct {
		username string
		err      error
	}, 1)
	go func() {
		u, err := c.Connect(context.Background())
		resultCh <- struct {
			username string
			err      error
		}{u, err}
	}()

	completeHandshake(sock, "justinfan12345")

	select {
	case r := <-resultCh:
		if r.err != nil {
			t.Fatalf("unexpected error: %v", r.err)
		}
		if r.username != "justinfan12345" {
			t.Fatalf("expected assigned username, got %q", r.username)
		}
	case <-time.After(time.Second):
		t.Fatal("Connect did not resolve")
	}

	if !c.IsConnected() {
		t.Fatal("expected connection to report connected")
	}
}

func TestConnectFailsOnLoginRejection(t *testing.T) {
	sock := newFakeSocket()
	c := New(testConfig(sock))
	defer c.cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := c.Connect(context.Background())
		resultCh <- err
	}()

	for i := 0; i < 3; i++ {
		sock.nextClientLine(time.Second)
	}
	sock.serverSend(":tmi.twitch.tv NOTICE * :Login authentication failed")

	select {
	case err := <-resultCh:
		var hsErr *HandshakeError
		if err == nil {
			t.Fatal("expected an error")
		}
		if !errorsAs(err, &hsErr) {
			t.Fatalf("expected *HandshakeError, got %T: %v", err, err)
		}
		if !strings.Contains(hsErr.Reason, "authentication failed") {
			t.Fatalf("unexpected reason: %q", hsErr.Reason)
		}
	case <-time.After(time.Second):
		t.Fatal("Connect did not resolve")
	}

	if c.reconnectOK {
		t.Fatal("expected reconnect to be disabled after a handshake rejection")
	}
}

func errorsAs(err error, target **HandshakeError) bool {
	if e, ok := err.(*HandshakeError); ok {
		*target = e
		return true
	}
	return false
}

func TestSendBeforeConnectReturnsErrConnectionClosed(t *testing.T) {
	sock := newFakeSocket()
	c := New(testConfig(sock))
	defer c.cancel()

	if err := c.Send("PRIVMSG #foo :hi"); err != ErrConnectionClosed {
		t.Fatalf("expected ErrConnectionClosed, got %v", err)
	}
}
