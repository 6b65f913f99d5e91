package conn

import (
	"testing"
	"time"
)

func TestPingPongUpdatesLatency(t *testing.T) {
	c, sock := connectedTestConn(t)

	pong := make(chan time.Duration, 1)
	c.bus.On("pong", func(a []interface{}) {
		lat, _ := a[0].(time.Duration)
		pong <- lat
	})

	ch := c.PingOnce()

	line, ok := sock.nextClientLine(time.Second)
	if !ok || line != "PING" {
		t.Fatalf("expected an explicit PING on the wire, got %q ok=%v", line, ok)
	}
	sock.serverSend("PONG :tmi.twitch.tv")

	select {
	case lat := <-ch:
		if lat < 0 {
			t.Fatalf("expected a non-negative latency, got %v", lat)
		}
	case <-time.After(time.Second):
		t.Fatal("PingOnce channel did not resolve")
	}

	select {
	case <-pong:
	case <-time.After(time.Second):
		t.Fatal("expected the pong bus event to fire")
	}
}

func TestPingOnceSharesAnInFlightPing(t *testing.T) {
	c, sock := connectedTestConn(t)

	ch1 := c.PingOnce()
	sock.nextClientLine(time.Second) // the single wire PING

	ch2 := c.PingOnce()

	select {
	case <-sock.fromClient:
		t.Fatal("expected PingOnce not to send a second wire PING while one is outstanding")
	case <-time.After(50 * time.Millisecond):
	}

	sock.serverSend("PONG :tmi.twitch.tv")

	for _, ch := range []<-chan time.Duration{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("expected both PingOnce callers to observe the shared result")
		}
	}
}

func TestPongTimeoutClosesConnection(t *testing.T) {
	c, sock := connectedTestConn(t)

	disconnected := make(chan string, 1)
	c.bus.On("disconnected", func(a []interface{}) {
		reason, _ := a[0].(string)
		disconnected <- reason
	})

	c.PingOnce()
	sock.nextClientLine(time.Second)
	// No PONG sent: PingTimeout (50ms in testConfig) should fire.

	select {
	case <-disconnected:
	case <-time.After(time.Second):
		t.Fatal("expected a pong timeout to close the connection")
	}
	if c.IsConnected() {
		t.Fatal("expected connection to be closed after a pong timeout")
	}
}
