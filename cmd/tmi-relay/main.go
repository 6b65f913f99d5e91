// Command tmi-relay is a small demo that connects to Twitch chat, joins
// the channels named in its config file, logs the traffic, and serves a
// health endpoint reporting connection state — the tmi library's
// equivalent of this corpus's own single-binary relay command.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nduhart/tmigo/internal/config"
	"github.com/nduhart/tmigo/internal/health"
	"github.com/nduhart/tmigo/internal/logging"
	"github.com/nduhart/tmigo/internal/tracelog"
	"github.com/nduhart/tmigo/tmi"
)

func main() {
	log.Println("tmi-relay starting...")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Monitoring %d Twitch channels: %v", len(cfg.Twitch.Channels), cfg.Twitch.Channels)

	opts := cfg.ToOptions()
	opts.Logger = logging.New(cfg.Trace.Debug, "info")

	var tracer *tracelog.Writer
	if cfg.Trace.Enabled {
		tracer, err = tracelog.New(cfg.Trace.OutputDir, 60, 100)
		if err != nil {
			log.Fatalf("Failed to create wire tracer: %v", err)
		}
		opts.TraceWire = tracer.TraceLine
	}

	client := tmi.New(opts)

	client.OnConnect(func(server string, port int) {
		log.Printf("connected to %s:%d", server, port)
	})
	client.OnDisconnect(func(reason string) {
		log.Printf("disconnected: %s", reason)
	})
	client.OnReconnecting(func() {
		log.Println("reconnecting...")
	})
	client.OnJoin(func(e tmi.JoinEvent) {
		if e.Self {
			log.Printf("joined %s", e.Channel)
		}
	})
	client.OnMessage(func(m tmi.PrivateMessage) {
		kind := "chat"
		if m.Action {
			kind = "action"
		}
		log.Printf("[%s] %s %s: %s", m.Channel, kind, m.Tags.GetString("display-name"), m.Text)
	})
	client.OnNotice(func(n tmi.NoticeEvent) {
		log.Printf("[%s] notice %s: %s", n.Channel, n.MsgID, n.Text)
	})
	client.OnBan(func(e tmi.ModerationEvent) {
		log.Printf("[%s] ban: %s", e.Channel, e.Target)
	})
	client.OnTimeout(func(e tmi.ModerationEvent) {
		log.Printf("[%s] timeout: %s (%s)", e.Channel, e.Target, e.Duration)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	username, err := client.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	log.Printf("assigned username: %s", username)

	healthServer := health.New(":8080", client)
	go func() {
		if err := healthServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("Health server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down health server: %v", err)
	}

	client.Disconnect()
	if tracer != nil {
		_ = tracer.Close()
	}
	cancel()
	log.Println("tmi-relay stopped")
}
