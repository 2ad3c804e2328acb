package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// NATSConfig configures the NATS publisher.
type NATSConfig struct {
	URL     string
	Subject string
	// JetStream publishes through JetStream and waits for the stream ack.
	JetStream bool
	Timeout   time.Duration
}

// NATSPublisher publishes rebuild events as JSON on a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	timeout time.Duration
}

// NewNATSPublisher connects to cfg.URL.
func NewNATSPublisher(cfg NATSConfig) (*NATSPublisher, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("nats url is required")
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("llmstxt"),
		nats.Timeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	p := &NATSPublisher{conn: conn, subject: cfg.Subject, timeout: cfg.Timeout}
	if cfg.JetStream {
		js, err := jetstream.New(conn)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create JetStream context: %w", err)
		}
		p.js = js
	}

	slog.Info("NATS publisher initialized",
		logfields.URL(cfg.URL),
		slog.String("subject", cfg.Subject),
		slog.Bool("jetstream", cfg.JetStream))
	return p, nil
}

// Publish sends event. A zero Timestamp is set to now.
func (p *NATSPublisher) Publish(ctx context.Context, event ArtifactsRebuilt) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if p.js != nil {
		if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
			return fmt.Errorf("failed to publish event: %w", err)
		}
	} else {
		if err := p.conn.Publish(p.subject, data); err != nil {
			return fmt.Errorf("failed to publish event: %w", err)
		}
		if err := p.conn.FlushWithContext(ctx); err != nil {
			return fmt.Errorf("failed to flush event: %w", err)
		}
	}

	slog.Debug("Published rebuild event",
		slog.String("subject", p.subject),
		logfields.Reason(event.Reason),
		logfields.Count(event.Artifacts))
	return nil
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}
