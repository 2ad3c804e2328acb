package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// PollFunc checks the source once and reports whether it reassembled.
type PollFunc func(ctx context.Context) (bool, error)

// Poller runs a PollFunc on a fixed interval, for filesystems without change notifications.
type Poller struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	poll      PollFunc
	logger    *slog.Logger
}

func NewPoller(interval time.Duration, poll PollFunc, logger *slog.Logger) (*Poller, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", interval)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{scheduler: s, interval: interval, poll: poll, logger: logger}, nil
}

// Run schedules the poll job and blocks until ctx is canceled.
func (p *Poller) Run(ctx context.Context) error {
	_, err := p.scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(func() { p.execute(ctx) }),
		gocron.WithName("llmstxt-poll"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = p.scheduler.Shutdown()
		return fmt.Errorf("failed to create poll job: %w", err)
	}

	p.logger.Info("Starting source poller", slog.Duration("interval", p.interval))
	p.scheduler.Start()
	<-ctx.Done()

	p.logger.Info("Stopping source poller")
	return p.scheduler.Shutdown()
}

func (p *Poller) execute(ctx context.Context) {
	changed, err := p.poll(ctx)
	if err != nil {
		p.logger.Warn("Source poll failed", logfields.Component(), logfields.Error(err))
		return
	}
	if changed {
		p.logger.Info("Source changed; artifacts reassembled", logfields.Component())
	}
}
