package messaging

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Poller re-reads the message collection on a fixed interval and hands any
// message newer than the last seen id to the callback. It stands in for push
// delivery on the employee side.
type Poller struct {
	svc      *Service
	interval time.Duration
	onNew    func(Message)
	logger   *slog.Logger

	lastID int64
	stop   chan struct{}
	wg     sync.WaitGroup
}

func NewPoller(svc *Service, interval time.Duration, onNew func(Message), logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		svc:      svc,
		interval: interval,
		onNew:    onNew,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start launches the polling goroutine. The poller exits when Stop is called
// or the context is cancelled.
func (p *Poller) Start(ctx context.Context) {
	// skip history present before the poller started
	for _, msg := range p.svc.Messages(ctx) {
		if msg.ID > p.lastID {
			p.lastID = msg.ID
		}
	}

	p.wg.Add(1)
	go p.run(ctx)
}

// Stop cancels the loop and waits for the goroutine to exit.
func (p *Poller) Stop() {
	close(p.stop)
	p.wg.Wait()
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			p.logger.Info("message poller stopping", "reason", ctx.Err())
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	for _, msg := range p.svc.Messages(ctx) {
		if msg.ID <= p.lastID {
			continue
		}
		p.lastID = msg.ID
		if p.onNew != nil {
			p.onNew(msg)
		}
	}
}
