package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/supportstack/helpdesk/internal/repository"
	"github.com/supportstack/helpdesk/internal/service"
)

// Sweeper periodically re-enqueues stuck tickets: still open past a
// threshold age with no linked suggestion, the signature of a triage run
// that never completed. Re-running is safe, each run gets a fresh trace and
// a fresh suggestion.
type Sweeper struct {
	tickets    repository.TicketRepository
	queue      service.TriageQueue
	logger     *zap.Logger
	interval   time.Duration
	stuckAfter time.Duration
}

// NewSweeper constructs the sweeper.
func NewSweeper(tickets repository.TicketRepository, queue service.TriageQueue, interval, stuckAfter time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if stuckAfter <= 0 {
		stuckAfter = 2 * time.Minute
	}
	return &Sweeper{
		tickets:    tickets,
		queue:      queue,
		logger:     logger,
		interval:   interval,
		stuckAfter: stuckAfter,
	}
}

// Run loops until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.stuckAfter)
	stuck, err := s.tickets.ListStuck(ctx, cutoff, 100)
	if err != nil {
		s.logger.Error("stuck ticket sweep failed", zap.Error(err))
		return
	}
	if len(stuck) == 0 {
		return
	}

	s.logger.Info("re-enqueueing stuck tickets", zap.Int("count", len(stuck)))
	for _, ticket := range stuck {
		if err := s.queue.Enqueue(ctx, ticket.ID); err != nil {
			s.logger.Warn("failed to re-enqueue stuck ticket",
				zap.String("ticket_id", ticket.ID), zap.Error(err))
		}
	}
}
