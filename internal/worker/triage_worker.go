package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/supportstack/helpdesk/internal/service"
)

// ErrQueueFull is returned when the triage queue cannot accept more work.
var ErrQueueFull = errors.New("triage queue full")

// TriagePool runs triage jobs on a fixed set of workers fed by a buffered
// queue. Ticket creation enqueues and returns; failures inside a run are
// persisted by the orchestrator itself (TRIAGE_FAILED), the pool only logs
// them. Jobs run detached from the enqueuing request's context.
type TriagePool struct {
	triage  *service.TriageService
	logger  *zap.Logger
	jobs    chan string
	workers int

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewTriagePool constructs the pool.
func NewTriagePool(triageService *service.TriageService, workers, queueSize int, logger *zap.Logger) *TriagePool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 16
	}
	return &TriagePool{
		triage:  triageService,
		logger:  logger,
		jobs:    make(chan string, queueSize),
		workers: workers,
	}
}

// Start launches the workers.
func (p *TriagePool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Stop signals workers to finish and waits for them.
func (p *TriagePool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// Enqueue submits a ticket for triage without blocking.
func (p *TriagePool) Enqueue(_ context.Context, ticketID string) error {
	select {
	case p.jobs <- ticketID:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *TriagePool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ticketID := <-p.jobs:
			// detach from the pool context so an in-flight run finishes its
			// audit trail even during shutdown
			result, err := p.triage.TriageTicket(context.WithoutCancel(ctx), ticketID)
			if err != nil {
				p.logger.Error("triage run failed",
					zap.String("ticket_id", ticketID), zap.Error(err))
				continue
			}
			p.logger.Info("triage run finished",
				zap.String("ticket_id", ticketID),
				zap.String("decision", string(result.Decision)),
				zap.String("trace_id", result.TraceID),
			)
		}
	}
}
