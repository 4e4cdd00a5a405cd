package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportstack/helpdesk/internal/domain"
)

// AuditRepository is the append-only store for audit trail entries.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLogEntry) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.AuditLogEntry, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	meta, err := json.Marshal(entry.Meta)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO audit_logs (ticket_id, trace_id, actor, action, meta)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, ts`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.TraceID,
		entry.Actor,
		entry.Action,
		meta,
	).Scan(&entry.ID, &entry.Ts)
}

// ListByTicket returns entries ascending by timestamp for timeline display.
func (r *auditRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.AuditLogEntry, error) {
	const query = `
        SELECT id, ticket_id, trace_id, actor, action, meta, ts
        FROM audit_logs WHERE ticket_id=$1
        ORDER BY ts ASC`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditLogEntry
	for rows.Next() {
		var entry domain.AuditLogEntry
		var meta []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.TraceID,
			&entry.Actor,
			&entry.Action,
			&meta,
			&entry.Ts,
		); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &entry.Meta); err != nil {
				return nil, err
			}
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
