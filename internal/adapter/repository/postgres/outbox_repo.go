package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/usecase"
)

// OutboxRepository implements usecase.OutboxRepository.
type OutboxRepository struct {
	pool Pool
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(pool Pool) *OutboxRepository {
	return &OutboxRepository{pool: pool}
}

// Create records an outbox event within the same transaction as the
// ledger mutation it describes.
func (r *OutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	pgxTx := tx.(*Tx).PgxTx()

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}

	query := `INSERT INTO outbox_events (id, aggregate_id, aggregate_type, event_type, payload, created_at, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = pgxTx.Exec(ctx, query,
		event.ID, event.AggregateID, event.AggregateType, event.EventType,
		payload, timeToPgTimestamptz(event.CreatedAt), event.Published,
	)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	return nil
}

// GetUnpublished retrieves unpublished events, oldest first.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	query := `SELECT id, aggregate_id, aggregate_type, event_type, payload, created_at, published_at, published
		FROM outbox_events WHERE published = false ORDER BY created_at ASC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("get unpublished events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.OutboxEvent, 0, limit)
	for rows.Next() {
		var (
			event       domain.OutboxEvent
			payload     []byte
			createdAt   pgtype.Timestamptz
			publishedAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&event.ID, &event.AggregateID, &event.AggregateType, &event.EventType,
			&payload, &createdAt, &publishedAt, &event.Published,
		)
		if err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}

		if payload != nil {
			_ = json.Unmarshal(payload, &event.Payload)
		}

		event.CreatedAt = createdAt.Time
		event.PublishedAt = pgTimestamptzToTimePtr(publishedAt)

		events = append(events, &event)
	}

	return events, rows.Err()
}

// MarkPublished marks an event as published.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	query := `UPDATE outbox_events SET published = true, published_at = $1 WHERE id = $2`

	_, err := r.pool.Exec(ctx, query, timeToPgTimestamptz(publishedAt), id)
	if err != nil {
		return fmt.Errorf("mark event published: %w", err)
	}

	return nil
}
