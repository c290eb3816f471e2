package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// Failed events retry on an exponential schedule: 15s doubling per
// attempt, capped at 15s * 2^5 = 8 minutes.
const (
	retryBaseSeconds = 15
	retryMaxExponent = 5
)

// OutboxEvent is one row of the transactional outbox. Domain services
// insert it in the same transaction as the state change it announces;
// the relay worker publishes it to Kafka afterwards.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// validate rejects events the relay could never publish.
func (e OutboxEvent) validate() error {
	switch {
	case e.ID == "":
		return errors.New("outbox event id is empty")
	case e.Topic == "":
		return errors.New("outbox event topic is empty")
	case len(e.Payload) == 0:
		return errors.New("outbox event payload is empty")
	}
	switch e.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	}
	return fmt.Errorf("unknown outbox status %q", e.Status)
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (o *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: o.db, tx: tx}
}

// Create inserts the event, joining the caller's transaction when one was
// handed over through WithTx.
func (o *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := event.validate(); err != nil {
		return err
	}

	_, err := o.execer().ExecContext(ctx, `
INSERT INTO outbox_events
    (id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ListPending returns publishable rows, oldest first. Failed rows come back
// once their retry backoff has elapsed.
func (o *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := o.db.QueryContext(ctx, `
SELECT
    id::text,
    COALESCE(request_id, ''),
    aggregate_type,
    aggregate_id::text,
    event_type,
    topic,
    payload,
    status,
    retry_count,
    COALESCE(next_retry_at, created_at)
FROM outbox_events
WHERE status IN ($1, $2)
    AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY created_at
LIMIT $3`,
		OutboxStatusPending, OutboxStatusFailed, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
			&e.EventType, &e.Topic, &e.Payload, &e.Status,
			&e.RetryCount, &e.NextRetryAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (o *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := o.db.ExecContext(ctx, `
UPDATE outbox_events
SET status = $2, sent_at = NOW(), last_error = NULL
WHERE id = $1`,
		id, OutboxStatusSent,
	)
	return err
}

func (o *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := o.db.ExecContext(ctx, `
UPDATE outbox_events
SET
    status = $2,
    retry_count = retry_count + 1,
    last_error = LEFT($3, 500),
    next_retry_at = NOW() + make_interval(secs => $4 * POWER(2, LEAST(retry_count, $5)))
WHERE id = $1`,
		id, OutboxStatusFailed, reason, retryBaseSeconds, retryMaxExponent,
	)
	return err
}

func (o *outboxRepository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if o.tx != nil {
		return o.tx
	}
	return o.db
}
