package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-worksuite/internal/leave"
	"go-worksuite/internal/messaging/kafka"
	"go-worksuite/internal/shared/contextutil"
	"go-worksuite/internal/task"

	"github.com/google/uuid"
)

// OutboxSink persists domain events in the same transaction as the state
// change that produced them. The worker relays pending rows to Kafka.
type OutboxSink struct {
	outbox kafka.OutboxRepository
}

func NewOutboxSink(outbox kafka.OutboxRepository) *OutboxSink {
	return &OutboxSink{outbox: outbox}
}

var _ leave.EventSink = (*OutboxSink)(nil)
var _ task.EventSink = (*OutboxSink)(nil)

func (s *OutboxSink) LeaveDecided(ctx context.Context, tx *sql.Tx, l leave.LeaveRequest) error {
	reviewedBy := ""
	if l.ReviewedBy != nil {
		reviewedBy = l.ReviewedBy.String()
	}
	event := LeaveDecidedEvent{
		EventType:  "leave.decided",
		LeaveID:    l.ID.String(),
		UserID:     l.UserID.String(),
		LeaveType:  l.LeaveType,
		Status:     l.Status,
		ReviewedBy: reviewedBy,
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,
		OccurredAt: time.Now().UTC(),
	}
	return s.enqueue(ctx, tx, "leave_request", event.LeaveID, event.EventType, LeaveDecidedTopic, event)
}

func (s *OutboxSink) TaskAssigned(ctx context.Context, tx *sql.Tx, t task.Task, assignedBy uuid.UUID) error {
	if t.AssigneeID == nil {
		return nil
	}
	event := TaskAssignedEvent{
		EventType:  "task.assigned",
		TaskID:     t.ID.String(),
		ProjectID:  t.ProjectID.String(),
		AssigneeID: t.AssigneeID.String(),
		AssignedBy: assignedBy.String(),
		Title:      t.Title,
		OccurredAt: time.Now().UTC(),
	}
	return s.enqueue(ctx, tx, "task", event.TaskID, event.EventType, TaskAssignedTopic, event)
}

func (s *OutboxSink) enqueue(
	ctx context.Context,
	tx *sql.Tx,
	aggregateType, aggregateID, eventType, topic string,
	event any,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
