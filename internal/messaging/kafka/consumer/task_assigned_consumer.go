package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-worksuite/internal/events"
	"go-worksuite/internal/notification"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeTaskAssigned tells the assignee about their new task.
func ConsumeTaskAssigned(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.task_assigned")
	log.Info("task assigned consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("task assigned consumer stopped")
				return
			}
			log.Error("fetch task assigned message failed", zap.Error(err))
			continue
		}

		var event events.TaskAssignedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode task assigned event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		assigneeID, err := uuid.Parse(event.AssigneeID)
		if err != nil {
			log.Error("task assigned event has bad assignee id",
				zap.String("task_id", event.TaskID),
				zap.String("assignee_id", event.AssigneeID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		title := "New task assigned"
		body := fmt.Sprintf("You were assigned the task %q.", event.Title)
		if err := notifications.Notify(ctx, assigneeID, notification.TypeTaskAssigned, title, body); err != nil {
			log.Error("write task assigned notification failed",
				zap.String("task_id", event.TaskID),
				zap.String("assignee_id", event.AssigneeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit task assigned message failed", zap.Error(err))
			continue
		}

		log.Info("task assignment projected to notifications",
			zap.String("task_id", event.TaskID),
			zap.String("assignee_id", event.AssigneeID),
		)
	}
}
