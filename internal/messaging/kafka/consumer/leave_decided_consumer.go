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

// ConsumeLeaveDecided projects leave decisions into the requester's
// notification feed.
func ConsumeLeaveDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		userID, err := uuid.Parse(event.UserID)
		if err != nil {
			log.Error("leave decided event has bad user id",
				zap.String("leave_id", event.LeaveID),
				zap.String("user_id", event.UserID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		title := fmt.Sprintf("Leave request %s", event.Status)
		body := fmt.Sprintf(
			"Your %s leave from %s to %s was %s.",
			event.LeaveType,
			event.StartDate.Format("2006-01-02"),
			event.EndDate.Format("2006-01-02"),
			event.Status,
		)
		if err := notifications.Notify(ctx, userID, notification.TypeLeaveDecided, title, body); err != nil {
			log.Error("write leave decided notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision projected to notifications",
			zap.String("leave_id", event.LeaveID),
			zap.String("user_id", event.UserID),
			zap.String("status", event.Status),
		)
	}
}
