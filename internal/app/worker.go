package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-worksuite/internal/client"
	"go-worksuite/internal/invoice"
	"go-worksuite/internal/messaging/kafka"
	"go-worksuite/internal/messaging/kafka/producer"
	"go-worksuite/internal/notification"
	"go-worksuite/internal/shared/connection"
	"go-worksuite/internal/shared/counter"
	"go-worksuite/internal/task"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka and runs the scheduled sweeps:
// hourly overdue-invoice marking and a daily due-task reminder.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	clientService := client.NewService(client.NewRepository(gormDB))
	invoiceService := invoice.NewService(
		invoice.NewRepository(gormDB),
		counter.NewRepository(gormDB),
		clientService,
	)
	taskRepo := task.NewRepository(gormDB)
	notificationService := notification.NewService(notification.NewRepository(gormDB))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 * * * *", func() {
		if _, err := invoiceService.MarkOverdue(ctx, time.Now().UTC()); err != nil {
			logger.Error("overdue invoice sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	if _, err := scheduler.AddFunc("0 8 * * *", func() {
		if err := remindDueTasks(ctx, taskRepo, notificationService, logger); err != nil {
			logger.Error("due task reminder sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// remindDueTasks notifies assignees about open tasks due within the next
// 24 hours.
func remindDueTasks(
	ctx context.Context,
	tasks task.Repository,
	notifications notification.Service,
	logger *zap.Logger,
) error {
	now := time.Now().UTC()
	due, err := tasks.FindDueBetween(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		return err
	}

	for _, t := range due {
		if t.AssigneeID == nil || t.DueDate == nil {
			continue
		}
		body := fmt.Sprintf("The task %q is due on %s.", t.Title, t.DueDate.Format("2006-01-02"))
		if err := notifications.Notify(ctx, *t.AssigneeID, notification.TypeTaskDueSoon, "Task due soon", body); err != nil {
			logger.Error("due task reminder failed",
				zap.String("task_id", t.ID.String()),
				zap.Error(err),
			)
		}
	}

	if len(due) > 0 {
		logger.Info("due task reminders sent", zap.Int("count", len(due)))
	}
	return nil
}
