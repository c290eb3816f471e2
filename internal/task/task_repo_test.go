package task_test

import (
	"context"
	"testing"

	"go-worksuite/internal/task"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTaskTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	// an in-memory sqlite database exists per connection
	sqlDB.SetMaxOpenConns(1)

	err = db.Exec(`CREATE TABLE tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'not_started',
		priority TEXT NOT NULL DEFAULT 'medium',
		assignee_id TEXT,
		due_date DATETIME,
		created_by TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`).Error
	assert.NoError(t, err)

	return db
}

func seedTask(t *testing.T, repo task.Repository) *task.Task {
	t.Helper()
	tk := &task.Task{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Title:     "ship the release notes",
		Status:    task.StatusNotStarted,
		Priority:  task.PriorityMedium,
		CreatedBy: uuid.New(),
	}
	assert.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

func TestTaskRepository_WithTx_JoinsTransaction(t *testing.T) {
	ctx := context.Background()
	db := newTaskTestDB(t)
	repo := task.NewRepository(db)

	sqlDB, err := db.DB()
	assert.NoError(t, err)

	tk := seedTask(t, repo)
	assignee := uuid.New()

	t.Run("rollback discards the assignment", func(t *testing.T) {
		tx, err := sqlDB.BeginTx(ctx, nil)
		assert.NoError(t, err)

		assert.NoError(t, repo.WithTx(tx).Assign(ctx, tk.ID.String(), &assignee))
		assert.NoError(t, tx.Rollback())

		got, err := repo.FindByID(ctx, tk.ID.String(), func(db *gorm.DB) *gorm.DB { return db })
		assert.NoError(t, err)
		assert.Nil(t, got.AssigneeID)
	})

	t.Run("commit persists the assignment", func(t *testing.T) {
		tx, err := sqlDB.BeginTx(ctx, nil)
		assert.NoError(t, err)

		assert.NoError(t, repo.WithTx(tx).Assign(ctx, tk.ID.String(), &assignee))
		assert.NoError(t, tx.Commit())

		got, err := repo.FindByID(ctx, tk.ID.String(), func(db *gorm.DB) *gorm.DB { return db })
		assert.NoError(t, err)
		assert.NotNil(t, got.AssigneeID)
		assert.Equal(t, assignee, *got.AssigneeID)
	})
}
