package task_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-worksuite/internal/access"
	"go-worksuite/internal/task"
	taskerrors "go-worksuite/internal/task/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTaskRepository struct {
	createFn          func(ctx context.Context, t *task.Task) error
	findAllFn         func(ctx context.Context, scope func(*gorm.DB) *gorm.DB, projectID string) ([]task.Task, error)
	findByIDFn        func(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*task.Task, error)
	updateFn          func(ctx context.Context, t *task.Task) error
	updateStatusFn    func(ctx context.Context, id, fromStatus, toStatus string) (int64, error)
	assignFn          func(ctx context.Context, id string, assigneeID *uuid.UUID) error
	deleteFn          func(ctx context.Context, id string) error
	createCommentFn   func(ctx context.Context, c *task.Comment) error
	findCommentsFn    func(ctx context.Context, taskID string) ([]task.Comment, error)
	findCommentByIDFn func(ctx context.Context, id string) (*task.Comment, error)
	deleteCommentFn   func(ctx context.Context, id string) error
}

func (f *fakeTaskRepository) WithTx(tx *sql.Tx) task.Repository { return f }

func (f *fakeTaskRepository) Create(ctx context.Context, t *task.Task) error {
	if f.createFn != nil {
		return f.createFn(ctx, t)
	}
	return nil
}

func (f *fakeTaskRepository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB, projectID string) ([]task.Task, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, scope, projectID)
	}
	return nil, nil
}

func (f *fakeTaskRepository) FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*task.Task, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id, scope)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaskRepository) Update(ctx context.Context, t *task.Task) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, t)
	}
	return nil
}

func (f *fakeTaskRepository) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, fromStatus, toStatus)
	}
	return 1, nil
}

func (f *fakeTaskRepository) Assign(ctx context.Context, id string, assigneeID *uuid.UUID) error {
	if f.assignFn != nil {
		return f.assignFn(ctx, id, assigneeID)
	}
	return nil
}

func (f *fakeTaskRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeTaskRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]task.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepository) CreateComment(ctx context.Context, c *task.Comment) error {
	if f.createCommentFn != nil {
		return f.createCommentFn(ctx, c)
	}
	return nil
}

func (f *fakeTaskRepository) FindComments(ctx context.Context, taskID string) ([]task.Comment, error) {
	if f.findCommentsFn != nil {
		return f.findCommentsFn(ctx, taskID)
	}
	return nil, nil
}

func (f *fakeTaskRepository) FindCommentByID(ctx context.Context, id string) (*task.Comment, error) {
	if f.findCommentByIDFn != nil {
		return f.findCommentByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaskRepository) DeleteComment(ctx context.Context, id string) error {
	if f.deleteCommentFn != nil {
		return f.deleteCommentFn(ctx, id)
	}
	return nil
}

type fakeProjectGate struct {
	visibleFn  func(ctx context.Context, caller access.Caller, projectID string) (bool, error)
	isMemberFn func(ctx context.Context, projectID, userID string) (bool, error)
}

func (f *fakeProjectGate) Visible(ctx context.Context, caller access.Caller, projectID string) (bool, error) {
	if f.visibleFn != nil {
		return f.visibleFn(ctx, caller, projectID)
	}
	return true, nil
}

func (f *fakeProjectGate) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	if f.isMemberFn != nil {
		return f.isMemberFn(ctx, projectID, userID)
	}
	return true, nil
}

type recordingSink struct {
	assigned []uuid.UUID
}

func (r *recordingSink) TaskAssigned(ctx context.Context, tx *sql.Tx, t task.Task, assignedBy uuid.UUID) error {
	r.assigned = append(r.assigned, t.ID)
	return nil
}

func existingTask(id, projectID uuid.UUID) *task.Task {
	return &task.Task{
		ID:        id,
		ProjectID: projectID,
		Title:     "Draft landing page",
		Status:    task.StatusInProgress,
		Priority:  task.PriorityMedium,
		CreatedBy: uuid.New(),
	}
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("hidden project reads as not found", func(t *testing.T) {
		svc := task.NewService(nil, &fakeTaskRepository{}, &fakeProjectGate{
			visibleFn: func(context.Context, access.Caller, string) (bool, error) { return false, nil },
		}, task.NoopEventSink())

		_, err := svc.Create(ctx, access.Caller{ID: uuid.New(), Role: access.RoleClient}, task.CreateTaskRequest{
			ProjectID: projectID.String(),
			Title:     "Draft landing page",
		})
		assert.ErrorIs(t, err, taskerrors.ErrProjectNotVisible)
	})

	t.Run("team non-member may not create", func(t *testing.T) {
		svc := task.NewService(nil, &fakeTaskRepository{}, &fakeProjectGate{
			isMemberFn: func(context.Context, string, string) (bool, error) { return false, nil },
		}, task.NoopEventSink())

		_, err := svc.Create(ctx, access.Caller{ID: uuid.New(), Role: access.RoleTeam}, task.CreateTaskRequest{
			ProjectID: projectID.String(),
			Title:     "Draft landing page",
		})
		assert.ErrorIs(t, err, taskerrors.ErrEditForbidden)
	})

	t.Run("defaults to medium priority", func(t *testing.T) {
		repo := &fakeTaskRepository{
			createFn: func(ctx context.Context, created *task.Task) error {
				assert.Equal(t, task.StatusNotStarted, created.Status)
				assert.Equal(t, task.PriorityMedium, created.Priority)
				return nil
			},
		}
		svc := task.NewService(nil, repo, &fakeProjectGate{}, task.NoopEventSink())

		resp, err := svc.Create(ctx, access.Caller{ID: uuid.New(), Role: access.RoleAdmin}, task.CreateTaskRequest{
			ProjectID: projectID.String(),
			Title:     "Draft landing page",
		})
		assert.NoError(t, err)
		assert.Equal(t, task.StatusNotStarted, resp.Status)
	})
}

func TestTaskService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	projectID := uuid.New()
	caller := access.Caller{ID: uuid.New(), Role: access.RoleAdmin}

	t.Run("stale guard reports conflict", func(t *testing.T) {
		repo := &fakeTaskRepository{
			findByIDFn: func(ctx context.Context, id string, _ func(*gorm.DB) *gorm.DB) (*task.Task, error) {
				return existingTask(taskID, projectID), nil
			},
			updateStatusFn: func(context.Context, string, string, string) (int64, error) { return 0, nil },
		}
		svc := task.NewService(nil, repo, &fakeProjectGate{}, task.NoopEventSink())

		_, err := svc.UpdateStatus(ctx, caller, taskID.String(), task.UpdateStatusRequest{
			ExpectedStatus: task.StatusInProgress,
			Status:         task.StatusReview,
		})
		assert.ErrorIs(t, err, taskerrors.ErrStatusConflict)
	})
}

func TestTaskService_Assign(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	projectID := uuid.New()

	t.Run("team caller may not assign", func(t *testing.T) {
		svc := task.NewService(nil, &fakeTaskRepository{}, &fakeProjectGate{}, task.NoopEventSink())

		_, err := svc.Assign(ctx, access.Caller{ID: uuid.New(), Role: access.RoleTeam}, taskID.String(), task.AssignTaskRequest{})
		assert.ErrorIs(t, err, taskerrors.ErrAssignForbidden)
	})

	t.Run("assignment emits an event inside the tx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		assignee := uuid.New()
		assigned := existingTask(taskID, projectID)
		assigned.AssigneeID = &assignee

		repo := &fakeTaskRepository{
			findByIDFn: func(ctx context.Context, id string, _ func(*gorm.DB) *gorm.DB) (*task.Task, error) {
				return assigned, nil
			},
			assignFn: func(ctx context.Context, id string, got *uuid.UUID) error {
				assert.NotNil(t, got)
				assert.Equal(t, assignee, *got)
				return nil
			},
		}
		sink := &recordingSink{}
		svc := task.NewService(db, repo, &fakeProjectGate{}, sink)

		assigneeStr := assignee.String()
		resp, err := svc.Assign(ctx, access.Caller{ID: uuid.New(), Role: access.RoleHR}, taskID.String(), task.AssignTaskRequest{
			AssigneeID: &assigneeStr,
		})
		assert.NoError(t, err)
		assert.NotNil(t, resp.AssigneeID)
		assert.Equal(t, []uuid.UUID{taskID}, sink.assigned)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clearing an assignment emits nothing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		repo := &fakeTaskRepository{
			findByIDFn: func(ctx context.Context, id string, _ func(*gorm.DB) *gorm.DB) (*task.Task, error) {
				return existingTask(taskID, projectID), nil
			},
			assignFn: func(ctx context.Context, id string, got *uuid.UUID) error {
				assert.Nil(t, got)
				return nil
			},
		}
		sink := &recordingSink{}
		svc := task.NewService(db, repo, &fakeProjectGate{}, sink)

		_, err = svc.Assign(ctx, access.Caller{ID: uuid.New(), Role: access.RoleAdmin}, taskID.String(), task.AssignTaskRequest{})
		assert.NoError(t, err)
		assert.Empty(t, sink.assigned)
	})
}

func TestTaskService_Comments(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	projectID := uuid.New()
	author := uuid.New()

	visible := func(ctx context.Context, id string, _ func(*gorm.DB) *gorm.DB) (*task.Task, error) {
		return existingTask(taskID, projectID), nil
	}

	t.Run("author may delete own comment", func(t *testing.T) {
		repo := &fakeTaskRepository{
			findByIDFn: visible,
			findCommentByIDFn: func(ctx context.Context, id string) (*task.Comment, error) {
				return &task.Comment{ID: uuid.New(), TaskID: taskID, AuthorID: author}, nil
			},
		}
		svc := task.NewService(nil, repo, &fakeProjectGate{}, task.NoopEventSink())

		err := svc.DeleteComment(ctx, access.Caller{ID: author, Role: access.RoleTeam}, taskID.String(), uuid.New().String())
		assert.NoError(t, err)
	})

	t.Run("strangers may not delete a comment", func(t *testing.T) {
		repo := &fakeTaskRepository{
			findByIDFn: visible,
			findCommentByIDFn: func(ctx context.Context, id string) (*task.Comment, error) {
				return &task.Comment{ID: uuid.New(), TaskID: taskID, AuthorID: author}, nil
			},
		}
		svc := task.NewService(nil, repo, &fakeProjectGate{}, task.NoopEventSink())

		err := svc.DeleteComment(ctx, access.Caller{ID: uuid.New(), Role: access.RoleTeam}, taskID.String(), uuid.New().String())
		assert.ErrorIs(t, err, taskerrors.ErrCommentNotOwned)
	})

	t.Run("comment from another task is hidden", func(t *testing.T) {
		repo := &fakeTaskRepository{
			findByIDFn: visible,
			findCommentByIDFn: func(ctx context.Context, id string) (*task.Comment, error) {
				return &task.Comment{ID: uuid.New(), TaskID: uuid.New(), AuthorID: author}, nil
			},
		}
		svc := task.NewService(nil, repo, &fakeProjectGate{}, task.NoopEventSink())

		err := svc.DeleteComment(ctx, access.Caller{ID: author, Role: access.RoleAdmin}, taskID.String(), uuid.New().String())
		assert.ErrorIs(t, err, taskerrors.ErrCommentNotFound)
	})
}
