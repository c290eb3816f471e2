package task

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-worksuite/internal/access"
	"go-worksuite/internal/shared/apperror"
	taskerrors "go-worksuite/internal/task/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectGate answers project-level questions without pulling the project
// package in. Satisfied by the project module's service.
type ProjectGate interface {
	Visible(ctx context.Context, caller access.Caller, projectID string) (bool, error)
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
}

// EventSink receives the assignment fact inside the same transaction that
// writes it. Satisfied by the outbox publisher; no-op in tests.
type EventSink interface {
	TaskAssigned(ctx context.Context, tx *sql.Tx, t Task, assignedBy uuid.UUID) error
}

type noopEventSink struct{}

func (noopEventSink) TaskAssigned(context.Context, *sql.Tx, Task, uuid.UUID) error { return nil }

func NoopEventSink() EventSink { return noopEventSink{} }

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, caller access.Caller, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context, caller access.Caller, projectID string) ([]TaskResponse, error)
	GetByID(ctx context.Context, caller access.Caller, id string) (TaskResponse, error)
	Update(ctx context.Context, caller access.Caller, id string, req UpdateTaskRequest) (TaskResponse, error)
	UpdateStatus(ctx context.Context, caller access.Caller, id string, req UpdateStatusRequest) (TaskResponse, error)
	Assign(ctx context.Context, caller access.Caller, id string, req AssignTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, caller access.Caller, id string) error

	AddComment(ctx context.Context, caller access.Caller, taskID string, req CreateCommentRequest) (CommentResponse, error)
	GetComments(ctx context.Context, caller access.Caller, taskID string) ([]CommentResponse, error)
	DeleteComment(ctx context.Context, caller access.Caller, taskID, commentID string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	projects ProjectGate
	events   EventSink
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, projects ProjectGate, events EventSink, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	if events == nil {
		events = noopEventSink{}
	}
	return &service{db: db, repo: repo, projects: projects, events: events, logger: l}
}

func (s *service) Create(ctx context.Context, caller access.Caller, req CreateTaskRequest) (TaskResponse, error) {
	s.logger.Debug("create task requested",
		zap.String("caller_id", caller.ID.String()),
		zap.String("project_id", req.ProjectID),
	)

	visible, err := s.projects.Visible(ctx, caller, req.ProjectID)
	if err != nil {
		return TaskResponse{}, err
	}
	if !visible {
		return TaskResponse{}, taskerrors.ErrProjectNotVisible
	}
	if caller.Role == access.RoleTeam {
		member, err := s.projects.IsMember(ctx, req.ProjectID, caller.ID.String())
		if err != nil {
			return TaskResponse{}, err
		}
		if !member {
			return TaskResponse{}, taskerrors.ErrEditForbidden
		}
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return TaskResponse{}, apperror.InvalidField("project_id")
	}
	assigneeID, err := parseOptionalUUID(req.AssigneeID, "assignee_id")
	if err != nil {
		return TaskResponse{}, err
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	t := &Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusNotStarted,
		Priority:    priority,
		AssigneeID:  assigneeID,
		DueDate:     dueDate,
		CreatedBy:   caller.ID,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create task persist failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("create task success", zap.String("task_id", t.ID.String()))
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, caller access.Caller, projectID string) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx, access.TaskScope(caller), projectID)
	if err != nil {
		return nil, err
	}
	return lo.Map(tasks, func(t Task, _ int) TaskResponse {
		return mapToResponse(t)
	}), nil
}

func (s *service) GetByID(ctx context.Context, caller access.Caller, id string) (TaskResponse, error) {
	t, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return TaskResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, caller access.Caller, id string, req UpdateTaskRequest) (TaskResponse, error) {
	t, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return TaskResponse{}, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		dueDate, err := parseOptionalDate(req.DueDate)
		if err != nil {
			return TaskResponse{}, err
		}
		t.DueDate = dueDate
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update task persist failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("update task success", zap.String("task_id", id))
	return mapToResponse(*t), nil
}

// UpdateStatus is guarded by the status the caller last read, so two
// concurrent editors cannot both win.
func (s *service) UpdateStatus(ctx context.Context, caller access.Caller, id string, req UpdateStatusRequest) (TaskResponse, error) {
	if _, err := s.findVisible(ctx, caller, id); err != nil {
		return TaskResponse{}, err
	}

	affected, err := s.repo.UpdateStatus(ctx, id, req.ExpectedStatus, req.Status)
	if err != nil {
		s.logger.Error("update task status failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}
	if affected == 0 {
		s.logger.Warn("update task status lost the race",
			zap.String("task_id", id),
			zap.String("expected_status", req.ExpectedStatus),
		)
		return TaskResponse{}, taskerrors.ErrStatusConflict
	}

	t, err := s.repo.FindByID(ctx, id, access.Unscoped())
	if err != nil {
		return TaskResponse{}, err
	}

	s.logger.Info("update task status success",
		zap.String("task_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(*t), nil
}

// Assign writes the assignment and its outbox event in one transaction.
func (s *service) Assign(ctx context.Context, caller access.Caller, id string, req AssignTaskRequest) (TaskResponse, error) {
	if !caller.Role.IsStaff() {
		return TaskResponse{}, taskerrors.ErrAssignForbidden
	}
	if _, err := s.findVisible(ctx, caller, id); err != nil {
		return TaskResponse{}, err
	}

	assigneeID, err := parseOptionalUUID(req.AssigneeID, "assignee_id")
	if err != nil {
		return TaskResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Assign(ctx, id, assigneeID); err != nil {
		s.logger.Error("assign task persist failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	t, err := qtx.FindByID(ctx, id, access.Unscoped())
	if err != nil {
		return TaskResponse{}, err
	}

	if assigneeID != nil {
		if err := s.events.TaskAssigned(ctx, tx, *t, caller.ID); err != nil {
			s.logger.Error("assign task event enqueue failed", zap.String("task_id", id), zap.Error(err))
			return TaskResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign task commit failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("assign task success",
		zap.String("task_id", id),
		zap.Bool("cleared", assigneeID == nil),
	)
	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, caller access.Caller, id string) error {
	if _, err := s.findVisible(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete task failed", zap.String("task_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete task success", zap.String("task_id", id))
	return nil
}

func (s *service) AddComment(ctx context.Context, caller access.Caller, taskID string, req CreateCommentRequest) (CommentResponse, error) {
	t, err := s.findVisible(ctx, caller, taskID)
	if err != nil {
		return CommentResponse{}, err
	}

	c := &Comment{
		ID:       uuid.New(),
		TaskID:   t.ID,
		AuthorID: caller.ID,
		Body:     req.Body,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		s.logger.Error("add comment failed", zap.String("task_id", taskID), zap.Error(err))
		return CommentResponse{}, err
	}

	s.logger.Info("add comment success",
		zap.String("task_id", taskID),
		zap.String("comment_id", c.ID.String()),
	)
	return mapCommentToResponse(*c), nil
}

func (s *service) GetComments(ctx context.Context, caller access.Caller, taskID string) ([]CommentResponse, error) {
	if _, err := s.findVisible(ctx, caller, taskID); err != nil {
		return nil, err
	}

	comments, err := s.repo.FindComments(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return lo.Map(comments, func(c Comment, _ int) CommentResponse {
		return mapCommentToResponse(c)
	}), nil
}

func (s *service) DeleteComment(ctx context.Context, caller access.Caller, taskID, commentID string) error {
	if _, err := s.findVisible(ctx, caller, taskID); err != nil {
		return err
	}

	c, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return taskerrors.ErrCommentNotFound
		}
		return err
	}
	if c.TaskID.String() != taskID {
		return taskerrors.ErrCommentNotFound
	}
	if c.AuthorID != caller.ID && caller.Role != access.RoleAdmin {
		return taskerrors.ErrCommentNotOwned
	}

	if err := s.repo.DeleteComment(ctx, commentID); err != nil {
		s.logger.Error("delete comment failed", zap.String("comment_id", commentID), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) findVisible(ctx context.Context, caller access.Caller, id string) (*Task, error) {
	t, err := s.repo.FindByID(ctx, id, access.TaskScope(caller))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskerrors.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apperror.InvalidField(field)
	}
	return &parsed, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, apperror.InvalidField("due_date")
	}
	return &t, nil
}

func mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedBy:   t.CreatedBy.String(),
	}
	if t.AssigneeID != nil {
		v := t.AssigneeID.String()
		resp.AssigneeID = &v
	}
	if t.DueDate != nil {
		v := t.DueDate.Format("2006-01-02")
		resp.DueDate = &v
	}
	return resp
}

func mapCommentToResponse(c Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		TaskID:    c.TaskID.String(),
		AuthorID:  c.AuthorID.String(),
		Body:      c.Body,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
