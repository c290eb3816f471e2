package document

import (
	"context"
	"errors"
	"time"

	"go-worksuite/internal/access"
	documenterrors "go-worksuite/internal/document/errors"
	"go-worksuite/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectGate mirrors the task module's project checks.
type ProjectGate interface {
	Visible(ctx context.Context, caller access.Caller, projectID string) (bool, error)
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, caller access.Caller, req CreateDocumentRequest) (DocumentResponse, error)
	GetAll(ctx context.Context, caller access.Caller, projectID string) ([]DocumentResponse, error)
	GetByID(ctx context.Context, caller access.Caller, id string) (DocumentResponse, error)
	Delete(ctx context.Context, caller access.Caller, id string) error
}

type service struct {
	repo     Repository
	projects ProjectGate
	logger   *zap.Logger
}

func NewService(repo Repository, projects ProjectGate, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{repo: repo, projects: projects, logger: l}
}

func (s *service) Create(ctx context.Context, caller access.Caller, req CreateDocumentRequest) (DocumentResponse, error) {
	visible, err := s.projects.Visible(ctx, caller, req.ProjectID)
	if err != nil {
		return DocumentResponse{}, err
	}
	if !visible {
		return DocumentResponse{}, documenterrors.ErrProjectNotVisible
	}
	if caller.Role == access.RoleTeam {
		member, err := s.projects.IsMember(ctx, req.ProjectID, caller.ID.String())
		if err != nil {
			return DocumentResponse{}, err
		}
		if !member {
			return DocumentResponse{}, documenterrors.ErrProjectNotVisible
		}
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return DocumentResponse{}, apperror.InvalidField("project_id")
	}

	d := &Document{
		ID:          uuid.New(),
		ProjectID:   projectID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  req.StorageKey,
		UploadedBy:  caller.ID,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create document failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	s.logger.Info("create document success",
		zap.String("document_id", d.ID.String()),
		zap.String("project_id", req.ProjectID),
	)
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, caller access.Caller, projectID string) ([]DocumentResponse, error) {
	docs, err := s.repo.FindAll(ctx, access.DocumentScope(caller), projectID)
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(d Document, _ int) DocumentResponse {
		return mapToResponse(d)
	}), nil
}

func (s *service) GetByID(ctx context.Context, caller access.Caller, id string) (DocumentResponse, error) {
	d, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return DocumentResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, caller access.Caller, id string) error {
	d, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return err
	}
	if d.UploadedBy != caller.ID && !caller.Role.IsStaff() {
		return documenterrors.ErrDeleteForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete document failed", zap.String("document_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete document success", zap.String("document_id", id))
	return nil
}

func (s *service) findVisible(ctx context.Context, caller access.Caller, id string) (*Document, error) {
	d, err := s.repo.FindByID(ctx, id, access.DocumentScope(caller))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documenterrors.ErrDocumentNotFound
		}
		return nil, err
	}
	return d, nil
}

func mapToResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID.String(),
		ProjectID:   d.ProjectID.String(),
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		StorageKey:  d.StorageKey,
		UploadedBy:  d.UploadedBy.String(),
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
