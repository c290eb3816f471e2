package project

import (
	"context"
	"errors"
	"time"

	"go-worksuite/internal/access"
	projecterrors "go-worksuite/internal/project/errors"
	"go-worksuite/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyChecker verifies a client company id before it is attached to a
// project. Satisfied by the client module's service.
type CompanyChecker interface {
	Exists(ctx context.Context, companyID string) (bool, error)
}

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, caller access.Caller, req CreateProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context, caller access.Caller) ([]ProjectResponse, error)
	GetByID(ctx context.Context, caller access.Caller, id string) (ProjectResponse, error)
	Update(ctx context.Context, caller access.Caller, id string, req UpdateProjectRequest) (ProjectResponse, error)
	UpdateStatus(ctx context.Context, caller access.Caller, id string, req UpdateStatusRequest) (ProjectResponse, error)
	Delete(ctx context.Context, caller access.Caller, id string) error

	AddMember(ctx context.Context, caller access.Caller, projectID string, req AddMemberRequest) error
	RemoveMember(ctx context.Context, caller access.Caller, projectID, userID string) error

	// IsMember and Visible back the task module's checks.
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
	Visible(ctx context.Context, caller access.Caller, projectID string) (bool, error)
}

type service struct {
	repo      Repository
	companies CompanyChecker
	logger    *zap.Logger
}

func NewService(repo Repository, companies CompanyChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{repo: repo, companies: companies, logger: l}
}

func (s *service) Create(ctx context.Context, caller access.Caller, req CreateProjectRequest) (ProjectResponse, error) {
	s.logger.Debug("create project requested",
		zap.String("caller_id", caller.ID.String()),
		zap.String("name", req.Name),
	)

	companyID, err := s.resolveCompanyID(ctx, req.ClientCompanyID)
	if err != nil {
		return ProjectResponse{}, err
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return ProjectResponse{}, err
	}
	deadline, err := parseOptionalDate(req.Deadline)
	if err != nil {
		return ProjectResponse{}, err
	}

	p := &Project{
		ID:              uuid.New(),
		Name:            req.Name,
		Description:     req.Description,
		Status:          StatusNotStarted,
		ClientCompanyID: companyID,
		StartDate:       startDate,
		Deadline:        deadline,
		CreatedBy:       caller.ID,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create project persist failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("create project success", zap.String("project_id", p.ID.String()))
	return mapToResponse(*p, nil), nil
}

func (s *service) GetAll(ctx context.Context, caller access.Caller) ([]ProjectResponse, error) {
	projects, err := s.repo.FindAll(ctx, access.ProjectScope(caller))
	if err != nil {
		return nil, err
	}
	return lo.Map(projects, func(p Project, _ int) ProjectResponse {
		return mapToResponse(p, nil)
	}), nil
}

func (s *service) GetByID(ctx context.Context, caller access.Caller, id string) (ProjectResponse, error) {
	p, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return ProjectResponse{}, err
	}

	members, err := s.repo.MemberIDs(ctx, id)
	if err != nil {
		return ProjectResponse{}, err
	}
	return mapToResponse(*p, members), nil
}

func (s *service) Update(ctx context.Context, caller access.Caller, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	p, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return ProjectResponse{}, err
	}
	if err := s.requireEditable(ctx, caller, id); err != nil {
		return ProjectResponse{}, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ClientCompanyID != nil {
		companyID, err := s.resolveCompanyID(ctx, req.ClientCompanyID)
		if err != nil {
			return ProjectResponse{}, err
		}
		p.ClientCompanyID = companyID
	}
	if req.StartDate != nil {
		startDate, err := parseOptionalDate(req.StartDate)
		if err != nil {
			return ProjectResponse{}, err
		}
		p.StartDate = startDate
	}
	if req.Deadline != nil {
		deadline, err := parseOptionalDate(req.Deadline)
		if err != nil {
			return ProjectResponse{}, err
		}
		p.Deadline = deadline
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update project persist failed",
			zap.String("project_id", id),
			zap.Error(err),
		)
		return ProjectResponse{}, err
	}

	s.logger.Info("update project success", zap.String("project_id", id))
	return mapToResponse(*p, nil), nil
}

// UpdateStatus is guarded by the status the caller last read; a concurrent
// edit makes the guard fail and surfaces a conflict instead of silently
// overwriting the newer value.
func (s *service) UpdateStatus(ctx context.Context, caller access.Caller, id string, req UpdateStatusRequest) (ProjectResponse, error) {
	if _, err := s.findVisible(ctx, caller, id); err != nil {
		return ProjectResponse{}, err
	}
	if err := s.requireEditable(ctx, caller, id); err != nil {
		return ProjectResponse{}, err
	}

	affected, err := s.repo.UpdateStatus(ctx, id, req.ExpectedStatus, req.Status)
	if err != nil {
		s.logger.Error("update project status failed",
			zap.String("project_id", id),
			zap.Error(err),
		)
		return ProjectResponse{}, err
	}
	if affected == 0 {
		s.logger.Warn("update project status lost the race",
			zap.String("project_id", id),
			zap.String("expected_status", req.ExpectedStatus),
			zap.String("status", req.Status),
		)
		return ProjectResponse{}, projecterrors.ErrStatusConflict
	}

	p, err := s.repo.FindByID(ctx, id, access.Unscoped())
	if err != nil {
		return ProjectResponse{}, err
	}

	s.logger.Info("update project status success",
		zap.String("project_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(*p, nil), nil
}

func (s *service) Delete(ctx context.Context, caller access.Caller, id string) error {
	if _, err := s.findVisible(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete project failed", zap.String("project_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete project success", zap.String("project_id", id))
	return nil
}

func (s *service) AddMember(ctx context.Context, caller access.Caller, projectID string, req AddMemberRequest) error {
	if !caller.Role.IsStaff() {
		return projecterrors.ErrMembershipForbidden
	}
	p, err := s.findVisible(ctx, caller, projectID)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return apperror.InvalidField("user_id")
	}

	m := &ProjectMember{
		ProjectID: p.ID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddMember(ctx, m); err != nil {
		if isUniqueViolation(err) {
			return projecterrors.ErrAlreadyMember
		}
		s.logger.Error("add project member failed",
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("add project member success",
		zap.String("project_id", projectID),
		zap.String("user_id", req.UserID),
	)
	return nil
}

func (s *service) RemoveMember(ctx context.Context, caller access.Caller, projectID, userID string) error {
	if !caller.Role.IsStaff() {
		return projecterrors.ErrMembershipForbidden
	}
	if _, err := s.findVisible(ctx, caller, projectID); err != nil {
		return err
	}

	affected, err := s.repo.RemoveMember(ctx, projectID, userID)
	if err != nil {
		s.logger.Error("remove project member failed",
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		return err
	}
	if affected == 0 {
		return projecterrors.ErrMemberNotFound
	}

	s.logger.Info("remove project member success",
		zap.String("project_id", projectID),
		zap.String("user_id", userID),
	)
	return nil
}

func (s *service) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	return s.repo.IsMember(ctx, projectID, userID)
}

func (s *service) Visible(ctx context.Context, caller access.Caller, projectID string) (bool, error) {
	_, err := s.findVisible(ctx, caller, projectID)
	if err != nil {
		if errors.Is(err, projecterrors.ErrProjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// findVisible applies the caller's visibility scope, so rows outside it are
// indistinguishable from absent ones.
func (s *service) findVisible(ctx context.Context, caller access.Caller, id string) (*Project, error) {
	p, err := s.repo.FindByID(ctx, id, access.ProjectScope(caller))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projecterrors.ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// requireEditable: admin/hr edit anything; team only projects they belong to.
func (s *service) requireEditable(ctx context.Context, caller access.Caller, projectID string) error {
	if caller.Role.IsStaff() {
		return nil
	}
	if caller.Role != access.RoleTeam {
		return projecterrors.ErrNotProjectMember
	}
	member, err := s.repo.IsMember(ctx, projectID, caller.ID.String())
	if err != nil {
		return err
	}
	if !member {
		return projecterrors.ErrNotProjectMember
	}
	return nil
}

func (s *service) resolveCompanyID(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		return nil, projecterrors.ErrClientCompanyNotFound
	}
	exists, err := s.companies.Exists(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, projecterrors.ErrClientCompanyNotFound
	}
	return &parsed, nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, apperror.InvalidField("date")
	}
	return &t, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(p Project, memberIDs []string) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatedBy:   p.CreatedBy.String(),
		MemberIDs:   memberIDs,
	}
	if p.ClientCompanyID != nil {
		v := p.ClientCompanyID.String()
		resp.ClientCompanyID = &v
	}
	if p.StartDate != nil {
		v := p.StartDate.Format("2006-01-02")
		resp.StartDate = &v
	}
	if p.Deadline != nil {
		v := p.Deadline.Format("2006-01-02")
		resp.Deadline = &v
	}
	return resp
}
