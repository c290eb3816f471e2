package profile

import (
	"context"
	"errors"

	"go-worksuite/internal/access"
	profileerrors "go-worksuite/internal/profile/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyChecker is satisfied by the client module; used to validate the
// company linkage on client-role profiles.
type CompanyChecker interface {
	Exists(ctx context.Context, companyID string) (bool, error)
}

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	Complete(ctx context.Context, userID, email string, req CompleteProfileRequest) (ProfileResponse, error)
	GetAll(ctx context.Context) ([]ProfileResponse, error)
	GetByUserID(ctx context.Context, userID string) (ProfileResponse, error)
	UpdateRole(ctx context.Context, targetUserID string, req UpdateRoleRequest) (ProfileResponse, error)

	// ResolveCaller backs the per-request caller middleware.
	ResolveCaller(ctx context.Context, userID string) (access.Caller, error)
	// SummaryByUserID backs the auth module's profile lookup.
	SummaryByUserID(ctx context.Context, userID string) (role string, fullName string, err error)
}

type service struct {
	repo      Repository
	companies CompanyChecker
	logger    *zap.Logger
}

func NewService(repo Repository, companies CompanyChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	return &service{repo: repo, companies: companies, logger: l}
}

func (s *service) Complete(ctx context.Context, userID, email string, req CompleteProfileRequest) (ProfileResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindByUserID(ctx, userID); err == nil {
		return ProfileResponse{}, profileerrors.ErrProfileAlreadyComplete
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ProfileResponse{}, err
	}

	role, companyID, err := s.validateRoleAndCompany(ctx, req.Role, req.ClientCompanyID)
	if err != nil {
		return ProfileResponse{}, err
	}

	p := &Profile{
		ID:              uid,
		Email:           email,
		FullName:        req.FullName,
		Role:            string(role),
		Department:      req.Department,
		Position:        req.Position,
		Phone:           req.Phone,
		ClientCompanyID: companyID,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("complete profile persist failed", zap.String("user_id", userID), zap.Error(err))
		return ProfileResponse{}, err
	}

	s.logger.Info("profile completed",
		zap.String("user_id", userID),
		zap.String("role", p.Role),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProfileResponse, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByUserID(ctx context.Context, userID string) (ProfileResponse, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, profileerrors.ErrProfileNotFound
		}
		return ProfileResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) UpdateRole(ctx context.Context, targetUserID string, req UpdateRoleRequest) (ProfileResponse, error) {
	p, err := s.repo.FindByUserID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, profileerrors.ErrProfileNotFound
		}
		return ProfileResponse{}, err
	}

	role, companyID, err := s.validateRoleAndCompany(ctx, req.Role, req.ClientCompanyID)
	if err != nil {
		return ProfileResponse{}, err
	}

	p.Role = string(role)
	p.ClientCompanyID = companyID

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update role persist failed", zap.String("user_id", targetUserID), zap.Error(err))
		return ProfileResponse{}, err
	}

	s.logger.Info("profile role updated",
		zap.String("user_id", targetUserID),
		zap.String("role", p.Role),
	)
	return mapToResponse(*p), nil
}

func (s *service) ResolveCaller(ctx context.Context, userID string) (access.Caller, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return access.Caller{}, err
	}

	role, ok := access.ParseRole(p.Role)
	if !ok {
		// an unrecognized stored role denies all access
		return access.Caller{}, profileerrors.ErrInvalidRole
	}

	return access.Caller{
		ID:              p.ID,
		Role:            role,
		ClientCompanyID: p.ClientCompanyID,
	}, nil
}

func (s *service) SummaryByUserID(ctx context.Context, userID string) (string, string, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return p.Role, p.FullName, nil
}

func (s *service) validateRoleAndCompany(ctx context.Context, rawRole string, rawCompanyID *string) (access.Role, *uuid.UUID, error) {
	role, ok := access.ParseRole(rawRole)
	if !ok {
		return "", nil, profileerrors.ErrInvalidRole
	}

	if role != access.RoleClient {
		if rawCompanyID != nil && *rawCompanyID != "" {
			return "", nil, profileerrors.ErrClientCompanyNotAllowed
		}
		return role, nil, nil
	}

	// a client profile may exist without a company yet; it simply sees
	// nothing until one is linked
	if rawCompanyID == nil || *rawCompanyID == "" {
		return role, nil, nil
	}

	companyID, err := uuid.Parse(*rawCompanyID)
	if err != nil {
		return "", nil, profileerrors.ErrClientCompanyNotFound
	}
	exists, err := s.companies.Exists(ctx, companyID.String())
	if err != nil {
		return "", nil, err
	}
	if !exists {
		return "", nil, profileerrors.ErrClientCompanyNotFound
	}
	return role, &companyID, nil
}

func mapToResponse(p Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:         p.ID.String(),
		Email:      p.Email,
		FullName:   p.FullName,
		Role:       p.Role,
		AvatarURL:  p.AvatarURL,
		Department: p.Department,
		Position:   p.Position,
		Phone:      p.Phone,
	}
	if p.ClientCompanyID != nil {
		v := p.ClientCompanyID.String()
		resp.ClientCompanyID = &v
	}
	return resp
}
