package client

import (
	"context"
	"errors"

	clienterrors "go-worksuite/internal/client/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetAll(ctx context.Context) ([]CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, id string) error

	// Exists satisfies the company checks of the profile and project modules.
	Exists(ctx context.Context, companyID string) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("client.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	c := &ClientCompany{
		ID:           uuid.New(),
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Address:      req.Address,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return CompanyResponse{}, clienterrors.ErrCompanyNameTaken
		}
		s.logger.Error("create company failed", zap.Error(err))
		return CompanyResponse{}, err
	}

	s.logger.Info("create company success", zap.String("company_id", c.ID.String()))
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(companies, func(c ClientCompany, _ int) CompanyResponse {
		return mapToResponse(c)
	}), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	c, err := s.findByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	c, err := s.findByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.ContactEmail != nil {
		c.ContactEmail = *req.ContactEmail
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return CompanyResponse{}, clienterrors.ErrCompanyNameTaken
		}
		s.logger.Error("update company failed", zap.String("company_id", id), zap.Error(err))
		return CompanyResponse{}, err
	}

	s.logger.Info("update company success", zap.String("company_id", id))
	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete company failed", zap.String("company_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete company success", zap.String("company_id", id))
	return nil
}

func (s *service) Exists(ctx context.Context, companyID string) (bool, error) {
	return s.repo.ExistsActive(ctx, companyID)
}

func (s *service) findByID(ctx context.Context, id string) (*ClientCompany, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clienterrors.ErrCompanyNotFound
		}
		return nil, err
	}
	return c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(c ClientCompany) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		ContactEmail: c.ContactEmail,
		Phone:        c.Phone,
		Address:      c.Address,
		IsActive:     c.IsActive,
	}
}
