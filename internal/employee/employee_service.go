package employee

import (
	"context"
	"errors"
	"time"

	employeeerrors "go-worksuite/internal/employee/errors"
	"go-worksuite/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DepartmentChecker verifies a department id before it is attached to a
// record. Satisfied by the department module's service.
type DepartmentChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, departmentID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	departments DepartmentChecker
	logger      *zap.Logger
}

func NewService(repo Repository, departments DepartmentChecker, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, departments: departments, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	departmentID, err := s.resolveDepartmentID(ctx, req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	userID, err := parseOptionalUUID(req.UserID, "user_id")
	if err != nil {
		return EmployeeResponse{}, err
	}
	hireDate, err := parseOptionalDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e := &EmployeeRecord{
		ID:           uuid.New(),
		UserID:       userID,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: departmentID,
		Position:     req.Position,
		HireDate:     hireDate,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
		}
		s.logger.Error("create employee failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success", zap.String("employee_id", e.ID.String()))
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, departmentID string) ([]EmployeeResponse, error) {
	records, err := s.repo.FindAll(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return lo.Map(records, func(e EmployeeRecord, _ int) EmployeeResponse {
		return mapToResponse(e)
	}), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	e, err := s.findByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	e, err := s.findByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.DepartmentID != nil {
		departmentID, err := s.resolveDepartmentID(ctx, req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		e.DepartmentID = departmentID
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.HireDate != nil {
		hireDate, err := parseOptionalDate(req.HireDate)
		if err != nil {
			return EmployeeResponse{}, err
		}
		e.HireDate = hireDate
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("update employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}
	if affected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) findByID(ctx context.Context, id string) (*EmployeeRecord, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *service) resolveDepartmentID(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apperror.InvalidField("department_id")
	}
	exists, err := s.departments.Exists(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, employeeerrors.ErrDepartmentNotFound
	}
	return &parsed, nil
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
		return nil, apperror.InvalidField("hire_date")
	}
	return &t, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(e EmployeeRecord) EmployeeResponse {
	resp := EmployeeResponse{
		ID:       e.ID.String(),
		FullName: e.FullName,
		Email:    e.Email,
		Phone:    e.Phone,
		Position: e.Position,
		IsActive: e.IsActive,
	}
	if e.UserID != nil {
		v := e.UserID.String()
		resp.UserID = &v
	}
	if e.DepartmentID != nil {
		v := e.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if e.HireDate != nil {
		v := e.HireDate.Format("2006-01-02")
		resp.HireDate = &v
	}
	return resp
}
