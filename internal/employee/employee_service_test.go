package employee_test

import (
	"context"
	"testing"

	"go-worksuite/internal/employee"
	employeeerrors "go-worksuite/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	createFn   func(ctx context.Context, e *employee.EmployeeRecord) error
	findAllFn  func(ctx context.Context, departmentID string) ([]employee.EmployeeRecord, error)
	findByIDFn func(ctx context.Context, id string) (*employee.EmployeeRecord, error)
	updateFn   func(ctx context.Context, e *employee.EmployeeRecord) error
	deleteFn   func(ctx context.Context, id string) (int64, error)
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.EmployeeRecord) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, departmentID string) ([]employee.EmployeeRecord, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, departmentID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.EmployeeRecord, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.EmployeeRecord) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 1, nil
}

type fakeDepartmentChecker struct {
	existsFn func(ctx context.Context, id string) (bool, error)
}

func (f *fakeDepartmentChecker) Exists(ctx context.Context, id string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, id)
	}
	return true, nil
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			createFn: func(ctx context.Context, e *employee.EmployeeRecord) error {
				assert.Equal(t, "Dewi Lestari", e.FullName)
				assert.True(t, e.IsActive)
				return nil
			},
		}
		svc := employee.NewService(repo, &fakeDepartmentChecker{})

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Dewi Lestari",
			Email:    "dewi@example.com",
		})
		assert.NoError(t, err)
		assert.True(t, resp.IsActive)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			createFn: func(context.Context, *employee.EmployeeRecord) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		svc := employee.NewService(repo, &fakeDepartmentChecker{})

		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Dewi Lestari",
			Email:    "dewi@example.com",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})

	t.Run("unknown department rejected", func(t *testing.T) {
		svc := employee.NewService(&fakeEmployeeRepository{}, &fakeDepartmentChecker{
			existsFn: func(context.Context, string) (bool, error) { return false, nil },
		})

		departmentID := uuid.New().String()
		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName:     "Dewi Lestari",
			Email:        "dewi@example.com",
			DepartmentID: &departmentID,
		})
		assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing record is not found", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			deleteFn: func(context.Context, string) (int64, error) { return 0, nil },
		}
		svc := employee.NewService(repo, &fakeDepartmentChecker{})

		err := svc.Delete(ctx, uuid.New().String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
