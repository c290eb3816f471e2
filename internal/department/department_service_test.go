package department_test

import (
	"context"
	"testing"

	"go-worksuite/internal/department"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepository struct {
	createFn   func(ctx context.Context, dept *department.Department) error
	findAllFn  func(ctx context.Context) ([]department.Department, error)
	findByIDFn func(ctx context.Context, id string) (*department.Department, error)
	updateFn   func(ctx context.Context, dept *department.Department) error
	deleteFn   func(ctx context.Context, id string) (int64, error)
}

func (f *fakeDepartmentRepository) Create(ctx context.Context, dept *department.Department) error {
	if f.createFn != nil {
		return f.createFn(ctx, dept)
	}
	return nil
}

func (f *fakeDepartmentRepository) FindAll(ctx context.Context) ([]department.Department, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeDepartmentRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepository) Update(ctx context.Context, dept *department.Department) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, dept)
	}
	return nil
}

func (f *fakeDepartmentRepository) Delete(ctx context.Context, id string) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 1, nil
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeDepartmentRepository{
			createFn: func(ctx context.Context, dept *department.Department) error {
				assert.Equal(t, "Engineering", dept.Name)
				return nil
			},
		}
		svc := department.NewService(repo)

		resp, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Engineering"})
		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
	})

	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		repo := &fakeDepartmentRepository{
			createFn: func(context.Context, *department.Department) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		svc := department.NewService(repo)

		_, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Engineering"})
		assert.ErrorIs(t, err, department.ErrDepartmentNameTaken)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing department is not found", func(t *testing.T) {
		repo := &fakeDepartmentRepository{
			deleteFn: func(context.Context, string) (int64, error) { return 0, nil },
		}
		svc := department.NewService(repo)

		err := svc.Delete(ctx, uuid.New().String())
		assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	})
}
