package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *EmployeeRecord) error
	FindAll(ctx context.Context, departmentID string) ([]EmployeeRecord, error)
	FindByID(ctx context.Context, id string) (*EmployeeRecord, error)
	Update(ctx context.Context, e *EmployeeRecord) error
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *EmployeeRecord) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, departmentID string) ([]EmployeeRecord, error) {
	q := r.db.WithContext(ctx)
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}

	var records []EmployeeRecord
	err := q.Order("full_name ASC").Find(&records).Error
	return records, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeRecord, error) {
	var e EmployeeRecord
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *EmployeeRecord) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&EmployeeRecord{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
