package client

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=client_repo.go -destination=mock/client_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *ClientCompany) error
	FindAll(ctx context.Context) ([]ClientCompany, error)
	FindByID(ctx context.Context, id string) (*ClientCompany, error)
	Update(ctx context.Context, c *ClientCompany) error
	Delete(ctx context.Context, id string) error
	ExistsActive(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *ClientCompany) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context) ([]ClientCompany, error) {
	var companies []ClientCompany
	err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ClientCompany, error) {
	var c ClientCompany
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *ClientCompany) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&ClientCompany{}, "id = ?", id).Error
}

func (r *repository) ExistsActive(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ClientCompany{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}
