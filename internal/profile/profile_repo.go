package profile

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	FindAll(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, p *Profile) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).First(&p, "id = ?", userID).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
