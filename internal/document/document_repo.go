package document

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, d *Document) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB, projectID string) ([]Document, error)
	FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*Document, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB, projectID string) ([]Document, error) {
	q := r.db.WithContext(ctx).Scopes(scope)
	if projectID != "" {
		q = q.Where("documents.project_id = ?", projectID)
	}

	var docs []Document
	err := q.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *repository) FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).
		Scopes(scope).
		First(&d, "documents.id = ?", id).Error
	return &d, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Document{}, "id = ?", id).Error
}
