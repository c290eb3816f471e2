package project

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=project_repo.go -destination=mock/project_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Project) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Project, error)
	FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*Project, error)
	Update(ctx context.Context, p *Project) error
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error)
	Delete(ctx context.Context, id string) error

	IsMember(ctx context.Context, projectID, userID string) (bool, error)
	AddMember(ctx context.Context, m *ProjectMember) error
	RemoveMember(ctx context.Context, projectID, userID string) (int64, error)
	MemberIDs(ctx context.Context, projectID string) ([]string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Project, error) {
	var projects []Project
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *repository) FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*Project, error) {
	var p Project
	err := r.db.WithContext(ctx).
		Scopes(scope).
		First(&p, "projects.id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// UpdateStatus is a compare-and-set on the status column. Zero rows affected
// means the row is absent or its status moved since the caller read it.
func (r *repository) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Project{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Project{}, "id = ?", id).Error
}

func (r *repository) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) AddMember(ctx context.Context, m *ProjectMember) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) RemoveMember(ctx context.Context, projectID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&ProjectMember{})
	return res.RowsAffected, res.Error
}

func (r *repository) MemberIDs(ctx context.Context, projectID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&ProjectMember{}).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
