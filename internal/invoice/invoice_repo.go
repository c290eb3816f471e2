package invoice

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=invoice_repo.go -destination=mock/invoice_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, inv *Invoice) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Invoice, error)
	FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*Invoice, error)
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error)
	Delete(ctx context.Context, id string) error

	// MarkOverdue flips every sent invoice whose due date passed. Used by
	// the worker, returns the number of rows flipped.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, inv *Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *repository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Invoice, error) {
	var invoices []Invoice
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("issued_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *repository) FindByID(ctx context.Context, id string, scope func(*gorm.DB) *gorm.DB) (*Invoice, error) {
	var inv Invoice
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Items").
		First(&inv, "invoices.id = ?", id).Error
	return &inv, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Invoice{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Invoice{}, "id = ?", id).Error
}

func (r *repository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Invoice{}).
		Where("status = ? AND due_date < ?", StatusSent, now).
		Update("status", StatusOverdue)
	return res.RowsAffected, res.Error
}
