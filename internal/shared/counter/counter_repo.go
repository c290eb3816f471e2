package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	// NextValue increments and returns the counter for (scope, counterType).
	// scope partitions the sequence, e.g. the year for invoice numbers.
	NextValue(ctx context.Context, scope string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) NextValue(ctx context.Context, scope string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic upsert-and-increment so concurrent requests never share a value.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequence_counters (scope, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (scope, counter_type) DO UPDATE
		SET last_value = sequence_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, scope, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
