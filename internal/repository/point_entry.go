package repository

import (
	"context"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/pkg/xcontext"
)

type PointEntryRepository interface {
	Create(ctx context.Context, data *entity.PointEntry) error
	GetByUserID(ctx context.Context, userID string) ([]entity.PointEntry, error)
	GetBySubmissionID(ctx context.Context, submissionID string) (*entity.PointEntry, error)
}

type pointEntryRepository struct{}

func NewPointEntryRepository() PointEntryRepository {
	return &pointEntryRepository{}
}

func (r *pointEntryRepository) Create(ctx context.Context, data *entity.PointEntry) error {
	return xcontext.DB(ctx).Create(data).Error
}

// GetByUserID returns the entries of the user in insertion order. Snowflake
// ids grow with time so ordering by id keeps the append order.
func (r *pointEntryRepository) GetByUserID(ctx context.Context, userID string) ([]entity.PointEntry, error) {
	var result []entity.PointEntry
	if err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("id ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointEntryRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*entity.PointEntry, error) {
	var result entity.PointEntry
	if err := xcontext.DB(ctx).Take(&result, "submission_id=?", submissionID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
