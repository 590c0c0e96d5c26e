package repository

import (
	"context"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/pkg/xcontext"
)

type ClaimRepository interface {
	Create(ctx context.Context, data *entity.Claim) error
	GetByID(ctx context.Context, id string) (*entity.Claim, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Claim, error)
}

type claimRepository struct{}

func NewClaimRepository() ClaimRepository {
	return &claimRepository{}
}

func (r *claimRepository) Create(ctx context.Context, data *entity.Claim) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *claimRepository) GetByID(ctx context.Context, id string) (*entity.Claim, error) {
	var result entity.Claim
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *claimRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Claim, error) {
	var result []entity.Claim
	if err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("claimed_at ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
