package repository

import (
	"context"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	IncreasePoints(ctx context.Context, id string, amount int64) error
	DecreasePoints(ctx context.Context, id string, amount int64) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// IncreasePoints credits both the balance and the cumulative counter in one
// statement. It returns gorm.ErrRecordNotFound if the user does not exist.
func (r *userRepository) IncreasePoints(ctx context.Context, id string, amount int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			"points":       gorm.Expr("points+?", amount),
			"total_earned": gorm.Expr("total_earned+?", amount),
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DecreasePoints spends amount from the balance only if the balance covers it.
// It returns gorm.ErrRecordNotFound if no row satisfied the condition.
func (r *userRepository) DecreasePoints(ctx context.Context, id string, amount int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND points>=?", id, amount).
		Update("points", gorm.Expr("points-?", amount))
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
