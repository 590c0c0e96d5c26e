package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(ctx context.Context, source entity.TaskSource, data *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, entity.TaskSource, error)
	GetList(ctx context.Context) ([]entity.Task, error)
	UpdateByID(ctx context.Context, source entity.TaskSource, id string, data map[string]any) error
}

type taskRepository struct{}

func NewTaskRepository() TaskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(ctx context.Context, source entity.TaskSource, data *entity.Task) error {
	switch source {
	case entity.BaseCatalog:
		return xcontext.DB(ctx).Create(data).Error
	case entity.AddedCatalog:
		added := &entity.AddedTask{Task: *data}
		if err := xcontext.DB(ctx).Create(added).Error; err != nil {
			return err
		}

		*data = added.Task
		return nil
	default:
		return fmt.Errorf("invalid task source %s", source)
	}
}

// GetByID returns the effective task with the given id and the catalog it was
// found in. The added catalog takes precedence over the base catalog.
func (r *taskRepository) GetByID(ctx context.Context, id string) (*entity.Task, entity.TaskSource, error) {
	var added entity.AddedTask
	err := xcontext.DB(ctx).Where("id=?", id).Take(&added).Error
	if err == nil {
		return &added.Task, entity.AddedCatalog, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	var base entity.Task
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&base).Error; err != nil {
		return nil, "", err
	}

	return &base, entity.BaseCatalog, nil
}

// GetList returns the merged catalog ordered by creation time, newest first.
func (r *taskRepository) GetList(ctx context.Context) ([]entity.Task, error) {
	var base []entity.Task
	if err := xcontext.DB(ctx).Order("created_at ASC").Find(&base).Error; err != nil {
		return nil, err
	}

	var added []entity.AddedTask
	if err := xcontext.DB(ctx).Order("created_at ASC").Find(&added).Error; err != nil {
		return nil, err
	}

	return MergeTaskCatalogs(base, added), nil
}

func (r *taskRepository) UpdateByID(
	ctx context.Context, source entity.TaskSource, id string, data map[string]any,
) error {
	var model any
	switch source {
	case entity.BaseCatalog:
		model = &entity.Task{}
	case entity.AddedCatalog:
		model = &entity.AddedTask{}
	default:
		return fmt.Errorf("invalid task source %s", source)
	}

	tx := xcontext.DB(ctx).Model(model).Where("id=?", id).Updates(data)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// MergeTaskCatalogs merges the two catalogs into one identity space. For a
// duplicated id the later record wins, where the added catalog always comes
// after the base catalog. The result is ordered by CreatedAt descending and
// records without a creation time are put last.
func MergeTaskCatalogs(base []entity.Task, added []entity.AddedTask) []entity.Task {
	order := []string{}
	merged := map[string]entity.Task{}

	put := func(t entity.Task) {
		if _, ok := merged[t.ID]; !ok {
			order = append(order, t.ID)
		}
		merged[t.ID] = t
	}

	for _, t := range base {
		put(t)
	}

	for _, t := range added {
		put(t.Task)
	}

	result := make([]entity.Task, 0, len(order))
	for _, id := range order {
		result = append(result, merged[id])
	}

	slices.SortStableFunc(result, func(a, b entity.Task) bool {
		if a.CreatedAt.IsZero() != b.CreatedAt.IsZero() {
			return !a.CreatedAt.IsZero()
		}

		return a.CreatedAt.After(b.CreatedAt)
	})

	return result
}
