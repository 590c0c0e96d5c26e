package domain

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/pubsub"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"gorm.io/gorm"
)

// findActiveTask returns the effective task only if it can receive
// submissions.
func findActiveTask(ctx context.Context, taskRepo repository.TaskRepository, id string) (*entity.Task, error) {
	task, _, err := taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get task: %v", err)
		return nil, errorx.Unknown
	}

	if !task.Active {
		return nil, errorx.New(errorx.InvalidState, "Task is not active")
	}

	return task, nil
}

func verifyRole(ctx context.Context, verifier *common.GlobalRoleVerifier, roles ...entity.GlobalRole) error {
	if err := verifier.Verify(ctx, roles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}

func normalizeLimit(ctx context.Context, limit int) (int, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		return apiCfg.DefaultLimit, nil
	}

	if limit < 0 {
		return 0, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if limit > apiCfg.MaxLimit {
		return 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	return limit, nil
}

// publishEvent never fails the caller. The state change it announces is
// already committed.
func publishEvent(ctx context.Context, publisher pubsub.Publisher, topic, key string, event any) {
	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", topic, err)
		return
	}

	if err := publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(key), Msg: b}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish %s event: %v", topic, err)
	}
}
