package middleware

import (
	"context"

	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/router"
	"github.com/questx-lab/taskreward/pkg/xcontext"
)

type RoleVerifier struct {
	globalRoleVerifier *common.GlobalRoleVerifier
	roles              []entity.GlobalRole
}

func NewRoleVerifier(userRepo repository.UserRepository, roles ...entity.GlobalRole) *RoleVerifier {
	return &RoleVerifier{
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		roles:              roles,
	}
}

func (a *RoleVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if err := a.globalRoleVerifier.Verify(ctx, a.roles...); err != nil {
			xcontext.Logger(ctx).Debugf("Role verification failed: %v", err)
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return nil, nil
	}
}
