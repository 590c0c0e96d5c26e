package middleware

import (
	"testing"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestRoleVerifier_Middleware(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	middleware := NewRoleVerifier(repository.NewUserRepository(), entity.AdminRoles...).Middleware()

	newCtx, err := middleware(testutil.NewMockContextWithUserID(ctx, testutil.UserAdmin.ID))
	require.NoError(t, err)
	require.Nil(t, newCtx)

	_, err = middleware(testutil.NewMockContextWithUserID(ctx, testutil.UserQA.ID))
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)
}
