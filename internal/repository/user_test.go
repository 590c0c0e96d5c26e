package repository_test

import (
	"testing"

	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_IncreasePoints(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewUserRepository()

	require.NoError(t, repo.IncreasePoints(ctx, testutil.User2.ID, 20))

	user, err := repo.GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), user.Points)
	require.Equal(t, int64(100), user.TotalEarned)

	require.ErrorIs(t, repo.IncreasePoints(ctx, "ghost", 20), gorm.ErrRecordNotFound)
}

func TestUserRepository_DecreasePoints(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewUserRepository()

	require.NoError(t, repo.DecreasePoints(ctx, testutil.User3.ID, 100))
	require.ErrorIs(t, repo.DecreasePoints(ctx, testutil.User3.ID, 100), gorm.ErrRecordNotFound)

	user, err := repo.GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, int64(50), user.Points)
	require.Equal(t, int64(200), user.TotalEarned)
}

func TestUserRepository_GetByIDs(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewUserRepository()

	users, err := repo.GetByIDs(ctx, []string{testutil.User1.ID, testutil.User2.ID, "ghost"})
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, users)
}
