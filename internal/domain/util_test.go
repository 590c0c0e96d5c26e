package domain

import (
	"context"
	"testing"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func requireUserPoints(t *testing.T, ctx context.Context, userID string, points, totalEarned int64) {
	user, err := repository.NewUserRepository().GetByID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, points, user.Points)
	require.Equal(t, totalEarned, user.TotalEarned)
}

func getPointEntries(t *testing.T, ctx context.Context, userID string) []entity.PointEntry {
	entries, err := repository.NewPointEntryRepository().GetByUserID(ctx, userID)
	require.NoError(t, err)
	return entries
}

// requireFixtureUntouched checks that no fixture submission was reviewed and
// no fixture balance moved.
func requireFixtureUntouched(t *testing.T, ctx context.Context) {
	for _, want := range testutil.Submissions {
		got, err := repository.NewSubmissionRepository().GetByID(ctx, want.ID)
		require.NoError(t, err)
		require.Equal(t, want.Status, got.Status)
		require.Equal(t, want.QAComment, got.QAComment)
		require.Equal(t, want.ReviewerID, got.ReviewerID)
		require.Equal(t, want.ReviewedAt.Valid, got.ReviewedAt.Valid)
		if want.ReviewedAt.Valid {
			require.True(t, want.ReviewedAt.Time.Equal(got.ReviewedAt.Time))
		}
	}

	for _, u := range []*entity.User{testutil.User1, testutil.User2, testutil.User3} {
		requireUserPoints(t, ctx, u.ID, u.Points, u.TotalEarned)
		require.Empty(t, getPointEntries(t, ctx, u.ID))
	}
}
