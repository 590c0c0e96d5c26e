package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSubmissionRepository_UpdateReviewByID(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewSubmissionRepository()

	review := &entity.Submission{
		Status:     entity.SubmissionRejected,
		QAComment:  "blurry",
		ReviewerID: testutil.UserQA.ID,
		ReviewedAt: sql.NullTime{Valid: true, Time: time.Now()},
	}

	require.NoError(t, repo.UpdateReviewByID(ctx, testutil.Submission1.ID, review))
	require.ErrorIs(t, repo.UpdateReviewByID(ctx, testutil.Submission1.ID, review), repository.ErrSubmissionNotPending)
	require.ErrorIs(t, repo.UpdateReviewByID(ctx, testutil.Submission2.ID, review), repository.ErrSubmissionNotPending)

	got, err := repo.GetByID(ctx, testutil.Submission1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionRejected, got.Status)
	require.Equal(t, "blurry", got.QAComment)
	require.Equal(t, testutil.UserQA.ID, got.ReviewerID)
	require.True(t, got.ReviewedAt.Valid)
}

func TestSubmissionRepository_GetLastByStatus(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewSubmissionRepository()

	got, err := repo.GetLastByStatus(ctx, testutil.User2.ID, testutil.Task1.ID, entity.SubmissionApproved)
	require.NoError(t, err)
	require.Equal(t, testutil.Submission2.ID, got.ID)

	_, err = repo.GetLastByStatus(ctx, testutil.User2.ID, testutil.Task1.ID, entity.SubmissionPending)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmissionRepository_GetList(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewSubmissionRepository()

	tests := []struct {
		name   string
		filter *repository.SubmissionFilter
		offset int
		limit  int
		want   []string
	}{
		{
			name:   "all oldest first",
			filter: &repository.SubmissionFilter{},
			want:   []string{"submission1", "submission2", "submission3"},
		},
		{
			name:   "newest first",
			filter: &repository.SubmissionFilter{NewestFirst: true},
			want:   []string{"submission3", "submission2", "submission1"},
		},
		{
			name:   "by task",
			filter: &repository.SubmissionFilter{TaskID: testutil.Task2.ID},
			want:   []string{"submission1", "submission3"},
		},
		{
			name: "by status",
			filter: &repository.SubmissionFilter{
				Status: []entity.SubmissionStatus{entity.SubmissionApproved, entity.SubmissionRejected},
			},
			want: []string{"submission2", "submission3"},
		},
		{
			name:   "by user",
			filter: &repository.SubmissionFilter{UserID: testutil.User3.ID},
			want:   []string{"submission3"},
		},
		{
			name:   "paging",
			filter: &repository.SubmissionFilter{},
			offset: 1,
			limit:  1,
			want:   []string{"submission2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetList(ctx, tt.filter, tt.offset, tt.limit)
			require.NoError(t, err)

			ids := []string{}
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			require.Equal(t, tt.want, ids)
		})
	}
}
