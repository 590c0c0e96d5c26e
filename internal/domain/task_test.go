package domain

import (
	"testing"
	"time"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func taskIDs(tasks []model.Task) []string {
	ids := []string{}
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func Test_taskDomain_Create(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		req     *model.CreateTaskRequest
		wantErr error
	}{
		{
			name:   "happy case",
			userID: testutil.UserAdmin.ID,
			req: &model.CreateTaskRequest{
				Title:       "Follow us",
				Type:        "social_media",
				Description: "Follow our account",
				Points:      25,
			},
		},
		{
			name:   "not admin",
			userID: testutil.UserQA.ID,
			req: &model.CreateTaskRequest{
				Title:       "Follow us",
				Type:        "social_media",
				Description: "Follow our account",
				Points:      25,
			},
			wantErr: errorx.New(errorx.PermissionDenied, "Permission denied"),
		},
		{
			name:   "missing title",
			userID: testutil.UserAdmin.ID,
			req: &model.CreateTaskRequest{
				Type:        "social_media",
				Description: "Follow our account",
				Points:      25,
			},
			wantErr: errorx.New(errorx.BadRequest, "title is required"),
		},
		{
			name:   "non positive points",
			userID: testutil.UserAdmin.ID,
			req: &model.CreateTaskRequest{
				Title:       "Follow us",
				Type:        "social_media",
				Description: "Follow our account",
			},
			wantErr: errorx.New(errorx.BadRequest, "points must be greater than 0"),
		},
		{
			name:   "invalid type",
			userID: testutil.UserAdmin.ID,
			req: &model.CreateTaskRequest{
				Title:       "Follow us",
				Type:        "tiktok",
				Description: "Follow our account",
				Points:      25,
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid task type"),
		},
		{
			name:   "invalid evidence type",
			userID: testutil.UserAdmin.ID,
			req: &model.CreateTaskRequest{
				Title:        "Follow us",
				Type:         "social_media",
				Description:  "Follow our account",
				Points:       25,
				EvidenceType: "video",
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid evidence type"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.NewMockContext()
			testutil.CreateFixtureDb(ctx)
			ctx = testutil.NewMockContextWithUserID(ctx, tt.userID)

			d := NewTaskDomain(repository.NewTaskRepository(), repository.NewUserRepository())
			got, err := d.Create(ctx, tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, got.ID)
			require.NotEmpty(t, got.CreatedAt)
			require.Equal(t, tt.req.Title, got.Title)
			require.Equal(t, "text", got.EvidenceType)
			require.True(t, got.Active)
			require.Equal(t, 0, got.CompletedAmount)

			task, source, err := repository.NewTaskRepository().GetByID(ctx, got.ID)
			require.NoError(t, err)
			require.Equal(t, entity.AddedCatalog, source)
			require.Equal(t, int64(25), task.Points)
		})
	}
}

func Test_taskDomain_GetList(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewTaskDomain(repository.NewTaskRepository(), repository.NewUserRepository())

	_, err := d.GetList(testutil.NewMockContextWithUserID(ctx, testutil.User1.ID), &model.GetListTaskRequest{})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	all, err := d.GetList(testutil.NewMockContextWithUserID(ctx, testutil.UserAdmin.ID), &model.GetListTaskRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"task4", "task3", "task2", "task1"}, taskIDs(all.Tasks))

	active, err := d.GetListActive(ctx, &model.GetListActiveTaskRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"task4", "task2", "task1"}, taskIDs(active.Tasks))
}

func Test_taskDomain_GetListActive_AddedOverridesBase(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	// The added catalog deactivates task1 and reactivates task3.
	taskRepo := repository.NewTaskRepository()
	require.NoError(t, taskRepo.Create(ctx, entity.AddedCatalog, &entity.Task{
		Base:         entity.Base{ID: testutil.Task1.ID, CreatedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		Title:        "Watch the new launch video",
		Type:         entity.TaskYoutube,
		Points:       60,
		Active:       false,
		EvidenceType: entity.EvidenceText,
	}))
	require.NoError(t, taskRepo.Create(ctx, entity.AddedCatalog, &entity.Task{
		Base:         entity.Base{ID: testutil.Task3.ID, CreatedAt: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)},
		Title:        "New survey",
		Type:         entity.TaskSurvey,
		Points:       20,
		Active:       true,
		EvidenceType: entity.EvidenceText,
	}))

	d := NewTaskDomain(taskRepo, repository.NewUserRepository())
	active, err := d.GetListActive(ctx, &model.GetListActiveTaskRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"task3", "task4", "task2"}, taskIDs(active.Tasks))
	require.Equal(t, "New survey", active.Tasks[0].Title)

	all, err := d.GetList(testutil.NewMockContextWithUserID(ctx, testutil.UserAdmin.ID), &model.GetListTaskRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"task3", "task1", "task4", "task2"}, taskIDs(all.Tasks))
	require.Equal(t, "Watch the new launch video", all.Tasks[1].Title)
}

func Test_taskDomain_Get(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewTaskDomain(repository.NewTaskRepository(), repository.NewUserRepository())

	got, err := d.Get(ctx, &model.GetTaskRequest{ID: testutil.Task4.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Task4.Title, got.Title)
	require.Equal(t, "image", got.EvidenceType)

	_, err = d.Get(ctx, &model.GetTaskRequest{ID: "unknown"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found task"), err)
}

func Test_taskDomain_Update(t *testing.T) {
	points := int64(35)
	inactive := false
	title := "Share our new post"
	badType := "tiktok"
	badPoints := int64(-1)

	tests := []struct {
		name    string
		userID  string
		req     *model.UpdateTaskRequest
		want    func(t *testing.T, got *model.UpdateTaskResponse)
		wantErr error
	}{
		{
			name:   "update base task",
			userID: testutil.UserAdmin.ID,
			req:    &model.UpdateTaskRequest{ID: testutil.Task2.ID, Points: &points, Active: &inactive},
			want: func(t *testing.T, got *model.UpdateTaskResponse) {
				require.Equal(t, int64(35), got.Points)
				require.False(t, got.Active)
				require.Equal(t, testutil.Task2.Title, got.Title)
			},
		},
		{
			name:   "update added task",
			userID: testutil.UserAdmin.ID,
			req:    &model.UpdateTaskRequest{ID: testutil.Task4.ID, Title: &title},
			want: func(t *testing.T, got *model.UpdateTaskResponse) {
				require.Equal(t, title, got.Title)
				require.Equal(t, testutil.Task4.Points, got.Points)
				require.True(t, got.Active)
			},
		},
		{
			name:    "not admin",
			userID:  testutil.User1.ID,
			req:     &model.UpdateTaskRequest{ID: testutil.Task2.ID, Points: &points},
			wantErr: errorx.New(errorx.PermissionDenied, "Permission denied"),
		},
		{
			name:    "not found",
			userID:  testutil.UserAdmin.ID,
			req:     &model.UpdateTaskRequest{ID: "unknown", Points: &points},
			wantErr: errorx.New(errorx.NotFound, "Not found task"),
		},
		{
			name:    "invalid type",
			userID:  testutil.UserAdmin.ID,
			req:     &model.UpdateTaskRequest{ID: testutil.Task2.ID, Type: &badType},
			wantErr: errorx.New(errorx.BadRequest, "Invalid task type"),
		},
		{
			name:    "invalid points",
			userID:  testutil.UserAdmin.ID,
			req:     &model.UpdateTaskRequest{ID: testutil.Task2.ID, Points: &badPoints},
			wantErr: errorx.New(errorx.BadRequest, "Points must be positive"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.NewMockContext()
			testutil.CreateFixtureDb(ctx)
			ctx = testutil.NewMockContextWithUserID(ctx, tt.userID)

			d := NewTaskDomain(repository.NewTaskRepository(), repository.NewUserRepository())
			got, err := d.Update(ctx, tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			tt.want(t, got)
		})
	}
}
