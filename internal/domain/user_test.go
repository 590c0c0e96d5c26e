package domain

import (
	"testing"

	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewUserDomain(repository.NewUserRepository())

	got, err := d.GetMe(testutil.NewMockContextWithUserID(ctx, testutil.User3.ID), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, &model.GetMeResponse{
		ID:          testutil.User3.ID,
		Name:        testutil.User3.Name,
		Role:        "user",
		Status:      "active",
		Points:      150,
		TotalEarned: 200,
	}, got)

	_, err = d.GetMe(testutil.NewMockContextWithUserID(ctx, "ghost"), &model.GetMeRequest{})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)
}
