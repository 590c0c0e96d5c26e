package domain

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/testutil"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newClaimDomain(publisher *testutil.MockPublisher) *claimDomain {
	return NewClaimDomain(
		repository.NewUserRepository(),
		repository.NewClaimRepository(),
		repository.NewPointEntryRepository(),
		common.NewLocalLocker(),
		publisher,
	)
}

func Test_claimDomain_ClaimReward(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		wantRemaining int64
		wantErr       error
	}{
		{
			name:          "happy case",
			userID:        testutil.User3.ID,
			wantRemaining: 50,
		},
		{
			name:    "insufficient balance",
			userID:  testutil.User2.ID,
			wantErr: errorx.New(errorx.InsufficientBalance, "Insufficient balance: need 100, have 80"),
		},
		{
			name:    "zero balance",
			userID:  testutil.User1.ID,
			wantErr: errorx.New(errorx.InsufficientBalance, "Insufficient balance: need 100, have 0"),
		},
		{
			name:    "not found user",
			userID:  "ghost",
			wantErr: errorx.New(errorx.NotFound, "Not found user"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.NewMockContext()
			testutil.CreateFixtureDb(ctx)
			ctx = testutil.NewMockContextWithUserID(ctx, tt.userID)

			publisher := &testutil.MockPublisher{}
			got, err := newClaimDomain(publisher).ClaimReward(ctx, &model.ClaimRewardRequest{})
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				require.Empty(t, getPointEntries(t, ctx, tt.userID))
				require.Equal(t, 0, publisher.Count(model.ClaimTopic))

				claims, err := repository.NewClaimRepository().GetByUserID(ctx, tt.userID)
				require.NoError(t, err)
				require.Empty(t, claims)
				requireFixtureUntouched(t, ctx)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantRemaining, got.RemainingBalance)
			require.NotEmpty(t, got.Claim.ID)
			require.NotEmpty(t, got.Claim.ClaimedAt)
			require.Equal(t, int64(100), got.Claim.Points)
			require.Equal(t, "completed", got.Claim.Status)

			// Claiming never touches the total earned.
			requireUserPoints(t, ctx, tt.userID, tt.wantRemaining, testutil.User3.TotalEarned)

			entries := getPointEntries(t, ctx, tt.userID)
			require.Len(t, entries, 1)
			require.Equal(t, int64(-100), entries[0].Points)
			require.Equal(t, entity.PointClaimed, entries[0].Type)
			require.Equal(t, got.Claim.ID, entries[0].ClaimID.String)

			claim, err := repository.NewClaimRepository().GetByID(ctx, got.Claim.ID)
			require.NoError(t, err)
			require.Equal(t, entity.ClaimCompleted, claim.Status)

			require.Equal(t, 1, publisher.Count(model.ClaimTopic))
		})
	}
}

func Test_claimDomain_ClaimReward_MissingSnowflake(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	ctx = xcontext.WithSnowFlake(ctx, nil)

	_, err := newClaimDomain(&testutil.MockPublisher{}).ClaimReward(ctx, &model.ClaimRewardRequest{})
	require.Equal(t, errorx.Unknown, err)
	requireUserPoints(t, ctx, testutil.User3.ID, 150, 200)
}

func Test_claimDomain_ClaimReward_Concurrent(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	// 300 points are worth exactly three claims.
	require.NoError(t, newLedgerDomain().Credit(ctx, testutil.User1.ID, 300, ""))
	ctx = testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)

	d := newClaimDomain(&testutil.MockPublisher{})

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.ClaimReward(ctx, &model.ClaimRewardRequest{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		require.True(t, errorx.Is(err, errorx.InsufficientBalance))
	}
	require.Equal(t, 3, success)

	requireUserPoints(t, ctx, testutil.User1.ID, 0, 300)

	claims, err := repository.NewClaimRepository().GetByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, claims, 3)
}

func Test_claimDomain_ClaimReward_LockFailure(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)

	redisClient := &testutil.MockRedisClient{
		SetNXFunc: func(context.Context, string, string, time.Duration) (bool, error) {
			return false, nil
		},
	}

	d := NewClaimDomain(
		repository.NewUserRepository(),
		repository.NewClaimRepository(),
		repository.NewPointEntryRepository(),
		common.NewRedisLocker(redisClient, 50*time.Millisecond),
		&testutil.MockPublisher{},
	)

	_, err := d.ClaimReward(ctx, &model.ClaimRewardRequest{})
	require.Equal(t, errorx.Unknown, err)
	requireUserPoints(t, ctx, testutil.User3.ID, 150, 200)
}

// userRepoDrainedBeforeDecrease lets another writer spend part of the balance
// between the read and the guarded decrement.
type userRepoDrainedBeforeDecrease struct {
	repository.UserRepository
	remaining int64
}

func (r *userRepoDrainedBeforeDecrease) DecreasePoints(ctx context.Context, id string, amount int64) error {
	err := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Update("points", r.remaining).Error
	if err != nil {
		return err
	}

	return r.UserRepository.DecreasePoints(ctx, id, amount)
}

func Test_claimDomain_ClaimReward_BalanceChangedBeforeDecrease(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)

	publisher := &testutil.MockPublisher{}
	d := NewClaimDomain(
		&userRepoDrainedBeforeDecrease{UserRepository: repository.NewUserRepository(), remaining: 60},
		repository.NewClaimRepository(),
		repository.NewPointEntryRepository(),
		common.NewLocalLocker(),
		publisher,
	)

	_, err := d.ClaimReward(ctx, &model.ClaimRewardRequest{})
	require.Equal(t, errorx.New(errorx.InsufficientBalance, "Insufficient balance: need 100, have 60"), err)
	require.Equal(t, 0, publisher.Count(model.ClaimTopic))

	// The failed claim rolls back with everything else in its transaction.
	requireUserPoints(t, ctx, testutil.User3.ID, 150, 200)
	require.Empty(t, getPointEntries(t, ctx, testutil.User3.ID))
}
