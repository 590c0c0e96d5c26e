package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/pubsub"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"gorm.io/gorm"
)

type ClaimDomain interface {
	ClaimReward(context.Context, *model.ClaimRewardRequest) (*model.ClaimRewardResponse, error)
}

type claimDomain struct {
	userRepo       repository.UserRepository
	claimRepo      repository.ClaimRepository
	pointEntryRepo repository.PointEntryRepository
	locker         common.Locker
	publisher      pubsub.Publisher
}

func NewClaimDomain(
	userRepo repository.UserRepository,
	claimRepo repository.ClaimRepository,
	pointEntryRepo repository.PointEntryRepository,
	locker common.Locker,
	publisher pubsub.Publisher,
) *claimDomain {
	return &claimDomain{
		userRepo:       userRepo,
		claimRepo:      claimRepo,
		pointEntryRepo: pointEntryRepo,
		locker:         locker,
		publisher:      publisher,
	}
}

func (d *claimDomain) ClaimReward(
	ctx context.Context, req *model.ClaimRewardRequest,
) (*model.ClaimRewardResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	node := xcontext.SnowFlake(ctx)
	if node == nil {
		xcontext.Logger(ctx).Errorf("Not found snowflake node in context")
		return nil, errorx.Unknown
	}

	unlock, err := d.locker.Lock(ctx, common.LockKeyUserPoints(userID))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot lock user points: %v", err)
		return nil, errorx.Unknown
	}
	defer unlock()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.Points < entity.ClaimCost {
		common.PromCounters[common.ClaimTotal].WithLabelValues("insufficient_balance").Inc()
		return nil, insufficientBalance(user.Points)
	}

	// The guarded decrement keeps the balance non-negative even if another
	// writer changed it after the read above.
	if err := d.userRepo.DecreasePoints(ctx, userID, entity.ClaimCost); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Report the balance the decrement actually lost against.
			current, err := d.userRepo.GetByID(ctx, userID)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
				return nil, errorx.Unknown
			}

			common.PromCounters[common.ClaimTotal].WithLabelValues("insufficient_balance").Inc()
			return nil, insufficientBalance(current.Points)
		}

		xcontext.Logger(ctx).Errorf("Cannot decrease points of user: %v", err)
		return nil, errorx.Unknown
	}

	claim := &entity.Claim{
		Base:      entity.Base{ID: uuid.NewString()},
		UserID:    userID,
		Points:    entity.ClaimCost,
		ClaimedAt: time.Now(),
		Status:    entity.ClaimCompleted,
	}

	if err := d.claimRepo.Create(ctx, claim); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create claim: %v", err)
		return nil, errorx.Unknown
	}

	entry := &entity.PointEntry{
		SnowFlakeBase: entity.SnowFlakeBase{ID: node.Generate().Int64()},
		UserID:        userID,
		ClaimID:       sql.NullString{Valid: true, String: claim.ID},
		Points:        -entity.ClaimCost,
		Type:          entity.PointClaimed,
	}

	if err := d.pointEntryRepo.Create(ctx, entry); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point entry: %v", err)
		return nil, errorx.Unknown
	}

	user, err = d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after claim: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	common.PromCounters[common.ClaimTotal].WithLabelValues("success").Inc()

	resp := &model.ClaimRewardResponse{
		Claim:            model.ConvertClaim(claim),
		RemainingBalance: user.Points,
	}

	publishEvent(ctx, d.publisher, model.ClaimTopic, claim.ID,
		model.ClaimEvent{Claim: resp.Claim, RemainingBalance: resp.RemainingBalance})

	return resp, nil
}

func insufficientBalance(balance int64) error {
	return errorx.New(errorx.InsufficientBalance,
		"Insufficient balance: need %d, have %d", entity.ClaimCost, balance)
}
