package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"gorm.io/gorm"
)

type LedgerDomain interface {
	// Credit adds amount to the balance and the total earned of the user and
	// records it. It joins the transaction of ctx if there is one.
	Credit(ctx context.Context, userID string, amount int64, submissionID string) error
	GetHistory(ctx context.Context, userID string) (*model.PointHistory, error)

	GetMyPointHistory(context.Context, *model.GetMyPointHistoryRequest) (*model.GetMyPointHistoryResponse, error)
	GetPointHistory(context.Context, *model.GetPointHistoryRequest) (*model.GetPointHistoryResponse, error)
}

type ledgerDomain struct {
	userRepo           repository.UserRepository
	pointEntryRepo     repository.PointEntryRepository
	claimRepo          repository.ClaimRepository
	globalRoleVerifier *common.GlobalRoleVerifier
}

func NewLedgerDomain(
	userRepo repository.UserRepository,
	pointEntryRepo repository.PointEntryRepository,
	claimRepo repository.ClaimRepository,
) *ledgerDomain {
	return &ledgerDomain{
		userRepo:           userRepo,
		pointEntryRepo:     pointEntryRepo,
		claimRepo:          claimRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *ledgerDomain) Credit(ctx context.Context, userID string, amount int64, submissionID string) error {
	if amount <= 0 {
		return errorx.New(errorx.BadRequest, "Credit amount must be positive")
	}

	node := xcontext.SnowFlake(ctx)
	if node == nil {
		xcontext.Logger(ctx).Errorf("Not found snowflake node in context")
		return errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if submissionID != "" {
		_, err := d.pointEntryRepo.GetBySubmissionID(ctx, submissionID)
		if err == nil {
			xcontext.Logger(ctx).Warnf("Submission %s is already credited", submissionID)
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get point entry of submission: %v", err)
			return errorx.Unknown
		}
	}

	if err := d.userRepo.IncreasePoints(ctx, userID, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase points of user: %v", err)
		return errorx.Unknown
	}

	entry := &entity.PointEntry{
		SnowFlakeBase: entity.SnowFlakeBase{ID: node.Generate().Int64()},
		UserID:        userID,
		SubmissionID:  sql.NullString{Valid: submissionID != "", String: submissionID},
		Points:        amount,
		Type:          entity.PointEarned,
	}

	if err := d.pointEntryRepo.Create(ctx, entry); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point entry: %v", err)
		return errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return nil
}

func (d *ledgerDomain) GetHistory(ctx context.Context, userID string) (*model.PointHistory, error) {
	if _, err := d.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	entries, err := d.pointEntryRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point entries: %v", err)
		return nil, errorx.Unknown
	}

	claims, err := d.claimRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get claims: %v", err)
		return nil, errorx.Unknown
	}

	history := &model.PointHistory{
		Entries: []model.PointEntry{},
		Claims:  []model.Claim{},
	}

	for i := range entries {
		history.Entries = append(history.Entries, model.ConvertPointEntry(&entries[i]))
	}

	for i := range claims {
		history.Claims = append(history.Claims, model.ConvertClaim(&claims[i]))
	}

	return history, nil
}

func (d *ledgerDomain) GetMyPointHistory(
	ctx context.Context, req *model.GetMyPointHistoryRequest,
) (*model.GetMyPointHistoryResponse, error) {
	history, err := d.GetHistory(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	resp := model.GetMyPointHistoryResponse(*history)
	return &resp, nil
}

func (d *ledgerDomain) GetPointHistory(
	ctx context.Context, req *model.GetPointHistoryRequest,
) (*model.GetPointHistoryResponse, error) {
	if err := verifyRole(ctx, d.globalRoleVerifier, entity.ReviewRoles...); err != nil {
		return nil, err
	}

	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing user id")
	}

	history, err := d.GetHistory(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	resp := model.GetPointHistoryResponse(*history)
	return &resp, nil
}
