package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/pubsub"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"gorm.io/gorm"
)

type ReviewDomain interface {
	Approve(context.Context, *model.ApproveSubmissionRequest) (*model.ApproveSubmissionResponse, error)
	Reject(context.Context, *model.RejectSubmissionRequest) (*model.RejectSubmissionResponse, error)
}

type reviewDomain struct {
	submissionRepo     repository.SubmissionRepository
	ledgerDomain       LedgerDomain
	globalRoleVerifier *common.GlobalRoleVerifier
	publisher          pubsub.Publisher
}

func NewReviewDomain(
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	ledgerDomain LedgerDomain,
	publisher pubsub.Publisher,
) *reviewDomain {
	return &reviewDomain{
		submissionRepo:     submissionRepo,
		ledgerDomain:       ledgerDomain,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		publisher:          publisher,
	}
}

func (d *reviewDomain) Approve(
	ctx context.Context, req *model.ApproveSubmissionRequest,
) (*model.ApproveSubmissionResponse, error) {
	submission, err := d.review(ctx, req.ID, entity.SubmissionApproved, req.Comment)
	if err != nil {
		return nil, err
	}

	resp := model.ApproveSubmissionResponse(model.ConvertSubmission(submission))
	return &resp, nil
}

func (d *reviewDomain) Reject(
	ctx context.Context, req *model.RejectSubmissionRequest,
) (*model.RejectSubmissionResponse, error) {
	if strings.TrimSpace(req.Comment) == "" {
		return nil, errorx.New(errorx.BadRequest, "Rejection requires a comment")
	}

	submission, err := d.review(ctx, req.ID, entity.SubmissionRejected, req.Comment)
	if err != nil {
		return nil, err
	}

	resp := model.RejectSubmissionResponse(model.ConvertSubmission(submission))
	return &resp, nil
}

// review moves a pending submission to status. The status change and the
// ledger credit of an approval are committed together or not at all.
func (d *reviewDomain) review(
	ctx context.Context, id string, status entity.SubmissionStatus, comment string,
) (*entity.Submission, error) {
	if err := verifyRole(ctx, d.globalRoleVerifier, entity.ReviewRoles...); err != nil {
		return nil, err
	}

	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing submission id")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	submission, err := d.submissionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	if isReviewed(submission) {
		return nil, errorx.New(errorx.InvalidState, "Submission must be pending")
	}

	submission.Status = status
	submission.QAComment = comment
	submission.ReviewerID = xcontext.RequestUserID(ctx)
	submission.ReviewedAt = sql.NullTime{Valid: true, Time: time.Now()}

	if err := d.submissionRepo.UpdateReviewByID(ctx, submission.ID, submission); err != nil {
		if errors.Is(err, repository.ErrSubmissionNotPending) {
			return nil, errorx.New(errorx.InvalidState, "Submission must be pending")
		}

		xcontext.Logger(ctx).Errorf("Cannot update submission: %v", err)
		return nil, errorx.Unknown
	}

	if status == entity.SubmissionApproved {
		err := d.ledgerDomain.Credit(ctx, submission.UserID, submission.Points, submission.ID)
		if err != nil {
			return nil, err
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	common.PromCounters[common.ReviewTotal].WithLabelValues(string(status)).Inc()
	if status == entity.SubmissionApproved {
		common.PromCounters[common.PointsCreditedTotal].WithLabelValues().Add(float64(submission.Points))
	}

	publishEvent(ctx, d.publisher, model.SubmissionTopic, submission.ID,
		model.SubmissionEvent{Action: string(status), Submission: model.ConvertSubmission(submission)})

	return submission, nil
}
