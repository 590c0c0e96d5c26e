package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/enum"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/pubsub"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type SubmissionDomain interface {
	Create(context.Context, *model.CreateSubmissionRequest) (*model.CreateSubmissionResponse, error)
	Get(context.Context, *model.GetSubmissionRequest) (*model.GetSubmissionResponse, error)
	GetMy(context.Context, *model.GetMySubmissionsRequest) (*model.GetMySubmissionsResponse, error)
	GetPending(context.Context, *model.GetPendingSubmissionsRequest) (*model.GetPendingSubmissionsResponse, error)
}

type submissionDomain struct {
	submissionRepo     repository.SubmissionRepository
	taskRepo           repository.TaskRepository
	userRepo           repository.UserRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	locker             common.Locker
	publisher          pubsub.Publisher
}

func NewSubmissionDomain(
	submissionRepo repository.SubmissionRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	locker common.Locker,
	publisher pubsub.Publisher,
) *submissionDomain {
	return &submissionDomain{
		submissionRepo:     submissionRepo,
		taskRepo:           taskRepo,
		userRepo:           userRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		locker:             locker,
		publisher:          publisher,
	}
}

func (d *submissionDomain) Create(
	ctx context.Context, req *model.CreateSubmissionRequest,
) (*model.CreateSubmissionResponse, error) {
	if req.TaskID == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing task id")
	}

	if req.Evidence == nil {
		return nil, errorx.New(errorx.BadRequest, "Missing evidence")
	}

	userID := xcontext.RequestUserID(ctx)

	// Two requests of the same user for the same task must not both pass the
	// duplicate checks below.
	unlock, err := d.locker.Lock(ctx, common.LockKeySubmission(userID, req.TaskID))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot lock submission key: %v", err)
		return nil, errorx.Unknown
	}
	defer unlock()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	task, err := findActiveTask(ctx, d.taskRepo, req.TaskID)
	if err != nil {
		return nil, err
	}

	if err := checkEvidence(task.EvidenceType, req.Evidence); err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.checkDuplicate(ctx, userID, task.ID, entity.SubmissionPending,
		"You already have a pending submission for this task"); err != nil {
		return nil, err
	}

	if err := d.checkDuplicate(ctx, userID, task.ID, entity.SubmissionApproved,
		"You already completed this task"); err != nil {
		return nil, err
	}

	submission := &entity.Submission{
		Base:          entity.Base{ID: uuid.NewString()},
		TaskID:        task.ID,
		UserID:        user.ID,
		UserName:      user.Name,
		TaskTitle:     task.Title,
		Points:        task.Points,
		EvidenceImage: req.Evidence.Image,
		EvidenceText:  req.Evidence.Text,
		EvidenceLink:  req.Evidence.Link,
		Status:        entity.SubmissionPending,
		QAComment:     "",
		SubmittedAt:   time.Now(),
	}

	if err := d.submissionRepo.Create(ctx, submission); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create submission: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	common.PromCounters[common.SubmissionTotal].WithLabelValues(string(task.Type)).Inc()

	result := model.ConvertSubmission(submission)
	publishEvent(ctx, d.publisher, model.SubmissionTopic, submission.ID,
		model.SubmissionEvent{Action: "created", Submission: result})

	resp := model.CreateSubmissionResponse(result)
	return &resp, nil
}

func (d *submissionDomain) checkDuplicate(
	ctx context.Context, userID, taskID string, status entity.SubmissionStatus, msg string,
) error {
	_, err := d.submissionRepo.GetLastByStatus(ctx, userID, taskID, status)
	if err == nil {
		return errorx.New(errorx.AlreadyExists, "%s", msg)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get %s submission: %v", status, err)
		return errorx.Unknown
	}

	return nil
}

// checkEvidence requires the evidence field matching the evidence type of the
// task.
func checkEvidence(evidenceType entity.EvidenceType, evidence *model.Evidence) error {
	switch evidenceType {
	case entity.EvidenceText:
		if evidence.Text == "" {
			return errorx.New(errorx.BadRequest, "This task requires a text evidence")
		}

	case entity.EvidenceURL:
		if evidence.Link == "" {
			return errorx.New(errorx.BadRequest, "This task requires a link evidence")
		}

		if _, err := common.ParseEvidenceURL(evidence.Link); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid evidence link")
		}

	case entity.EvidenceImage:
		if evidence.Image == "" {
			return errorx.New(errorx.BadRequest, "This task requires an image evidence")
		}
	}

	return nil
}

func (d *submissionDomain) Get(
	ctx context.Context, req *model.GetSubmissionRequest,
) (*model.GetSubmissionResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing submission id")
	}

	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	if submission.UserID != xcontext.RequestUserID(ctx) {
		if err := verifyRole(ctx, d.globalRoleVerifier, entity.ReviewRoles...); err != nil {
			return nil, err
		}
	}

	resp := model.GetSubmissionResponse(model.ConvertSubmission(submission))
	return &resp, nil
}

func (d *submissionDomain) GetMy(
	ctx context.Context, req *model.GetMySubmissionsRequest,
) (*model.GetMySubmissionsResponse, error) {
	limit, err := normalizeLimit(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := &repository.SubmissionFilter{
		UserID:      xcontext.RequestUserID(ctx),
		NewestFirst: true,
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.SubmissionStatus](req.Status)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid submission status: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid submission status")
		}
		filter.Status = []entity.SubmissionStatus{status}
	}

	submissions, err := d.submissionRepo.GetList(ctx, filter, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of submissions: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMySubmissionsResponse{Submissions: convertSubmissions(submissions)}, nil
}

func (d *submissionDomain) GetPending(
	ctx context.Context, req *model.GetPendingSubmissionsRequest,
) (*model.GetPendingSubmissionsResponse, error) {
	if err := verifyRole(ctx, d.globalRoleVerifier, entity.ReviewRoles...); err != nil {
		return nil, err
	}

	limit, err := normalizeLimit(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	submissions, err := d.submissionRepo.GetList(ctx, &repository.SubmissionFilter{
		TaskID: req.TaskID,
		Status: []entity.SubmissionStatus{entity.SubmissionPending},
	}, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of pending submissions: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPendingSubmissionsResponse{Submissions: convertSubmissions(submissions)}, nil
}

func convertSubmissions(submissions []entity.Submission) []model.Submission {
	result := []model.Submission{}
	for i := range submissions {
		result = append(result, model.ConvertSubmission(&submissions[i]))
	}

	return result
}

// isReviewed reports whether the submission reached a terminal status.
func isReviewed(s *entity.Submission) bool {
	return slices.Contains(
		[]entity.SubmissionStatus{entity.SubmissionApproved, entity.SubmissionRejected}, s.Status)
}
