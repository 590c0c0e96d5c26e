package repository

import (
	"context"
	"errors"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/pkg/xcontext"
)

// ErrSubmissionNotPending is returned when a review targets a submission which
// has already left the pending status.
var ErrSubmissionNotPending = errors.New("submission is not pending")

type SubmissionFilter struct {
	UserID string
	TaskID string
	Status []entity.SubmissionStatus

	// NewestFirst orders by submission time descending instead of ascending.
	NewestFirst bool
}

type SubmissionRepository interface {
	Create(ctx context.Context, data *entity.Submission) error
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	GetLastByStatus(ctx context.Context, userID, taskID string, status entity.SubmissionStatus) (*entity.Submission, error)
	GetList(ctx context.Context, filter *SubmissionFilter, offset, limit int) ([]entity.Submission, error)
	UpdateReviewByID(ctx context.Context, id string, data *entity.Submission) error
}

type submissionRepository struct{}

func NewSubmissionRepository() SubmissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, data *entity.Submission) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	var result entity.Submission
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *submissionRepository) GetLastByStatus(
	ctx context.Context, userID, taskID string, status entity.SubmissionStatus,
) (*entity.Submission, error) {
	var result entity.Submission
	if err := xcontext.DB(ctx).
		Where("user_id=? AND task_id=? AND status=?", userID, taskID, status).
		Order("submitted_at DESC").
		Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *submissionRepository) GetList(
	ctx context.Context, filter *SubmissionFilter, offset, limit int,
) ([]entity.Submission, error) {
	var result []entity.Submission
	tx := xcontext.DB(ctx).Model(&entity.Submission{})

	if filter.UserID != "" {
		tx.Where("user_id=?", filter.UserID)
	}

	if filter.TaskID != "" {
		tx.Where("task_id=?", filter.TaskID)
	}

	if len(filter.Status) > 0 {
		tx.Where("status IN (?)", filter.Status)
	}

	if filter.NewestFirst {
		tx.Order("submitted_at DESC")
	} else {
		tx.Order("submitted_at ASC")
	}

	if limit > 0 {
		tx.Offset(offset).Limit(limit)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateReviewByID moves a pending submission to the reviewed status in data.
// The status condition makes concurrent reviews of the same submission have
// exactly one winner; the losers get ErrSubmissionNotPending.
func (r *submissionRepository) UpdateReviewByID(ctx context.Context, id string, data *entity.Submission) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("id=? AND status=?", id, entity.SubmissionPending).
		Updates(map[string]any{
			"status":      data.Status,
			"qa_comment":  data.QAComment,
			"reviewer_id": data.ReviewerID,
			"reviewed_at": data.ReviewedAt,
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return ErrSubmissionNotPending
	}

	return nil
}
