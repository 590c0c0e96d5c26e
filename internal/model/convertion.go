package model

import (
	"strconv"
	"time"

	"github.com/questx-lab/taskreward/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(DefaultTimeLayout)
}

func ConvertTask(task *entity.Task) Task {
	if task == nil {
		return Task{}
	}

	return Task{
		ID:              task.ID,
		Title:           task.Title,
		Type:            string(task.Type),
		Description:     task.Description,
		Instructions:    task.Instructions,
		Points:          task.Points,
		Active:          task.Active,
		EvidenceType:    string(task.EvidenceType),
		CompletedAmount: task.CompletedAmount,
		CreatedAt:       formatTime(task.CreatedAt),
		UpdatedAt:       formatTime(task.UpdatedAt),
	}
}

func ConvertSubmission(s *entity.Submission) Submission {
	if s == nil {
		return Submission{}
	}

	reviewedAt := ""
	if s.ReviewedAt.Valid {
		reviewedAt = formatTime(s.ReviewedAt.Time)
	}

	return Submission{
		ID:        s.ID,
		TaskID:    s.TaskID,
		UserID:    s.UserID,
		UserName:  s.UserName,
		TaskTitle: s.TaskTitle,
		Points:    s.Points,
		Evidence: Evidence{
			Image: s.EvidenceImage,
			Text:  s.EvidenceText,
			Link:  s.EvidenceLink,
		},
		Status:      string(s.Status),
		QAComment:   s.QAComment,
		ReviewerID:  s.ReviewerID,
		SubmittedAt: formatTime(s.SubmittedAt),
		ReviewedAt:  reviewedAt,
	}
}

func ConvertPointEntry(e *entity.PointEntry) PointEntry {
	if e == nil {
		return PointEntry{}
	}

	return PointEntry{
		ID:           strconv.FormatInt(e.ID, 10),
		UserID:       e.UserID,
		SubmissionID: e.SubmissionID.String,
		ClaimID:      e.ClaimID.String,
		Points:       e.Points,
		Type:         string(e.Type),
		CreatedAt:    formatTime(e.CreatedAt),
	}
}

func ConvertClaim(c *entity.Claim) Claim {
	if c == nil {
		return Claim{}
	}

	return Claim{
		ID:        c.ID,
		UserID:    c.UserID,
		Points:    c.Points,
		Status:    string(c.Status),
		ClaimedAt: formatTime(c.ClaimedAt),
	}
}

func ConvertUser(u *entity.User) User {
	if u == nil {
		return User{}
	}

	return User{
		ID:          u.ID,
		Name:        u.Name,
		Role:        string(u.Role),
		Status:      string(u.Status),
		Points:      u.Points,
		TotalEarned: u.TotalEarned,
	}
}
