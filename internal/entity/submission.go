package entity

import (
	"database/sql"
	"time"

	"github.com/questx-lab/taskreward/pkg/enum"
)

type SubmissionStatus string

var (
	SubmissionPending  = enum.New(SubmissionStatus("pending"))
	SubmissionApproved = enum.New(SubmissionStatus("approved"))
	SubmissionRejected = enum.New(SubmissionStatus("rejected"))
)

type Submission struct {
	Base

	TaskID string `gorm:"index:idx_submissions_user_task"`
	UserID string `gorm:"index:idx_submissions_user_task"`
	User   User   `gorm:"foreignKey:UserID"`

	// UserName, TaskTitle and Points are snapshots taken at submission time.
	UserName  string
	TaskTitle string
	Points    int64

	EvidenceImage string
	EvidenceText  string `gorm:"type:text"`
	EvidenceLink  string

	Status      SubmissionStatus `gorm:"index"`
	QAComment   string           `gorm:"type:text"`
	ReviewerID  string
	SubmittedAt time.Time
	ReviewedAt  sql.NullTime
}
