package entity

import (
	"database/sql"

	"github.com/questx-lab/taskreward/pkg/enum"
)

type PointEntryType string

var (
	PointEarned  = enum.New(PointEntryType("earned"))
	PointClaimed = enum.New(PointEntryType("claimed"))
)

// PointEntry is an append-only ledger row. Points is a signed delta.
type PointEntry struct {
	SnowFlakeBase

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	SubmissionID sql.NullString `gorm:"uniqueIndex"`
	ClaimID      sql.NullString `gorm:"index"`
	Points       int64
	Type         PointEntryType
}
