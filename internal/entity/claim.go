package entity

import (
	"time"

	"github.com/questx-lab/taskreward/pkg/enum"
)

type ClaimStatus string

var (
	ClaimCompleted = enum.New(ClaimStatus("completed"))
)

// ClaimCost is the fixed number of points exchanged by one reward claim.
const ClaimCost int64 = 100

type Claim struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Points    int64
	ClaimedAt time.Time
	Status    ClaimStatus
}
