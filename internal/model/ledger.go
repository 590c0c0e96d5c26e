package model

type PointEntry struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	SubmissionID string `json:"submission_id,omitempty"`
	ClaimID      string `json:"claim_id,omitempty"`
	Points       int64  `json:"points"`
	Type         string `json:"type"`
	CreatedAt    string `json:"created_at"`
}

type Claim struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Points    int64  `json:"points"`
	Status    string `json:"status"`
	ClaimedAt string `json:"claimed_at"`
}

type PointHistory struct {
	Entries []PointEntry `json:"entries"`
	Claims  []Claim      `json:"claims"`
}

type GetMyPointHistoryRequest struct{}

type GetMyPointHistoryResponse PointHistory

type GetPointHistoryRequest struct {
	UserID string `json:"user_id"`
}

type GetPointHistoryResponse PointHistory

type ClaimRewardRequest struct{}

type ClaimRewardResponse struct {
	Claim            Claim `json:"claim"`
	RemainingBalance int64 `json:"remaining_balance"`
}
