package model

var (
	SubmissionTopic = "SUBMISSION"
	ClaimTopic      = "CLAIM"
)

// SubmissionEvent is published after a submission is created or reviewed.
type SubmissionEvent struct {
	Action     string     `json:"action"`
	Submission Submission `json:"submission"`
}

type ClaimEvent struct {
	Claim            Claim `json:"claim"`
	RemainingBalance int64 `json:"remaining_balance"`
}
