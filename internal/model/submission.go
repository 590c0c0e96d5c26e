package model

type Evidence struct {
	Image string `json:"image"`
	Text  string `json:"text"`
	Link  string `json:"link"`
}

type Submission struct {
	ID          string   `json:"id"`
	TaskID      string   `json:"task_id"`
	UserID      string   `json:"user_id"`
	UserName    string   `json:"user_name"`
	TaskTitle   string   `json:"task_title"`
	Points      int64    `json:"points"`
	Evidence    Evidence `json:"evidence"`
	Status      string   `json:"status"`
	QAComment   string   `json:"qa_comment"`
	ReviewerID  string   `json:"reviewer_id,omitempty"`
	SubmittedAt string   `json:"submitted_at"`
	ReviewedAt  string   `json:"reviewed_at,omitempty"`
}

type CreateSubmissionRequest struct {
	TaskID   string    `json:"task_id"`
	Evidence *Evidence `json:"evidence"`
}

type CreateSubmissionResponse Submission

type GetSubmissionRequest struct {
	ID string `json:"id"`
}

type GetSubmissionResponse Submission

type GetMySubmissionsRequest struct {
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetMySubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}

type GetPendingSubmissionsRequest struct {
	TaskID string `json:"task_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetPendingSubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}

type ApproveSubmissionRequest struct {
	ID      string `json:"id"`
	Comment string `json:"comment"`
}

type ApproveSubmissionResponse Submission

type RejectSubmissionRequest struct {
	ID      string `json:"id"`
	Comment string `json:"comment"`
}

type RejectSubmissionResponse Submission
