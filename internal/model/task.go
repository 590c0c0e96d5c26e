package model

type Task struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Type            string `json:"type"`
	Description     string `json:"description"`
	Instructions    string `json:"instructions"`
	Points          int64  `json:"points"`
	Active          bool   `json:"active"`
	EvidenceType    string `json:"evidence_type"`
	CompletedAmount int    `json:"completed_amount"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

type CreateTaskRequest struct {
	Title           string `json:"title" validate:"required,max=256"`
	Type            string `json:"type" validate:"required"`
	Description     string `json:"description" validate:"required"`
	Instructions    string `json:"instructions"`
	Points          int64  `json:"points" validate:"gt=0"`
	Active          *bool  `json:"active"`
	EvidenceType    string `json:"evidence_type"`
	CompletedAmount int    `json:"completed_amount" validate:"gte=0"`
}

type CreateTaskResponse Task

type GetTaskRequest struct {
	ID string `json:"id"`
}

type GetTaskResponse Task

type GetListTaskRequest struct{}

type GetListTaskResponse struct {
	Tasks []Task `json:"tasks"`
}

type GetListActiveTaskRequest struct{}

type GetListActiveTaskResponse struct {
	Tasks []Task `json:"tasks"`
}

// UpdateTaskRequest only changes the fields which are present.
type UpdateTaskRequest struct {
	ID              string  `json:"id"`
	Title           *string `json:"title"`
	Type            *string `json:"type"`
	Description     *string `json:"description"`
	Instructions    *string `json:"instructions"`
	Points          *int64  `json:"points"`
	Active          *bool   `json:"active"`
	EvidenceType    *string `json:"evidence_type"`
	CompletedAmount *int    `json:"completed_amount"`
}

type UpdateTaskResponse Task
