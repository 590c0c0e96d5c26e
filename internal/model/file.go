package model

type UploadEvidenceRequest struct{}

type UploadEvidenceResponse struct {
	Url string `json:"url"`
}
