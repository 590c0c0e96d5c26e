package domain

import (
	"context"

	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/pkg/storage"
)

type EvidenceDomain interface {
	Upload(context.Context, *model.UploadEvidenceRequest) (*model.UploadEvidenceResponse, error)
}

type evidenceDomain struct {
	storage storage.Storage
}

func NewEvidenceDomain(storage storage.Storage) *evidenceDomain {
	return &evidenceDomain{storage: storage}
}

// Upload stores the image of the "image" form field. The returned url is
// meant to be the image evidence of a later submission.
func (d *evidenceDomain) Upload(
	ctx context.Context, req *model.UploadEvidenceRequest,
) (*model.UploadEvidenceResponse, error) {
	resp, err := common.ProcessEvidenceImage(ctx, d.storage, "image")
	if err != nil {
		return nil, err
	}

	return &model.UploadEvidenceResponse{Url: resp.Url}, nil
}
