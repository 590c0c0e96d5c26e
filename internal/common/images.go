package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/storage"
	"github.com/questx-lab/taskreward/pkg/xcontext"
)

// ProcessEvidenceImage reads the image in the multipart form field key,
// shrinks it to fit the configured maximum dimension and uploads it.
func ProcessEvidenceImage(
	ctx context.Context, fileStorage storage.Storage, key string,
) (*storage.UploadResponse, error) {
	cfg := xcontext.Configs(ctx)
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	if err := req.ParseMultipartForm(cfg.File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Error retrieving the file")
	}
	defer file.Close()

	if header.Size > cfg.File.MaxSize {
		return nil, errorx.New(errorx.BadRequest, "File too large")
	}

	mime := header.Header.Get("Content-Type")
	img, err := decodeImg(mime, file)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode image: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid image")
	}

	dim := uint(cfg.File.MaxEvidenceDim)
	img = resize.Thumbnail(dim, dim, img, resize.Lanczos2)

	b, err := encodeImg(mime, img)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
		return nil, errorx.Unknown
	}

	resp, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Bucket:   cfg.Storage.Bucket,
		Prefix:   "evidences",
		FileName: header.Filename,
		Mime:     mime,
		Data:     b,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return resp, nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png", "application/octet-stream":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("we just accept jpeg, gif or png")
	}
	return img, err
}

func encodeImg(mime string, img image.Image) (b []byte, err error) {
	buf := new(bytes.Buffer)

	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png", "application/octet-stream":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("we just accept jpeg, gif or png")
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), err
}
