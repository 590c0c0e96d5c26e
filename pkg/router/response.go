package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func handleResponse() CloserFunc {
	return func(ctx context.Context) {
		w := xcontext.HTTPWriter(ctx)
		w.Header().Set("Content-Type", "application/json")

		err := func() error {
			if err := xcontext.Error(ctx); err != nil {
				return err
			}

			if err := WriteJson(w, newResponse(xcontext.GetResponse(ctx))); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
				return errorx.New(errorx.BadResponse, "Cannot write the response")
			}

			return nil
		}()

		if err != nil {
			if err := WriteJson(w, newErrorResponse(err)); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
			}
		}
	}
}

func WriteJson(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
