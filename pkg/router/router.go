package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/taskreward/config"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/logger"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc may return a new context to pass to the next step. Returning
// a nil context keeps the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, even if the request failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux     *http.ServeMux
	cfg     config.Configs
	logger  logger.Logger
	db      *gorm.DB
	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers *[]CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		cfg:     cfg,
		logger:  logger,
		db:      db,
		closers: &[]CloserFunc{handleResponse()},
	}
}

// Branch returns a router sharing the same mux. Middlewares added to the
// branch do not affect its parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc(nil), r.befores...)
	clone.afters = append([]MiddlewareFunc(nil), r.afters...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

// AddCloser registers a closer for every route of the router and its
// branches. The response writer always runs last.
func (r *Router) AddCloser(closer CloserFunc) {
	n := len(*r.closers)
	*r.closers = append((*r.closers)[:n-1:n-1], closer, (*r.closers)[n-1])
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func route[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := r.befores
	afters := r.afters
	closers := r.closers

	r.mux.HandleFunc(method+" "+pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		defer func() {
			for _, closer := range *closers {
				closer(ctx)
			}
		}()

		var err error
		for _, before := range befores {
			if ctx, err = runMiddleware(ctx, before); err != nil {
				ctx = xcontext.WithError(ctx, err)
				return
			}
		}

		var request Request
		if err := parseRequest(req, &request); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request format"))
			return
		}

		resp, err := handler(ctx, &request)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}

		ctx = xcontext.WithResponse(ctx, resp)
		for _, after := range afters {
			if ctx, err = runMiddleware(ctx, after); err != nil {
				ctx = xcontext.WithError(ctx, err)
				return
			}
		}
	})
}

func runMiddleware(ctx context.Context, middleware MiddlewareFunc) (context.Context, error) {
	newCtx, err := middleware(ctx)
	if err != nil {
		return ctx, err
	}

	if newCtx == nil {
		return ctx, nil
	}

	return newCtx, nil
}

func parseRequest(req *http.Request, v any) error {
	switch req.Method {
	case http.MethodGet:
		return decodeQuery(req, v)

	case http.MethodPost:
		if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
			// Multipart bodies are read by the handler itself.
			return nil
		}

		if req.ContentLength == 0 {
			return nil
		}

		return json.NewDecoder(req.Body).Decode(v)
	}

	return errors.New("unsupported method")
}

func decodeQuery(req *http.Request, v any) error {
	query := map[string]any{}
	for key, values := range req.URL.Query() {
		if len(values) == 1 {
			query[key] = values[0]
		} else {
			query[key] = values
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(query)
}
