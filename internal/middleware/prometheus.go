package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/router"
	"github.com/questx-lab/taskreward/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

func WithSnowFlake(node *snowflake.Node) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithSnowFlake(ctx, node), nil
	}
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		code := 0
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				code = int(errx.Code)
			} else {
				code = -1
			}
		}

		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(req.Method, req.URL.Path, fmt.Sprint(code)).Inc()

		if startTime := xcontext.StartTime(ctx); !startTime.IsZero() {
			common.PromHistograms[common.HTTPRequestDurationSeconds].
				WithLabelValues(req.Method, req.URL.Path).Observe(time.Since(startTime).Seconds())
		}
	}
}
