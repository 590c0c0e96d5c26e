package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/pkg/authenticator"
	"github.com/questx-lab/taskreward/pkg/errorx"
	"github.com/questx-lab/taskreward/pkg/router"
	"github.com/questx-lab/taskreward/pkg/xcontext"
)

type AuthVerifier struct {
	accessTokenEngine authenticator.TokenEngine[model.AccessToken]
}

func NewAuthVerifier(engine authenticator.TokenEngine[model.AccessToken]) *AuthVerifier {
	return &AuthVerifier{accessTokenEngine: engine}
}

// Middleware stores the user id of a valid access token into the context.
// The token is read from the Authorization header, then from the cookie.
func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx, xcontext.HTTPRequest(ctx))
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		info, err := a.accessTokenEngine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired access token")
		}

		if info.ID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func getAccessToken(ctx context.Context, req *http.Request) string {
	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}
		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
