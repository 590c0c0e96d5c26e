package main

import (
	"net/http"

	"github.com/questx-lab/taskreward/internal/entity"
	"github.com/questx-lab/taskreward/internal/middleware"
	"github.com/questx-lab/taskreward/internal/model"
	"github.com/questx-lab/taskreward/pkg/authenticator"
	"github.com/questx-lab/taskreward/pkg/router"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadSnowflake()
	s.loadLocker()
	s.loadPublisher()
	s.loadStorage()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()
	s.startPrometheus()

	cfg := xcontext.Configs(s.ctx)
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.ApiServer.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
	}).Handler(s.router.Handler())

	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: handler,
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	cfg := xcontext.Configs(s.ctx)
	s.router = router.New(xcontext.DB(s.ctx), cfg, xcontext.Logger(s.ctx))
	s.router.Before(middleware.WithStartTime())
	s.router.Before(middleware.WithSnowFlake(s.node))
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Public API.
	{
		router.GET(s.router, "/getListActiveTask", s.taskDomain.GetListActive)
		router.GET(s.router, "/getTask", s.taskDomain.Get)
	}

	// These following APIs need authentication with an access token.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier(authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration))
	authRouter.Before(authVerifier.Middleware())
	{
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)

		// Submission API
		router.POST(authRouter, "/createSubmission", s.submissionDomain.Create)
		router.GET(authRouter, "/getMySubmissions", s.submissionDomain.GetMy)
		router.GET(authRouter, "/getSubmission", s.submissionDomain.Get)
		router.POST(authRouter, "/uploadEvidence", s.evidenceDomain.Upload)

		// Point API
		router.GET(authRouter, "/getMyPointHistory", s.ledgerDomain.GetMyPointHistory)
		router.POST(authRouter, "/claimReward", s.claimDomain.ClaimReward)
	}

	reviewRouter := authRouter.Branch()
	reviewRouter.Before(middleware.NewRoleVerifier(s.userRepo, entity.ReviewRoles...).Middleware())
	{
		router.GET(reviewRouter, "/getPendingSubmissions", s.submissionDomain.GetPending)
		router.POST(reviewRouter, "/approveSubmission", s.reviewDomain.Approve)
		router.POST(reviewRouter, "/rejectSubmission", s.reviewDomain.Reject)
		router.GET(reviewRouter, "/getPointHistory", s.ledgerDomain.GetPointHistory)
	}

	adminRouter := authRouter.Branch()
	adminRouter.Before(middleware.NewRoleVerifier(s.userRepo, entity.AdminRoles...).Middleware())
	{
		router.GET(adminRouter, "/getListTask", s.taskDomain.GetList)
		router.POST(adminRouter, "/createTask", s.taskDomain.Create)
		router.POST(adminRouter, "/updateTask", s.taskDomain.Update)
	}
}
