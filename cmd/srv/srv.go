package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/questx-lab/taskreward/config"
	"github.com/questx-lab/taskreward/internal/common"
	"github.com/questx-lab/taskreward/internal/domain"
	"github.com/questx-lab/taskreward/internal/repository"
	"github.com/questx-lab/taskreward/pkg/kafka"
	"github.com/questx-lab/taskreward/pkg/logger"
	"github.com/questx-lab/taskreward/pkg/prometheus"
	"github.com/questx-lab/taskreward/pkg/pubsub"
	"github.com/questx-lab/taskreward/pkg/router"
	"github.com/questx-lab/taskreward/pkg/storage"
	"github.com/questx-lab/taskreward/pkg/xcontext"
	"github.com/questx-lab/taskreward/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo       repository.UserRepository
	taskRepo       repository.TaskRepository
	submissionRepo repository.SubmissionRepository
	pointEntryRepo repository.PointEntryRepository
	claimRepo      repository.ClaimRepository

	taskDomain       domain.TaskDomain
	submissionDomain domain.SubmissionDomain
	reviewDomain     domain.ReviewDomain
	ledgerDomain     domain.LedgerDomain
	claimDomain      domain.ClaimDomain
	userDomain       domain.UserDomain
	evidenceDomain   domain.EvidenceDomain

	redisClient xredis.Client
	locker      common.Locker
	publisher   pubsub.Publisher
	storage     storage.Storage
	node        *snowflake.Node

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(cfg.LogLevel)))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.ConnectionString(), // data source name
		DefaultStringSize:         256,                    // default size for string fields
		DisableDatetimePrecision:  true,                   // disable datetime precision, which not supported before MySQL 5.6
		DontSupportRenameIndex:    true,                   // drop & create when rename index, rename index not supported before MySQL 5.7, MariaDB
		DontSupportRenameColumn:   true,                   // `change` when rename column, rename column not supported before MySQL 8, MariaDB
		SkipInitializeWithVersion: false,                  // auto configure based on currently MySQL version
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(parseGormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func parseGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Error
	}
}

func (s *srv) loadSnowflake() {
	var err error
	s.node, err = snowflake.NewNode(xcontext.Configs(s.ctx).Reward.SnowflakeNode)
	if err != nil {
		panic(err)
	}
}

// loadLocker uses redis when it is configured so that every api replica
// shares the same locks. A single replica works with in-process locks.
func (s *srv) loadLocker() {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Redis.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("Redis is not configured, locks are local to this process")
		s.locker = common.NewLocalLocker()
		return
	}

	var err error
	s.redisClient, err = xredis.NewClient(s.ctx, cfg.Redis.Addr)
	if err != nil {
		panic(err)
	}

	s.locker = common.NewRedisLocker(s.redisClient, cfg.Reward.LockTTL)
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Kafka.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("Kafka is not configured, events are dropped")
		s.publisher = pubsub.NopPublisher{}
		return
	}

	publisher, err := kafka.NewPublisher(cfg.Kafka.ClientID, []string{cfg.Kafka.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) loadStorage() {
	var err error
	s.storage, err = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.taskRepo = repository.NewTaskRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
	s.pointEntryRepo = repository.NewPointEntryRepository()
	s.claimRepo = repository.NewClaimRepository()
}

func (s *srv) loadDomains() {
	s.taskDomain = domain.NewTaskDomain(s.taskRepo, s.userRepo)
	s.submissionDomain = domain.NewSubmissionDomain(
		s.submissionRepo, s.taskRepo, s.userRepo, s.locker, s.publisher)
	s.ledgerDomain = domain.NewLedgerDomain(s.userRepo, s.pointEntryRepo, s.claimRepo)
	s.reviewDomain = domain.NewReviewDomain(s.submissionRepo, s.userRepo, s.ledgerDomain, s.publisher)
	s.claimDomain = domain.NewClaimDomain(s.userRepo, s.claimRepo, s.pointEntryRepo, s.locker, s.publisher)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.evidenceDomain = domain.NewEvidenceDomain(s.storage)
}

func (s *srv) startPrometheus() {
	cfg := xcontext.Configs(s.ctx).PrometheusServer
	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.NewHandler(common.PromCollectors()...))

	go func() {
		xcontext.Logger(s.ctx).Infof("Starting prometheus on port: %s", cfg.Port)
		if err := http.ListenAndServe(cfg.Address(), mux); err != nil {
			log.Printf("prometheus server stopped: %v", err)
		}
	}()
}
