package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	appenvironment "github.com/CandidateX/sentinel/pkg/app/environment"
	appsession "github.com/CandidateX/sentinel/pkg/app/session"
	appviolation "github.com/CandidateX/sentinel/pkg/app/violation"
	"github.com/CandidateX/sentinel/pkg/cache"
	"github.com/CandidateX/sentinel/pkg/common"
	"github.com/CandidateX/sentinel/pkg/config"
	"github.com/CandidateX/sentinel/pkg/domain/violation"
	handlers "github.com/CandidateX/sentinel/pkg/handlers/http"
	"github.com/CandidateX/sentinel/pkg/infra/database"
	"github.com/CandidateX/sentinel/pkg/infra/jwt"
	infraLogger "github.com/CandidateX/sentinel/pkg/infra/logger"
	"github.com/CandidateX/sentinel/pkg/infra/proctoring"
	"github.com/CandidateX/sentinel/pkg/infra/prometheus"
	"github.com/CandidateX/sentinel/pkg/infra/repository"
	"github.com/CandidateX/sentinel/pkg/middleware"
	"github.com/CandidateX/sentinel/pkg/server"
	"github.com/CandidateX/sentinel/pkg/version"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()
	logger.WithField("version", version.Version).Info("starting sentinel")

	cfg, err := config.Load("./config")
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheInstance, err := cache.NewCache(common.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	})
	if err != nil {
		logger.Fatalf("failed to initialize cache: %v", err)
	}
	cacheInstance.CreateTTLMap(cache.SessionTTLName, common.SessionCacheTTL)

	policy, err := violation.NewPolicy(cfg.Monitor.Thresholds, cfg.Monitor.Severities)
	if err != nil {
		logger.Fatalf("invalid escalation policy configuration: %v", err)
	}

	prometheus.Initialize(prometheus.MetricsConfig{
		EnableLatency: cfg.Metrics.EnableLatency,
	})

	// repository
	sessionRepository := repository.NewInterviewSessionRepository(db.DB)
	eventRepository := repository.NewViolationEventRepository(db.DB)

	// infra
	violationCounter := proctoring.NewViolationCounter(cacheInstance.Client())
	jwtManager := jwt.NewJwtManager(&cfg.Server)

	// service
	sessionCreator := appsession.NewCreator(sessionRepository, cacheInstance, logger)
	sessionFinder := appsession.NewFinder(sessionRepository, cacheInstance, logger)
	submissionGate := appsession.NewSubmissionGate(sessionFinder, logger)
	recorder := appviolation.NewRecorder(
		sessionRepository,
		eventRepository,
		violationCounter,
		policy,
		cacheInstance,
		cfg.Monitor.CounterWindow,
		logger,
	)
	summarizer := appviolation.NewSummarizer(sessionRepository, eventRepository, logger)
	environmentValidator := appenvironment.NewValidator()

	// middleware
	middlewareTransport := middleware.Transport{
		AdminAuthMiddleware: middleware.NewAdminAuthMiddleware(logger, jwtManager),
		MetricsMiddleware:   middleware.NewMetricsMiddleware(logger),
	}

	// Handler Transport
	handlerTransport := handlers.HandlerTransport{
		CreateSessionHandler:       handlers.NewCreateSessionHandler(logger, sessionCreator),
		GetSessionHandler:          handlers.NewGetSessionHandler(logger, sessionFinder),
		SubmitAnswerHandler:        handlers.NewSubmitAnswerHandler(logger, submissionGate),
		RecordViolationHandler:     handlers.NewRecordViolationHandler(logger, recorder),
		ListViolationsHandler:      handlers.NewListViolationsHandler(logger, eventRepository),
		GetViolationSummaryHandler: handlers.NewGetViolationSummaryHandler(logger, summarizer),
		ValidateEnvironmentHandler: handlers.NewValidateEnvironmentHandler(logger, environmentValidator),
	}

	monitorServer := server.NewMonitorServer(server.MonitorServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := monitorServer.Run(); err != nil {
			logger.WithError(err).Fatal("monitor server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	if err := monitorServer.Shutdown(); err != nil {
		logger.WithError(err).Error("failed to shut down monitor server")
	}
}
