package server

import (
	"fmt"

	"github.com/CandidateX/sentinel/pkg/config"
	handlers "github.com/CandidateX/sentinel/pkg/handlers/http"
	"github.com/CandidateX/sentinel/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	MonitorServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	MonitorServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewMonitorServer(di MonitorServerDI) *MonitorServer {
	return &MonitorServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *MonitorServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting monitor server")
	return s.Router.Listen(addr)
}

func (s *MonitorServer) setupRoutes() {
	if s.Config.Metrics.Enabled {
		s.Router.Use(s.middlewareTransport.MetricsMiddleware.Middleware())
	}

	baseRouter := s.Router.Group("")
	s.addRoutes(baseRouter)
}

func (s *MonitorServer) addRoutes(router fiber.Router) {
	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.Post("", s.handlerTransport.CreateSessionHandler.Handle)
			sessions.Get("/:session_id", s.handlerTransport.GetSessionHandler.Handle)
			sessions.Post("/:session_id/answers", s.handlerTransport.SubmitAnswerHandler.Handle)

			violations := sessions.Group("/:session_id/violations")
			{
				violations.Post("", s.handlerTransport.RecordViolationHandler.Handle)

				// The review endpoints are for interviewers, not candidates;
				// they require an admin token when a secret key is configured.
				if s.Config.Server.SecretKey != "" {
					auth := s.middlewareTransport.AdminAuthMiddleware.Middleware()
					violations.Get("", auth, s.handlerTransport.ListViolationsHandler.Handle)
					violations.Get("/summary", auth, s.handlerTransport.GetViolationSummaryHandler.Handle)
				} else {
					violations.Get("", s.handlerTransport.ListViolationsHandler.Handle)
					violations.Get("/summary", s.handlerTransport.GetViolationSummaryHandler.Handle)
				}
			}
		}

		v1.Post("/environment/validate", s.handlerTransport.ValidateEnvironmentHandler.Handle)
	}
}

func (s *MonitorServer) Shutdown() error {
	return s.Router.Shutdown()
}
