package middleware

import (
	"fmt"
	"time"

	"github.com/CandidateX/sentinel/pkg/common"
	"github.com/CandidateX/sentinel/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{
		logger: logger,
	}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		c.Locals(common.LatencyContextKey, startTime)

		err := c.Next()

		elapsed := time.Since(startTime)
		method := c.Method()
		statusCode := c.Response().StatusCode()

		prometheus.RequestTotal.WithLabelValues(
			method,
			m.getStatusClass(statusCode),
		).Inc()

		if prometheus.Config.EnableLatency {
			prometheus.RequestLatency.WithLabelValues(
				method,
				c.Route().Path,
			).Observe(float64(elapsed.Milliseconds()))
		}

		return err
	}
}

func (m *metricsMiddleware) getStatusClass(status int) string {
	if status < 100 || status > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", status/100)
}
