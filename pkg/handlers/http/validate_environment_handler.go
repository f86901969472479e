package http

import (
	"github.com/CandidateX/sentinel/pkg/app/environment"
	"github.com/CandidateX/sentinel/pkg/handlers/http/request"
	"github.com/CandidateX/sentinel/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type validateEnvironmentHandler struct {
	logger    *logrus.Logger
	validator environment.Validator
}

// NewValidateEnvironmentHandler @Summary Validate the candidate's environment
// @Description Classifies client-side probe results into blockers and warnings
// @Tags Environment
// @Accept json
// @Produce json
// @Param checks body request.ValidateEnvironmentRequest true "Environment checks"
// @Success 200 {object} environment.Result "Validation result"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/v1/environment/validate [post]
func NewValidateEnvironmentHandler(logger *logrus.Logger, validator environment.Validator) Handler {
	return &validateEnvironmentHandler{
		logger:    logger,
		validator: validator,
	}
}

func (s *validateEnvironmentHandler) Handle(c *fiber.Ctx) error {
	var req request.ValidateEnvironmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	checks, err := req.Decode()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := s.validator.Validate(checks)

	outcome := "valid"
	if !result.Valid {
		outcome = "invalid"
	}
	prometheus.EnvironmentValidationsTotal.WithLabelValues(outcome).Inc()

	return c.Status(fiber.StatusOK).JSON(result)
}
