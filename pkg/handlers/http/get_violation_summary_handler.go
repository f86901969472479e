package http

import (
	appviolation "github.com/CandidateX/sentinel/pkg/app/violation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type getViolationSummaryHandler struct {
	logger     *logrus.Logger
	summarizer appviolation.Summarizer
}

// NewGetViolationSummaryHandler @Summary Summarize a session's violations
// @Description Aggregates the event log by type and severity
// @Tags Violations
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} violation.Summary "Violation summary"
// @Router /api/v1/sessions/{session_id}/violations/summary [get]
func NewGetViolationSummaryHandler(logger *logrus.Logger, summarizer appviolation.Summarizer) Handler {
	return &getViolationSummaryHandler{
		logger:     logger,
		summarizer: summarizer,
	}
}

func (s *getViolationSummaryHandler) Handle(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session ID"})
	}

	summary, err := s.summarizer.Summarize(c.Context(), sessionID)
	if err != nil {
		s.logger.WithError(err).Error("failed to summarize violations")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to summarize violations"})
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
