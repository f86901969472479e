package http

import (
	"github.com/CandidateX/sentinel/pkg/domain/violation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type listViolationsHandler struct {
	logger *logrus.Logger
	repo   violation.Repository
}

// NewListViolationsHandler @Summary List violation events
// @Description Returns a session's violation events in chronological order
// @Tags Violations
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {array} violation.Event "Violation events"
// @Router /api/v1/sessions/{session_id}/violations [get]
func NewListViolationsHandler(logger *logrus.Logger, repo violation.Repository) Handler {
	return &listViolationsHandler{
		logger: logger,
		repo:   repo,
	}
}

func (s *listViolationsHandler) Handle(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session ID"})
	}

	events, err := s.repo.ListBySession(c.Context(), sessionID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list violation events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list violations"})
	}
	if events == nil {
		events = make([]violation.Event, 0)
	}

	return c.Status(fiber.StatusOK).JSON(events)
}
