package http

import (
	"errors"

	appviolation "github.com/CandidateX/sentinel/pkg/app/violation"
	"github.com/CandidateX/sentinel/pkg/domain"
	"github.com/CandidateX/sentinel/pkg/domain/violation"
	"github.com/CandidateX/sentinel/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type recordViolationHandler struct {
	logger   *logrus.Logger
	recorder appviolation.Recorder
}

// NewRecordViolationHandler @Summary Record a proctoring violation
// @Description Appends a violation event and applies the escalation policy
// @Tags Violations
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param violation body request.RecordViolationRequest true "Violation report"
// @Success 201 {object} map[string]interface{} "Violation recorded"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/sessions/{session_id}/violations [post]
func NewRecordViolationHandler(logger *logrus.Logger, recorder appviolation.Recorder) Handler {
	return &recordViolationHandler{
		logger:   logger,
		recorder: recorder,
	}
}

func (s *recordViolationHandler) Handle(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session ID"})
	}

	var req request.RecordViolationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := s.recorder.Record(c.Context(), appviolation.RecordViolationCommand{
		SessionID:   sessionID,
		UserID:      req.UserID,
		Type:        req.ViolationType,
		Severity:    req.Severity,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		if isViolationValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		}
		s.logger.WithError(err).Error("failed to record violation")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record violation"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"event":           result.Event,
		"count":           result.Count,
		"threshold":       result.Threshold,
		"escalated":       result.Escalated,
		"integrity_state": result.Session.IntegrityState,
	})
}

func isViolationValidationError(err error) bool {
	return errors.Is(err, violation.ErrInvalidType) ||
		errors.Is(err, violation.ErrInvalidSeverity) ||
		errors.Is(err, violation.ErrInvalidMetadata) ||
		errors.Is(err, violation.ErrMissingUserID)
}
