package http

import (
	"errors"

	appsession "github.com/CandidateX/sentinel/pkg/app/session"
	"github.com/CandidateX/sentinel/pkg/domain"
	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/CandidateX/sentinel/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type submitAnswerHandler struct {
	logger *logrus.Logger
	gate   appsession.SubmissionGate
}

// NewSubmitAnswerHandler @Summary Submit an interview answer
// @Description Accepts an answer unless the session has been terminated
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param answer body request.SubmitAnswerRequest true "Answer submission"
// @Success 202 {object} map[string]interface{} "Answer accepted"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Failure 409 {object} map[string]interface{} "Session terminated"
// @Router /api/v1/sessions/{session_id}/answers [post]
func NewSubmitAnswerHandler(logger *logrus.Logger, gate appsession.SubmissionGate) Handler {
	return &submitAnswerHandler{
		logger: logger,
		gate:   gate,
	}
}

func (s *submitAnswerHandler) Handle(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session ID"})
	}

	var req request.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.gate.Allow(c.Context(), sessionID); err != nil {
		if errors.Is(err, interview.ErrSessionTerminated) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "session is terminated, submissions are no longer accepted",
			})
		}
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		}
		s.logger.WithError(err).Error("failed to check submission gate")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to submit answer"})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"accepted":    true,
		"question_id": req.QuestionID,
	})
}
