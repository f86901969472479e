package http

import (
	appsession "github.com/CandidateX/sentinel/pkg/app/session"
	"github.com/CandidateX/sentinel/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type getSessionHandler struct {
	logger *logrus.Logger
	finder appsession.Finder
}

// NewGetSessionHandler @Summary Retrieve an interview session
// @Description Returns a session including its integrity state
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} interview.Session "Session details"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /api/v1/sessions/{session_id} [get]
func NewGetSessionHandler(logger *logrus.Logger, finder appsession.Finder) Handler {
	return &getSessionHandler{
		logger: logger,
		finder: finder,
	}
}

func (s *getSessionHandler) Handle(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session ID"})
	}

	session, err := s.finder.Find(c.Context(), sessionID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
		}
		s.logger.WithError(err).Error("failed to get interview session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get session"})
	}

	return c.Status(fiber.StatusOK).JSON(session)
}
