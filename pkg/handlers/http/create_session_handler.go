package http

import (
	appsession "github.com/CandidateX/sentinel/pkg/app/session"
	"github.com/CandidateX/sentinel/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createSessionHandler struct {
	logger  *logrus.Logger
	creator appsession.Creator
}

// NewCreateSessionHandler @Summary Create an interview session
// @Description Starts a proctored interview session for a candidate
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session body request.CreateSessionRequest true "Session request body"
// @Success 201 {object} interview.Session "Session created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/sessions [post]
func NewCreateSessionHandler(logger *logrus.Logger, creator appsession.Creator) Handler {
	return &createSessionHandler{
		logger:  logger,
		creator: creator,
	}
}

func (s *createSessionHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := s.creator.Create(c.Context(), req.UserID)
	if err != nil {
		s.logger.WithError(err).Error("failed to create interview session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create session"})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}
