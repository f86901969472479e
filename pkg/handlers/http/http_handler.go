package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Session
	CreateSessionHandler Handler
	GetSessionHandler    Handler
	SubmitAnswerHandler  Handler

	// Violation
	RecordViolationHandler     Handler
	ListViolationsHandler      Handler
	GetViolationSummaryHandler Handler

	// Environment
	ValidateEnvironmentHandler Handler
}
