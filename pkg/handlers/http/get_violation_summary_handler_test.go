package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	appviolation "github.com/CandidateX/sentinel/pkg/app/violation"
	"github.com/CandidateX/sentinel/pkg/domain/violation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type summarizerMock struct {
	mock.Mock
}

func (m *summarizerMock) Summarize(ctx context.Context, sessionID uuid.UUID) (*appviolation.Summary, error) {
	args := m.Called(ctx, sessionID)
	if summary := args.Get(0); summary != nil {
		return summary.(*appviolation.Summary), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestGetViolationSummaryHandler_EmptySummaryShape(t *testing.T) {
	summarizer := new(summarizerMock)
	handler := NewGetViolationSummaryHandler(logrus.New(), summarizer)
	app := fiber.New()
	app.Get("/api/v1/sessions/:session_id/violations/summary", handler.Handle)

	sessionID := uuid.New()
	summarizer.On("Summarize", mock.Anything, sessionID).Return(&appviolation.Summary{
		ByType:         map[string]int{},
		BySeverity:     map[string]int{},
		CriticalEvents: []violation.Event{},
	}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/sessions/"+sessionID.String()+"/violations/summary", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(0), body["total_violations"])
	assert.Equal(t, map[string]interface{}{}, body["by_type"])
	assert.Equal(t, map[string]interface{}{}, body["by_severity"])
	assert.Equal(t, []interface{}{}, body["critical_events"])
	assert.Equal(t, false, body["flagged_for_review"])
}

func TestGetViolationSummaryHandler_InvalidSessionID(t *testing.T) {
	summarizer := new(summarizerMock)
	handler := NewGetViolationSummaryHandler(logrus.New(), summarizer)
	app := fiber.New()
	app.Get("/api/v1/sessions/:session_id/violations/summary", handler.Handle)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/sessions/nope/violations/summary", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}
