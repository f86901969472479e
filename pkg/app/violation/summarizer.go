package violation

import (
	"context"
	"fmt"

	"github.com/CandidateX/sentinel/pkg/domain"
	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/CandidateX/sentinel/pkg/domain/violation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Summary aggregates a session's violation history. Reading it never mutates
// anything, so calling it repeatedly returns the same result for the same
// event log.
type Summary struct {
	TotalViolations  int               `json:"total_violations"`
	ByType           map[string]int    `json:"by_type"`
	BySeverity       map[string]int    `json:"by_severity"`
	CriticalEvents   []violation.Event `json:"critical_events"`
	FlaggedForReview bool              `json:"flagged_for_review"`
}

//go:generate mockery --name=Summarizer --dir=. --output=../../../mocks --filename=violation_summarizer_mock.go --case=underscore --with-expecter
type Summarizer interface {
	Summarize(ctx context.Context, sessionID uuid.UUID) (*Summary, error)
}

type summarizer struct {
	sessionRepo interview.Repository
	eventRepo   violation.Repository
	logger      *logrus.Logger
}

func NewSummarizer(
	sessionRepo interview.Repository,
	eventRepo violation.Repository,
	logger *logrus.Logger,
) Summarizer {
	return &summarizer{
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		logger:      logger,
	}
}

// Summarize returns the aggregated violation view for a session. A session
// with no recorded events (including an unknown session) yields the empty
// summary rather than an error.
func (s *summarizer) Summarize(ctx context.Context, sessionID uuid.UUID) (*Summary, error) {
	summary := &Summary{
		ByType:         make(map[string]int),
		BySeverity:     make(map[string]int),
		CriticalEvents: make([]violation.Event, 0),
	}

	events, err := s.eventRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list violation events: %w", err)
	}

	for _, event := range events {
		summary.TotalViolations++
		summary.ByType[string(event.ViolationType)]++
		summary.BySeverity[string(event.Severity)]++
		if event.Severity == violation.SeverityCritical {
			summary.CriticalEvents = append(summary.CriticalEvents, event)
		}
	}

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return summary, nil
		}
		return nil, err
	}
	summary.FlaggedForReview = session.FlaggedForReview

	return summary, nil
}
