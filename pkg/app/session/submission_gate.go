package session

import (
	"context"

	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=SubmissionGate --dir=. --output=../../../mocks --filename=submission_gate_mock.go --case=underscore --with-expecter
type SubmissionGate interface {
	Allow(ctx context.Context, sessionID uuid.UUID) error
}

type submissionGate struct {
	finder Finder
	logger *logrus.Logger
}

func NewSubmissionGate(finder Finder, logger *logrus.Logger) SubmissionGate {
	return &submissionGate{
		finder: finder,
		logger: logger,
	}
}

// Allow reports whether the session still accepts answer submissions. Once a
// session is terminated every further submission is refused.
func (g *submissionGate) Allow(ctx context.Context, sessionID uuid.UUID) error {
	session, err := g.finder.Find(ctx, sessionID)
	if err != nil {
		return err
	}

	if !session.AcceptsSubmissions() {
		g.logger.WithFields(logrus.Fields{
			"sessionID": sessionID,
		}).Warn("submission rejected for terminated session")
		return interview.ErrSessionTerminated
	}

	return nil
}
