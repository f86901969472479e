package session

import (
	"context"
	"fmt"

	"github.com/CandidateX/sentinel/pkg/cache"
	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Creator --dir=. --output=../../../mocks --filename=session_creator_mock.go --case=underscore --with-expecter
type Creator interface {
	Create(ctx context.Context, userID string) (*interview.Session, error)
}

type creator struct {
	repo   interview.Repository
	cache  *cache.Cache
	logger *logrus.Logger
}

func NewCreator(repo interview.Repository, c *cache.Cache, logger *logrus.Logger) Creator {
	return &creator{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

func (c *creator) Create(ctx context.Context, userID string) (*interview.Session, error) {
	session := interview.NewSession(uuid.New(), userID)
	if err := session.Validate(); err != nil {
		return nil, err
	}

	if err := c.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save interview session: %w", err)
	}

	if err := c.cache.SaveSession(ctx, session); err != nil {
		c.logger.WithError(err).Warn("failed to cache interview session")
	}

	c.logger.WithFields(logrus.Fields{
		"sessionID": session.ID,
		"userID":    session.UserID,
	}).Info("interview session created")

	return session, nil
}
