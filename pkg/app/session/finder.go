package session

import (
	"context"
	"fmt"

	"github.com/CandidateX/sentinel/pkg/cache"
	"github.com/CandidateX/sentinel/pkg/common"
	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Finder --dir=. --output=../../../mocks --filename=session_finder_mock.go --case=underscore --with-expecter
type Finder interface {
	Find(ctx context.Context, id uuid.UUID) (*interview.Session, error)
}

type finder struct {
	repo        interview.Repository
	cache       *cache.Cache
	memoryCache *common.TTLMap
	logger      *logrus.Logger
}

func NewFinder(repo interview.Repository, c *cache.Cache, logger *logrus.Logger) Finder {
	memoryCache := c.GetTTLMap(cache.SessionTTLName)
	if memoryCache == nil {
		memoryCache = c.CreateTTLMap(cache.SessionTTLName, common.SessionCacheTTL)
	}
	return &finder{
		repo:        repo,
		cache:       c,
		memoryCache: memoryCache,
		logger:      logger,
	}
}

// Find resolves a session through the in-process map first, then Redis, then
// the database. Escalations rewrite both cache layers, so a hit is as fresh
// as the last state change.
func (f *finder) Find(ctx context.Context, id uuid.UUID) (*interview.Session, error) {
	if cached, ok := f.memoryCache.Get(id.String()); ok {
		session, err := f.sessionFromMemory(cached)
		if err != nil {
			f.logger.WithError(err).Error("failed to get session from memory cache")
		} else {
			return session, nil
		}
	}

	if session, err := f.cache.GetSession(ctx, id); err == nil {
		f.memoryCache.Set(id.String(), session)
		return session, nil
	}

	session, err := f.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := f.cache.SaveSession(ctx, session); err != nil {
		f.logger.WithError(err).Warn("failed to cache interview session")
	}
	f.memoryCache.Set(id.String(), session)

	return session, nil
}

func (f *finder) sessionFromMemory(value interface{}) (*interview.Session, error) {
	session, ok := value.(*interview.Session)
	if !ok {
		return nil, fmt.Errorf("invalid type assertion for session data")
	}
	return session, nil
}
