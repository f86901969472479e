package session

import (
	"context"
	"testing"

	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubmissionGate_AllowsActiveSession(t *testing.T) {
	repo := new(sessionRepositoryMock)
	c, _ := newTestCache(t)
	gate := NewSubmissionGate(NewFinder(repo, c, logrus.New()), logrus.New())

	session := interview.NewSession(uuid.New(), "user-1")
	repo.On("Get", mock.Anything, session.ID).Return(session, nil)

	assert.NoError(t, gate.Allow(context.Background(), session.ID))
}

func TestSubmissionGate_AllowsSuspendedSession(t *testing.T) {
	repo := new(sessionRepositoryMock)
	c, _ := newTestCache(t)
	gate := NewSubmissionGate(NewFinder(repo, c, logrus.New()), logrus.New())

	session := interview.NewSession(uuid.New(), "user-1")
	session.IntegrityState = interview.StateSuspended
	repo.On("Get", mock.Anything, session.ID).Return(session, nil)

	assert.NoError(t, gate.Allow(context.Background(), session.ID))
}

func TestSubmissionGate_RejectsTerminatedSession(t *testing.T) {
	repo := new(sessionRepositoryMock)
	c, _ := newTestCache(t)
	gate := NewSubmissionGate(NewFinder(repo, c, logrus.New()), logrus.New())

	session := interview.NewSession(uuid.New(), "user-1")
	session.IntegrityState = interview.StateTerminated
	repo.On("Get", mock.Anything, session.ID).Return(session, nil)

	err := gate.Allow(context.Background(), session.ID)
	assert.ErrorIs(t, err, interview.ErrSessionTerminated)
}
