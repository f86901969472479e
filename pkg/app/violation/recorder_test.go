package violation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CandidateX/sentinel/pkg/cache"
	"github.com/CandidateX/sentinel/pkg/domain"
	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/CandidateX/sentinel/pkg/domain/violation"
	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionRepositoryMock struct {
	mock.Mock
}

func (m *sessionRepositoryMock) Save(ctx context.Context, session *interview.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *sessionRepositoryMock) Get(ctx context.Context, id uuid.UUID) (*interview.Session, error) {
	args := m.Called(ctx, id)
	if session := args.Get(0); session != nil {
		return session.(*interview.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *sessionRepositoryMock) Update(ctx context.Context, session *interview.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type eventRepositoryMock struct {
	mock.Mock
}

func (m *eventRepositoryMock) Save(ctx context.Context, event *violation.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *eventRepositoryMock) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]violation.Event, error) {
	args := m.Called(ctx, sessionID)
	if events := args.Get(0); events != nil {
		return events.([]violation.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

type counterMock struct {
	mock.Mock
}

func (m *counterMock) Increment(
	ctx context.Context,
	sessionID uuid.UUID,
	violationType violation.Type,
	window time.Duration,
) (int64, error) {
	args := m.Called(ctx, sessionID, violationType, window)
	return args.Get(0).(int64), args.Error(1)
}

func (m *counterMock) Count(
	ctx context.Context,
	sessionID uuid.UUID,
	violationType violation.Type,
) (int64, error) {
	args := m.Called(ctx, sessionID, violationType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *counterMock) Reset(
	ctx context.Context,
	sessionID uuid.UUID,
	violationType violation.Type,
) error {
	args := m.Called(ctx, sessionID, violationType)
	return args.Error(0)
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	client, _ := redismock.NewClientMock()
	return cache.NewCacheWithClient(client)
}

func newTestRecorder(
	sessionRepo *sessionRepositoryMock,
	eventRepo *eventRepositoryMock,
	counter *counterMock,
	c *cache.Cache,
) Recorder {
	logger := logrus.New()
	return NewRecorder(
		sessionRepo,
		eventRepo,
		counter,
		violation.DefaultPolicy(),
		c,
		time.Hour,
		logger,
	)
}

func TestRecorder_InvalidTypeLeavesStateUntouched(t *testing.T) {
	sessionRepo := new(sessionRepositoryMock)
	eventRepo := new(eventRepositoryMock)
	counter := new(counterMock)
	recorder := newTestRecorder(sessionRepo, eventRepo, counter, newTestCache(t))

	_, err := recorder.Record(context.Background(), RecordViolationCommand{
		SessionID: uuid.New(),
		UserID:    "user-1",
		Type:      "mouse_wiggle",
	})

	assert.ErrorIs(t, err, violation.ErrInvalidType)
	sessionRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	eventRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	counter.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecorder_UnknownSession(t *testing.T) {
	sessionRepo := new(sessionRepositoryMock)
	eventRepo := new(eventRepositoryMock)
	counter := new(counterMock)
	recorder := newTestRecorder(sessionRepo, eventRepo, counter, newTestCache(t))

	sessionID := uuid.New()
	sessionRepo.On("Get", mock.Anything, sessionID).
		Return(nil, domain.NewNotFoundError("interview session", sessionID))

	_, err := recorder.Record(context.Background(), RecordViolationCommand{
		SessionID: sessionID,
		UserID:    "user-1",
		Type:      "tab_switch",
	})

	assert.True(t, domain.IsNotFoundError(err))
	eventRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecorder_BelowThresholdDoesNotEscalate(t *testing.T) {
	sessionRepo := new(sessionRepositoryMock)
	eventRepo := new(eventRepositoryMock)
	counter := new(counterMock)
	recorder := newTestRecorder(sessionRepo, eventRepo, counter, newTestCache(t))

	session := interview.NewSession(uuid.New(), "user-1")
	sessionRepo.On("Get", mock.Anything, session.ID).Return(session, nil)
	eventRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	counter.On("Increment", mock.Anything, session.ID, violation.TypeTabSwitch, time.Hour).
		Return(int64(2), nil)

	result, err := recorder.Record(context.Background(), RecordViolationCommand{
		SessionID: session.ID,
		UserID:    "user-1",
		Type:      "tab_switch",
	})

	require.NoError(t, err)
	assert.False(t, result.Escalated)
	assert.Equal(t, int64(2), result.Count)
	assert.Equal(t, 3, result.Threshold)
	assert.Equal(t, interview.StateClean, session.IntegrityState)
	sessionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecorder_TabSwitchThresholdFlagsSession(t *testing.T) {
	sessionRepo := new(sessionRepositoryMock)
	eventRepo := new(eventRepositoryMock)
	counter := new(counterMock)
	recorder := newTestRecorder(sessionRepo, eventRepo, counter, newTestCache(t))

	session := interview.NewSession(uuid.New(), "user-1")
	sessionRepo.On("Get", mock.Anything, session.ID).Return(session, nil)
	eventRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	counter.On("Increment", mock.Anything, session.ID, violation.TypeTabSwitch, time.Hour).
		Return(int64(3), nil)
	sessionRepo.On("Update", mock.Anything, session).Return(nil)

	result, err := recorder.Record(context.Background(), RecordViolationCommand{
		SessionID: session.ID,
		UserID:    "user-1",
		Type:      "tab_switch",
	})

	require.NoError(t, err)
	assert.True(t, result.Escalated)
	assert.True(t, session.FlaggedForReview)
	assert.Equal(t, string(interview.StateFlagged), session.Status)
	assert.Equal(t, interview.StateFlagged, session.IntegrityState)
	sessionRepo.AssertCalled(t, "Update", mock.Anything, session)
}

func TestRecorder_CriticalViolationTerminatesImmediately(t *testing.T) {
	sessionRepo := new(sessionRepositoryMock)
	eventRepo := new(eventRepositoryMock)
	counter := new(counterMock)
	recorder := newTestRecorder(sessionRepo, eventRepo, counter, newTestCache(t))

	session := interview.NewSession(uuid.New(), "user-1")
	sessionRepo.On("Get", mock.Anything, session.ID).Return(session, nil)
	eventRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	counter.On("Increment", mock.Anything, session.ID, violation.TypeMultipleFaces, time.Hour).
		Return(int64(1), nil)
	sessionRepo.On("Update", mock.Anything, session).Return(nil)

	result, err := recorder.Record(context.Background(), RecordViolationCommand{
		SessionID: session.ID,
		UserID:    "user-1",
		Type:      "multiple_faces",
	})

	require.NoError(t, err)
	assert.True(t, result.Escalated)
	assert.Equal(t, interview.StateTerminated, session.IntegrityState)
	assert.NotEmpty(t, session.TerminationReason)
	assert.NotNil(t, session.CompletedAt)
}

func TestRecorder_SeverityOverride(t *testing.T) {
	sessionRepo := new(sessionRepositoryMock)
	eventRepo := new(eventRepositoryMock)
	counter := new(counterMock)
	recorder := newTestRecorder(sessionRepo, eventRepo, counter, newTestCache(t))

	session := interview.NewSession(uuid.New(), "user-1")
	sessionRepo.On("Get", mock.Anything, session.ID).Return(session, nil)
	eventRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	counter.On("Increment", mock.Anything, session.ID, violation.TypeTabSwitch, time.Hour).
		Return(int64(3), nil)
	sessionRepo.On("Update", mock.Anything, session).Return(nil)

	result, err := recorder.Record(context.Background(), RecordViolationCommand{
		SessionID: session.ID,
		UserID:    "user-1",
		Type:      "tab_switch",
		Severity:  "critical",
	})

	require.NoError(t, err)
	assert.Equal(t, violation.SeverityCritical, result.Event.Severity)
	assert.Equal(t, interview.StateTerminated, session.IntegrityState)
}

func TestRecorder_InvalidSeverityOverride(t *testing.T) {
	sessionRepo := new(sessionRepositoryMock)
	eventRepo := new(eventRepositoryMock)
	counter := new(counterMock)
	recorder := newTestRecorder(sessionRepo, eventRepo, counter, newTestCache(t))

	session := interview.NewSession(uuid.New(), "user-1")
	sessionRepo.On("Get", mock.Anything, session.ID).Return(session, nil)

	_, err := recorder.Record(context.Background(), RecordViolationCommand{
		SessionID: session.ID,
		UserID:    "user-1",
		Type:      "tab_switch",
		Severity:  "fatal",
	})

	assert.ErrorIs(t, err, violation.ErrInvalidSeverity)
	eventRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecorder_SaveFailureSurfaces(t *testing.T) {
	sessionRepo := new(sessionRepositoryMock)
	eventRepo := new(eventRepositoryMock)
	counter := new(counterMock)
	recorder := newTestRecorder(sessionRepo, eventRepo, counter, newTestCache(t))

	session := interview.NewSession(uuid.New(), "user-1")
	sessionRepo.On("Get", mock.Anything, session.ID).Return(session, nil)
	eventRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := recorder.Record(context.Background(), RecordViolationCommand{
		SessionID: session.ID,
		UserID:    "user-1",
		Type:      "tab_switch",
	})

	assert.Error(t, err)
	counter.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
