package violation

import (
	"context"
	"fmt"
	"time"

	"github.com/CandidateX/sentinel/pkg/cache"
	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/CandidateX/sentinel/pkg/domain/violation"
	"github.com/CandidateX/sentinel/pkg/infra/proctoring"
	"github.com/CandidateX/sentinel/pkg/infra/prometheus"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type RecordViolationCommand struct {
	SessionID   uuid.UUID
	UserID      string
	Type        string
	Severity    string // optional override of the policy classification
	Description string
	Metadata    violation.Metadata
}

type RecordViolationResult struct {
	Event     *violation.Event
	Count     int64
	Threshold int
	Escalated bool
	Session   *interview.Session
}

//go:generate mockery --name=Recorder --dir=. --output=../../../mocks --filename=violation_recorder_mock.go --case=underscore --with-expecter
type Recorder interface {
	Record(ctx context.Context, cmd RecordViolationCommand) (*RecordViolationResult, error)
}

type recorder struct {
	sessionRepo interview.Repository
	eventRepo   violation.Repository
	counter     proctoring.Counter
	policy      *violation.Policy
	cache       *cache.Cache
	window      time.Duration
	logger      *logrus.Logger
}

func NewRecorder(
	sessionRepo interview.Repository,
	eventRepo violation.Repository,
	counter proctoring.Counter,
	policy *violation.Policy,
	c *cache.Cache,
	window time.Duration,
	logger *logrus.Logger,
) Recorder {
	return &recorder{
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		counter:     counter,
		policy:      policy,
		cache:       c,
		window:      window,
		logger:      logger,
	}
}

// Record appends one violation event and runs the escalation policy for it.
// Validation happens before any state is touched; an invalid report leaves the
// event log, the counters and the session untouched.
func (r *recorder) Record(ctx context.Context, cmd RecordViolationCommand) (*RecordViolationResult, error) {
	violationType, err := violation.ParseType(cmd.Type)
	if err != nil {
		return nil, err
	}

	session, err := r.sessionRepo.Get(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	severity := r.policy.SeverityFor(violationType)
	if cmd.Severity != "" {
		severity, err = violation.ParseSeverity(cmd.Severity)
		if err != nil {
			return nil, err
		}
	}

	event, err := violation.NewEvent(
		cmd.SessionID,
		cmd.UserID,
		violationType,
		severity,
		cmd.Description,
		cmd.Metadata,
	)
	if err != nil {
		return nil, err
	}

	if err := r.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save violation event: %w", err)
	}

	count, err := r.counter.Increment(ctx, cmd.SessionID, violationType, r.window)
	if err != nil {
		return nil, fmt.Errorf("failed to count violation: %w", err)
	}

	prometheus.ViolationsTotal.WithLabelValues(string(violationType), string(severity)).Inc()

	threshold := r.policy.ThresholdFor(violationType)
	result := &RecordViolationResult{
		Event:     event,
		Count:     count,
		Threshold: threshold,
		Session:   session,
	}

	r.logger.WithFields(logrus.Fields{
		"sessionID": cmd.SessionID,
		"type":      violationType,
		"severity":  severity,
		"count":     count,
		"threshold": threshold,
	}).Debug("violation recorded")

	if count < int64(threshold) {
		return result, nil
	}

	reason := fmt.Sprintf("%d %s violations within the active window", count, violationType)
	if !violation.ApplyEscalation(session, severity, reason, time.Now()) {
		return result, nil
	}
	result.Escalated = true

	if err := r.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to escalate session: %w", err)
	}

	if err := r.cache.SaveSession(ctx, session); err != nil {
		r.logger.WithError(err).Warn("failed to refresh session cache after escalation")
	}
	if memoryCache := r.cache.GetTTLMap(cache.SessionTTLName); memoryCache != nil {
		memoryCache.Set(session.ID.String(), session)
	}
	if session.FlaggedForReview {
		reviewKey := fmt.Sprintf(cache.ReviewFlagKeyPattern, session.ID)
		if err := r.cache.Set(ctx, reviewKey, "1", 0); err != nil {
			r.logger.WithError(err).Warn("failed to set review flag")
		}
	}

	prometheus.EscalationsTotal.
		WithLabelValues(string(severity), string(session.IntegrityState)).
		Inc()

	r.logger.WithFields(logrus.Fields{
		"sessionID":      session.ID,
		"type":           violationType,
		"severity":       severity,
		"integrityState": session.IntegrityState,
	}).Info("session escalated")

	return result, nil
}
