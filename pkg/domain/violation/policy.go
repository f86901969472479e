package violation

import (
	"fmt"
	"time"

	"github.com/CandidateX/sentinel/pkg/domain/interview"
)

var defaultSeverities = map[Type]Severity{
	TypeTabSwitch:          SeverityMedium,
	TypeWindowFocusLost:    SeverityLow,
	TypeFullscreenExit:     SeverityMedium,
	TypeMultipleFaces:      SeverityCritical,
	TypeFaceNotDetected:    SeverityMedium,
	TypeSuspiciousActivity: SeverityHigh,
	TypeBrowserDevTools:    SeverityHigh,
	TypeScreenshotAttempt:  SeverityHigh,
	TypeExternalDevice:     SeverityCritical,
}

var defaultThresholds = map[Type]int{
	TypeTabSwitch:          3,
	TypeWindowFocusLost:    5,
	TypeFullscreenExit:     2,
	TypeMultipleFaces:      1,
	TypeFaceNotDetected:    3,
	TypeSuspiciousActivity: 2,
	TypeBrowserDevTools:    1,
	TypeScreenshotAttempt:  1,
	TypeExternalDevice:     1,
}

var severityTargets = map[Severity]interview.IntegrityState{
	SeverityLow:      interview.StateFlagged,
	SeverityMedium:   interview.StateFlagged,
	SeverityHigh:     interview.StateSuspended,
	SeverityCritical: interview.StateTerminated,
}

// TargetState returns the integrity state a threshold crossing of this
// severity escalates to.
func (s Severity) TargetState() interview.IntegrityState {
	return severityTargets[s]
}

// Policy holds the per-type severity classification and escalation
// thresholds. It is built once at startup from configuration overrides
// layered over the defaults above, and is immutable afterwards.
type Policy struct {
	severities map[Type]Severity
	thresholds map[Type]int
}

func DefaultPolicy() *Policy {
	return &Policy{
		severities: defaultSeverities,
		thresholds: defaultThresholds,
	}
}

func NewPolicy(thresholds map[string]int, severities map[string]string) (*Policy, error) {
	mergedThresholds := make(map[Type]int, len(defaultThresholds))
	for t, threshold := range defaultThresholds {
		mergedThresholds[t] = threshold
	}
	for name, threshold := range thresholds {
		t, err := ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("threshold override: %w", err)
		}
		if threshold < 1 {
			return nil, fmt.Errorf("threshold for %s must be >= 1", t)
		}
		mergedThresholds[t] = threshold
	}

	mergedSeverities := make(map[Type]Severity, len(defaultSeverities))
	for t, severity := range defaultSeverities {
		mergedSeverities[t] = severity
	}
	for name, value := range severities {
		t, err := ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("severity override: %w", err)
		}
		severity, err := ParseSeverity(value)
		if err != nil {
			return nil, fmt.Errorf("severity override for %s: %w", t, err)
		}
		mergedSeverities[t] = severity
	}

	return &Policy{
		severities: mergedSeverities,
		thresholds: mergedThresholds,
	}, nil
}

func (p *Policy) SeverityFor(t Type) Severity {
	return p.severities[t]
}

func (p *Policy) ThresholdFor(t Type) int {
	return p.thresholds[t]
}

// ApplyEscalation runs the escalation state machine against the session.
// The target state derives from the triggering severity and is applied only
// when it is more severe than the current state; the per-severity side
// effects (review flag, status, reasons, completion timestamp) follow the
// table in the escalation policy. Returns true when the session changed.
func ApplyEscalation(s *interview.Session, severity Severity, reason string, now time.Time) bool {
	target := severity.TargetState()
	changed := false

	switch severity {
	case SeverityLow:
		if !s.FlaggedForReview {
			s.FlaggedForReview = true
			changed = true
		}
	case SeverityMedium:
		if !s.FlaggedForReview {
			s.FlaggedForReview = true
			changed = true
		}
		if s.IntegrityState.CanTransitionTo(target) {
			s.Status = string(interview.StateFlagged)
			changed = true
		}
	case SeverityHigh:
		if s.IntegrityState.CanTransitionTo(target) {
			s.Status = string(interview.StateSuspended)
			s.SuspensionReason = reason
			changed = true
		}
	case SeverityCritical:
		if s.IntegrityState.CanTransitionTo(target) {
			s.Status = string(interview.StateTerminated)
			s.TerminationReason = reason
			completedAt := now
			s.CompletedAt = &completedAt
			changed = true
		}
	}

	if s.IntegrityState.CanTransitionTo(target) {
		s.IntegrityState = target
		changed = true
	}
	if changed {
		s.UpdatedAt = now
	}
	return changed
}
