package interview

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSessionTerminated = errors.New("interview session is terminated")

// IntegrityState tracks how much the proctoring monitor trusts a session.
// It only ever moves forward: clean -> flagged -> suspended -> terminated.
type IntegrityState string

const (
	StateClean      IntegrityState = "clean"
	StateFlagged    IntegrityState = "flagged"
	StateSuspended  IntegrityState = "suspended"
	StateTerminated IntegrityState = "terminated"
)

var stateRanks = map[IntegrityState]int{
	StateClean:      0,
	StateFlagged:    1,
	StateSuspended:  2,
	StateTerminated: 3,
}

func (s IntegrityState) Valid() bool {
	_, ok := stateRanks[s]
	return ok
}

func (s IntegrityState) Rank() int {
	return stateRanks[s]
}

// CanTransitionTo reports whether target is strictly more severe than s.
func (s IntegrityState) CanTransitionTo(target IntegrityState) bool {
	return target.Valid() && target.Rank() > s.Rank()
}

type Session struct {
	ID                uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID            string         `json:"user_id" gorm:"index"`
	Status            string         `json:"status"`
	IntegrityState    IntegrityState `json:"integrity_state"`
	FlaggedForReview  bool           `json:"flagged_for_review"`
	SuspensionReason  string         `json:"suspension_reason,omitempty"`
	TerminationReason string         `json:"termination_reason,omitempty"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func NewSession(id uuid.UUID, userID string) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		UserID:         userID,
		Status:         "in_progress",
		IntegrityState: StateClean,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.IntegrityState == "" {
		s.IntegrityState = StateClean
	}
	return s.Validate()
}

func (s *Session) Validate() error {
	if s.UserID == "" {
		return errors.New("user_id is required")
	}
	if !s.IntegrityState.Valid() {
		return errors.New("invalid integrity state")
	}
	return nil
}

// AcceptsSubmissions reports whether the session still accepts answer
// submissions. Terminated sessions accept none.
func (s *Session) AcceptsSubmissions() bool {
	return s.IntegrityState != StateTerminated
}

func (s *Session) TableName() string {
	return "public.interview_sessions"
}
