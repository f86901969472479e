package repository

import (
	"context"
	"errors"

	"github.com/CandidateX/sentinel/pkg/domain"
	"github.com/CandidateX/sentinel/pkg/domain/interview"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type interviewSessionRepository struct {
	db *gorm.DB
}

func NewInterviewSessionRepository(db *gorm.DB) interview.Repository {
	return &interviewSessionRepository{
		db: db,
	}
}

func (r *interviewSessionRepository) Save(ctx context.Context, session *interview.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *interviewSessionRepository) Get(ctx context.Context, id uuid.UUID) (*interview.Session, error) {
	var session interview.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("interview session", id)
		}
		return nil, err
	}
	return &session, nil
}

// Update writes the mutable proctoring fields. The integrity state guard in
// the WHERE clause keeps a concurrent escalation from ever moving the state
// backwards; a stale update simply matches zero rows.
func (r *interviewSessionRepository) Update(ctx context.Context, session *interview.Session) error {
	lowerStates := make([]interview.IntegrityState, 0, 4)
	for _, state := range []interview.IntegrityState{
		interview.StateClean,
		interview.StateFlagged,
		interview.StateSuspended,
		interview.StateTerminated,
	} {
		if state.Rank() <= session.IntegrityState.Rank() {
			lowerStates = append(lowerStates, state)
		}
	}

	return r.db.WithContext(ctx).
		Model(&interview.Session{}).
		Where("id = ?", session.ID).
		Where("integrity_state IN ?", lowerStates).
		Updates(map[string]interface{}{
			"status":             session.Status,
			"integrity_state":    session.IntegrityState,
			"flagged_for_review": session.FlaggedForReview,
			"suspension_reason":  session.SuspensionReason,
			"termination_reason": session.TerminationReason,
			"completed_at":       session.CompletedAt,
			"updated_at":         session.UpdatedAt,
		}).Error
}
