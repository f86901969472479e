package repository

import (
	"context"

	"github.com/CandidateX/sentinel/pkg/domain/violation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type violationEventRepository struct {
	db *gorm.DB
}

func NewViolationEventRepository(db *gorm.DB) violation.Repository {
	return &violationEventRepository{
		db: db,
	}
}

func (r *violationEventRepository) Save(ctx context.Context, event *violation.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *violationEventRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]violation.Event, error) {
	var events []violation.Event
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
