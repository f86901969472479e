package violation

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=violation_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Save(ctx context.Context, event *Event) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Event, error)
}
