package proctoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CandidateX/sentinel/pkg/domain/violation"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const violationCountKey = "violations:count:%s:%s"

// Counter tracks how many violations of each type a session has accumulated
// inside the active window. Counts are transient by design: a type that stays
// quiet for the whole window expires and no longer contributes to escalation,
// while the event log keeps the full history.
//
//go:generate mockery --name=Counter --dir=. --output=./mocks --filename=violation_counter_mock.go --case=underscore --with-expecter
type Counter interface {
	Increment(ctx context.Context, sessionID uuid.UUID, violationType violation.Type, window time.Duration) (int64, error)
	Count(ctx context.Context, sessionID uuid.UUID, violationType violation.Type) (int64, error)
	Reset(ctx context.Context, sessionID uuid.UUID, violationType violation.Type) error
}

type counter struct {
	redis *redis.Client
}

func NewViolationCounter(redisClient *redis.Client) Counter {
	return &counter{
		redis: redisClient,
	}
}

// Increment atomically bumps the per-(session, type) counter and refreshes
// its expiry. The returned value is the count as seen by this increment, so
// concurrent reports cannot both observe a sub-threshold count.
func (c *counter) Increment(
	ctx context.Context,
	sessionID uuid.UUID,
	violationType violation.Type,
	window time.Duration,
) (int64, error) {
	key := fmt.Sprintf(violationCountKey, sessionID, violationType)

	pipe := c.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment violation counter: %w", err)
	}

	return incr.Val(), nil
}

// Count reads the current window count without touching the expiry. A missing
// key reports zero.
func (c *counter) Count(
	ctx context.Context,
	sessionID uuid.UUID,
	violationType violation.Type,
) (int64, error) {
	key := fmt.Sprintf(violationCountKey, sessionID, violationType)

	count, err := c.redis.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read violation counter: %w", err)
	}

	return count, nil
}

// Reset clears the window counter for one (session, type) pair.
func (c *counter) Reset(
	ctx context.Context,
	sessionID uuid.UUID,
	violationType violation.Type,
) error {
	key := fmt.Sprintf(violationCountKey, sessionID, violationType)

	if err := c.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to reset violation counter: %w", err)
	}

	return nil
}
