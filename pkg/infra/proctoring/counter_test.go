package proctoring

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/CandidateX/sentinel/pkg/domain/violation"
	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_IncrementReturnsNewCount(t *testing.T) {
	client, clientMock := redismock.NewClientMock()
	counter := NewViolationCounter(client)

	sessionID := uuid.New()
	key := fmt.Sprintf(violationCountKey, sessionID, violation.TypeTabSwitch)

	clientMock.ExpectTxPipeline()
	clientMock.ExpectIncr(key).SetVal(3)
	clientMock.ExpectExpire(key, time.Hour).SetVal(true)
	clientMock.ExpectTxPipelineExec()

	count, err := counter.Increment(context.Background(), sessionID, violation.TypeTabSwitch, time.Hour)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, clientMock.ExpectationsWereMet())
}

func TestCounter_KeysAreScopedPerType(t *testing.T) {
	client, clientMock := redismock.NewClientMock()
	counter := NewViolationCounter(client)

	sessionID := uuid.New()
	key := fmt.Sprintf(violationCountKey, sessionID, violation.TypeMultipleFaces)

	clientMock.ExpectTxPipeline()
	clientMock.ExpectIncr(key).SetVal(1)
	clientMock.ExpectExpire(key, 30*time.Minute).SetVal(true)
	clientMock.ExpectTxPipelineExec()

	count, err := counter.Increment(context.Background(), sessionID, violation.TypeMultipleFaces, 30*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, clientMock.ExpectationsWereMet())
}

func TestCounter_RedisFailure(t *testing.T) {
	client, clientMock := redismock.NewClientMock()
	counter := NewViolationCounter(client)

	sessionID := uuid.New()
	key := fmt.Sprintf(violationCountKey, sessionID, violation.TypeTabSwitch)

	clientMock.ExpectTxPipeline()
	clientMock.ExpectIncr(key).SetErr(fmt.Errorf("connection refused"))

	_, err := counter.Increment(context.Background(), sessionID, violation.TypeTabSwitch, time.Hour)

	assert.Error(t, err)
}

func TestCounter_CountMissingKeyIsZero(t *testing.T) {
	client, clientMock := redismock.NewClientMock()
	counter := NewViolationCounter(client)

	sessionID := uuid.New()
	key := fmt.Sprintf(violationCountKey, sessionID, violation.TypeTabSwitch)

	clientMock.ExpectGet(key).RedisNil()

	count, err := counter.Count(context.Background(), sessionID, violation.TypeTabSwitch)

	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.NoError(t, clientMock.ExpectationsWereMet())
}

func TestCounter_CountReturnsCurrentValue(t *testing.T) {
	client, clientMock := redismock.NewClientMock()
	counter := NewViolationCounter(client)

	sessionID := uuid.New()
	key := fmt.Sprintf(violationCountKey, sessionID, violation.TypeSuspiciousActivity)

	clientMock.ExpectGet(key).SetVal("2")

	count, err := counter.Count(context.Background(), sessionID, violation.TypeSuspiciousActivity)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, clientMock.ExpectationsWereMet())
}

func TestCounter_ResetDeletesKey(t *testing.T) {
	client, clientMock := redismock.NewClientMock()
	counter := NewViolationCounter(client)

	sessionID := uuid.New()
	key := fmt.Sprintf(violationCountKey, sessionID, violation.TypeTabSwitch)

	clientMock.ExpectDel(key).SetVal(1)

	err := counter.Reset(context.Background(), sessionID, violation.TypeTabSwitch)

	require.NoError(t, err)
	assert.NoError(t, clientMock.ExpectationsWereMet())
}
