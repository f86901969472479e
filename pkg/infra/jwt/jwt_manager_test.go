package jwt

import (
	"testing"

	"github.com/CandidateX/sentinel/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtManager_CreateAndValidateToken(t *testing.T) {
	manager := NewJwtManager(&config.ServerConfig{SecretKey: "test-secret"})

	token, err := manager.CreateToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.NoError(t, manager.ValidateToken(token))

	claims, err := manager.DecodeToken(token)
	require.NoError(t, err)
	assert.NotNil(t, claims.IssuedAt)
}

func TestJwtManager_RejectsGarbageToken(t *testing.T) {
	manager := NewJwtManager(&config.ServerConfig{SecretKey: "test-secret"})

	err := manager.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJwtManager_RejectsTokenSignedWithOtherKey(t *testing.T) {
	issuer := NewJwtManager(&config.ServerConfig{SecretKey: "key-one"})
	verifier := NewJwtManager(&config.ServerConfig{SecretKey: "key-two"})

	token, err := issuer.CreateToken()
	require.NoError(t, err)

	assert.ErrorIs(t, verifier.ValidateToken(token), ErrInvalidToken)
}
