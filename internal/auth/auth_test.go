package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	email := "ali@example.com"
	profileID := "p1"
	token, err := svc.Generate("u1", "ali", &email, nil, &profileID, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ali", claims.Subject)
	assert.Equal(t, &email, claims.Email)
	assert.Equal(t, &profileID, claims.ProfileID)
	assert.Nil(t, claims.ListingID)
	assert.True(t, claims.IsVerified)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).Generate("u1", "ali", nil, nil, nil, false)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.Generate("u1", "ali", nil, nil, nil, false)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(10)

	hashed, err := hasher.Hash("hunter2!")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2!", hashed)

	assert.True(t, hasher.Verify(hashed, "hunter2!"))
	assert.False(t, hasher.Verify(hashed, "wrong"))
}
