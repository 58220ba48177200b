package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/program-catalog/internal/models"
)

func TestVerifiers(t *testing.T) {
	tests := []struct {
		name string
		v    CredentialVerifier
	}{
		{"plain", PlainVerifier{}},
		{"bcrypt", BcryptVerifier{Cost: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, err := tt.v.Prepare("s3cret")
			require.NoError(t, err)
			assert.True(t, tt.v.Verify(stored, "s3cret"))
			assert.False(t, tt.v.Verify(stored, "wrong"))
			assert.False(t, tt.v.Verify("", ""))
		})
	}
}

func TestNewVerifier(t *testing.T) {
	v, err := NewVerifier("")
	require.NoError(t, err)
	assert.IsType(t, PlainVerifier{}, v)

	v, err = NewVerifier("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, BcryptVerifier{}, v)

	_, err = NewVerifier("rot13")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "program-catalog", time.Hour)
	u := models.User{ID: "u1", Email: "ana@uni.edu", Role: models.RoleAdmin}

	tok, exp, err := tm.Generate(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "ana@uni.edu", claims.Email)
}

func TestTokenRejected(t *testing.T) {
	tm := NewTokenManager("secret", "program-catalog", time.Hour)
	tok, _, err := tm.Generate(models.User{ID: "u1"})
	require.NoError(t, err)

	_, err = NewTokenManager("other", "program-catalog", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("secret", "someone-else", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("secret", "program-catalog", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Generate(models.User{ID: "u1"})
	require.NoError(t, err)
	_, err = tm.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
