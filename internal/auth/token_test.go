package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/config"
)

func newTokens(t *testing.T, secret string) *Tokens {
	t.Helper()
	tok, err := NewTokens(config.AuthConfig{JWTSecret: secret, TokenTTL: time.Hour, Issuer: "clinic-desk"})
	require.NoError(t, err)
	return tok
}

func TestIssueAndParse(t *testing.T) {
	tok := newTokens(t, "s3cret")

	signed, exp, err := tok.Issue(7, calendar.OperatorRoleCashier)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := tok.Parse(signed)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.StaffID)
	assert.Equal(t, calendar.OperatorRoleCashier, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestParse_Rejects(t *testing.T) {
	tok := newTokens(t, "s3cret")
	signed, _, err := tok.Issue(7, calendar.OperatorRoleAdmin)
	require.NoError(t, err)

	_, err = newTokens(t, "other").Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = tok.Parse("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	expired := newTokens(t, "s3cret")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(7, calendar.OperatorRoleAdmin)
	require.NoError(t, err)
	_, err = tok.Parse(old)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokens_RequiresSecret(t *testing.T) {
	_, err := NewTokens(config.AuthConfig{})
	require.ErrorIs(t, err, ErrNoSecret)
}
