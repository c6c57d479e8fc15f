package services

import (
	"strings"
	"testing"
	"time"

	"food-ordering-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedManager(secret string) (*TokenManager, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return NewTokenManager(secret, time.Hour, zap.New(core)), logs
}

func lastReason(t *testing.T, logs *observer.ObservedLogs) string {
	t.Helper()
	entries := logs.TakeAll()
	require.NotEmpty(t, entries)
	reason, ok := entries[len(entries)-1].ContextMap()["reason"].(string)
	require.True(t, ok)
	return reason
}

func TestIssue_RequiresIdentity(t *testing.T) {
	m := NewTokenManager("s", time.Hour, zap.NewNop())

	_, err := m.Issue(nil)
	assert.Error(t, err)
	_, err = m.Issue(&models.User{Username: "jane"})
	assert.Error(t, err)
	_, err = m.Issue(&models.User{ID: 1})
	assert.Error(t, err)
}

func TestVerifyToken_Failures(t *testing.T) {
	m, logs := newObservedManager("secret-a")
	user := &models.User{ID: 7, Username: "jane", Role: models.RoleAdmin}

	good, err := m.Issue(user)
	require.NoError(t, err)
	claims := m.VerifyToken(good)
	require.NotNil(t, claims)
	assert.Equal(t, uint(7), claims.ID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "7", claims.Subject)

	assert.Nil(t, m.VerifyToken(""))
	assert.Equal(t, "missing", lastReason(t, logs))

	assert.Nil(t, m.VerifyToken("garbage"))
	assert.Equal(t, "malformed", lastReason(t, logs))

	other, _ := newObservedManager("secret-b")
	forged, err := other.Issue(user)
	require.NoError(t, err)
	assert.Nil(t, m.VerifyToken(forged))
	assert.Equal(t, "signature", lastReason(t, logs))

	expired, err := m.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Issue(user)
	require.NoError(t, err)
	assert.Nil(t, m.VerifyToken(expired))
	assert.Equal(t, "expired", lastReason(t, logs))
}

func TestVerifyToken_TamperedPayload(t *testing.T) {
	m, _ := newObservedManager("secret-a")
	token, err := m.Issue(&models.User{ID: 7, Username: "jane", Role: models.RoleUser})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	adminClaims := Claims{
		ID: 7, Username: "jane", Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims).SigningString()
	require.NoError(t, err)
	parts[1] = strings.Split(unsigned, ".")[1]

	assert.Nil(t, m.VerifyToken(strings.Join(parts, ".")))
}

func TestVerifyToken_RejectsOtherAlgorithms(t *testing.T) {
	m, logs := newObservedManager("secret-a")
	claims := Claims{
		ID: 1, Username: "jane", Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Nil(t, m.VerifyToken(none))
	assert.NotEmpty(t, lastReason(t, logs))

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret-a"))
	require.NoError(t, err)
	assert.Nil(t, m.VerifyToken(hs512))
}

func TestVerifyToken_NeverLogsToken(t *testing.T) {
	m, logs := newObservedManager("secret-a")
	m.VerifyToken("garbage.token.value")
	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, "garbage.token.value")
			}
		}
	}
}
