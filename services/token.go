package services

import (
	"errors"
	"strconv"
	"time"

	"food-ordering-api/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims is the verified payload of an access token.
type Claims struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens with a fixed lifetime.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger
}

func NewTokenManager(secret string, ttl time.Duration, log *zap.Logger) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now, log: log}
}

// WithClock returns a copy of m that reads the current time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

func (m *TokenManager) Issue(user *models.User) (string, error) {
	if user == nil || user.ID == 0 || user.Username == "" {
		return "", errors.New("token: user id and username are required")
	}
	now := m.now()
	claims := Claims{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// VerifyToken returns the claims of a valid token and nil for anything else.
// The cause is logged but never returned.
func (m *TokenManager) VerifyToken(token string) *Claims {
	if token == "" {
		m.log.Warn("token verification failed", zap.String("reason", "missing"))
		return nil
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		m.log.Warn("token verification failed", zap.String("reason", failureReason(err)), zap.Error(err))
		return nil
	}
	return claims
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	default:
		return "other"
	}
}
