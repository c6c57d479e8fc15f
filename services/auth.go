// Package services holds the authentication flow: registration, login and
// token verification.
package services

import (
	"context"
	"errors"

	"food-ordering-api/apperrors"
	"food-ordering-api/models"

	"go.uber.org/zap"
)

// UserStore is the part of the repository the auth flow needs.
type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, in models.NewUser) (*models.User, error)
}

type AuthResult struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens *TokenManager
	log    *zap.Logger
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens *TokenManager, log *zap.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

func (s *AuthService) Tokens() *TokenManager { return s.tokens }

// Register creates a user with the default role and signs them in.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (*AuthResult, error) {
	if err := models.Validate(in); err != nil {
		authErr := apperrors.NewAuthError(apperrors.AuthValidation, err)
		authErr.Fields = models.ValidationError(err).Fields
		return nil, authErr
	}

	existing, err := s.users.FindUserByUsername(ctx, in.Username)
	if err != nil {
		s.log.Error("register: lookup failed", zap.String("username", in.Username), zap.Error(err))
		return nil, apperrors.NewAuthError(apperrors.AuthServer, err)
	}
	if existing != nil {
		return nil, apperrors.NewAuthError(apperrors.AuthUsernameTaken, nil)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.log.Error("register: hashing failed", zap.Error(err))
		return nil, apperrors.NewAuthError(apperrors.AuthServer, err)
	}

	email := in.Email
	user, err := s.users.CreateUser(ctx, models.NewUser{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        &email,
		Role:         models.RoleUser,
	})
	if apperrors.KindOf(err) == apperrors.KindConflict {
		return nil, apperrors.NewAuthError(apperrors.AuthUsernameTaken, err)
	}
	if err != nil {
		s.log.Error("register: create failed", zap.String("username", in.Username), zap.Error(err))
		return nil, apperrors.NewAuthError(apperrors.AuthServer, err)
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return s.signIn(user)
}

// Login checks credentials. Unknown usernames and wrong passwords are
// reported identically.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (*AuthResult, error) {
	if err := models.Validate(in); err != nil {
		authErr := apperrors.NewAuthError(apperrors.AuthValidation, err)
		authErr.Fields = models.ValidationError(err).Fields
		return nil, authErr
	}

	user, err := s.users.FindUserByUsername(ctx, in.Username)
	if err != nil {
		s.log.Error("login: lookup failed", zap.String("username", in.Username), zap.Error(err))
		return nil, apperrors.NewAuthError(apperrors.AuthServer, err)
	}
	if user == nil {
		return nil, apperrors.NewAuthError(apperrors.AuthInvalidCredentials, nil)
	}

	ok, err := s.hasher.Compare(in.Password, user.PasswordHash)
	if err != nil {
		s.log.Error("login: compare failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, apperrors.NewAuthError(apperrors.AuthServer, err)
	}
	if !ok {
		return nil, apperrors.NewAuthError(apperrors.AuthInvalidCredentials, nil)
	}

	return s.signIn(user)
}

// VerifyToken returns the claims of a valid token or nil.
func (s *AuthService) VerifyToken(token string) *Claims {
	return s.tokens.VerifyToken(token)
}

func (s *AuthService) signIn(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		s.log.Error("token signing failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, apperrors.NewAuthError(apperrors.AuthServer, err)
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// IsAuthError reports whether err came from the auth flow.
func IsAuthError(err error) bool {
	var authErr *apperrors.AuthError
	return errors.As(err, &authErr)
}
