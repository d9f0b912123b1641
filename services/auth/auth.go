package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	sessionRepo "washline/database/repository/session"
	"washline/database/table"
	"washline/models"
	"washline/utils"
)

const adminUsername = "admin"

// LoginResult carries the raw session token back to the caller. The
// token itself is never stored, only its hash.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
}

// AuthService creates, verifies and revokes sessions. Every protected
// request passes through Verify.
type AuthService interface {
	// Login checks the admin passcode and creates a session.
	Login(ctx context.Context, passcode string) (*LoginResult, error)

	// Verify resolves a bearer token to its session. Expired sessions
	// are lazily deleted on read and rejected; missing or unknown
	// tokens yield Unauthorized.
	Verify(ctx context.Context, token string) (*models.Session, error)

	// Logout deletes the session belonging to the token.
	Logout(ctx context.Context, token string) error
}

// DefaultAuthService is the table-backed AuthService.
type DefaultAuthService struct {
	Repo sessionRepo.SessionRepository

	// Passcode and PasscodeHash come from configuration. When the
	// bcrypt hash is set it wins; the plain passcode is a development
	// convenience. Login is disabled when both are empty.
	Passcode     string
	PasscodeHash string

	SessionTTL time.Duration
}

func (s *DefaultAuthService) Login(ctx context.Context, passcode string) (*LoginResult, error) {
	logger := utils.GetLogger()

	if passcode == "" {
		return nil, utils.ValidationError("Passcode is required")
	}
	if s.Passcode == "" && s.PasscodeHash == "" {
		logger.Error("Login attempt failed: admin passcode not configured")
		return nil, utils.Unavailable("Authentication service is not configured. Please contact administrator.")
	}
	if !s.passcodeMatches(passcode) {
		return nil, utils.Unauthorized("Invalid passcode")
	}

	token, err := utils.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	session := models.Session{
		TokenHash: utils.HashToken(token),
		Username:  adminUsername,
		CreatedAt: now,
		ExpiresAt: now.Add(s.SessionTTL),
	}
	if err := s.Repo.Put(ctx, session); err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Username:  session.Username,
	}, nil
}

func (s *DefaultAuthService) Verify(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, utils.Unauthorized("Unauthorized")
	}
	tokenHash := utils.HashToken(token)
	session, err := s.Repo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, table.ErrItemNotFound) {
			return nil, utils.Unauthorized("Unauthorized")
		}
		return nil, err
	}
	if session.Expired(time.Now().UTC()) {
		// Lazy cleanup; the store's TTL reaper would get there
		// eventually.
		if err := s.Repo.DeleteByTokenHash(ctx, tokenHash); err != nil {
			utils.GetLogger().Warn("Failed to delete expired session", zap.Error(err))
		}
		return nil, utils.Unauthorized("Unauthorized")
	}
	return session, nil
}

func (s *DefaultAuthService) Logout(ctx context.Context, token string) error {
	return s.Repo.DeleteByTokenHash(ctx, utils.HashToken(token))
}

func (s *DefaultAuthService) passcodeMatches(passcode string) bool {
	if s.PasscodeHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.PasscodeHash), []byte(passcode)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.Passcode), []byte(passcode)) == 1
}
