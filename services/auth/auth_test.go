package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	sessionRepo "washline/database/repository/session"
	"washline/database/table"
	"washline/utils"
)

func newAuthService(t *testing.T) *DefaultAuthService {
	t.Helper()
	return &DefaultAuthService{
		Repo:       sessionRepo.NewSessionRepo(table.NewMemoryTable()),
		Passcode:   "laundry123",
		SessionTTL: 24 * time.Hour,
	}
}

func TestLoginAndVerify(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	result, err := svc.Login(ctx, "laundry123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("no token issued")
	}
	if result.Username != "admin" {
		t.Errorf("username = %q, want admin", result.Username)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Error("session already expired at issue time")
	}

	session, err := svc.Verify(ctx, result.Token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if session.Username != "admin" {
		t.Errorf("verified username = %q", session.Username)
	}
}

func TestLoginWrongPasscode(t *testing.T) {
	svc := newAuthService(t)
	_, err := svc.Login(context.Background(), "wrong")
	if utils.StatusOf(err) != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", utils.StatusOf(err))
	}
	if utils.MessageOf(err) != "Invalid passcode" {
		t.Errorf("message = %q", utils.MessageOf(err))
	}
}

func TestLoginMissingPasscode(t *testing.T) {
	svc := newAuthService(t)
	_, err := svc.Login(context.Background(), "")
	if utils.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", utils.StatusOf(err))
	}
}

func TestLoginUnconfigured(t *testing.T) {
	svc := newAuthService(t)
	svc.Passcode = ""
	svc.PasscodeHash = ""
	_, err := svc.Login(context.Background(), "anything")
	if utils.StatusOf(err) != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", utils.StatusOf(err))
	}
}

func TestLoginWithBcryptHash(t *testing.T) {
	svc := newAuthService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("laundry123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	// The hash wins over the plaintext passcode when both are set.
	svc.Passcode = "something-else"
	svc.PasscodeHash = string(hash)

	if _, err := svc.Login(context.Background(), "laundry123"); err != nil {
		t.Errorf("Login against hash failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "something-else"); utils.StatusOf(err) != http.StatusUnauthorized {
		t.Errorf("plaintext passcode must not match when a hash is configured")
	}
}

func TestVerifyUnknownToken(t *testing.T) {
	svc := newAuthService(t)
	_, err := svc.Verify(context.Background(), "not-a-real-token")
	if utils.StatusOf(err) != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", utils.StatusOf(err))
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	svc := newAuthService(t)
	_, err := svc.Verify(context.Background(), "")
	if utils.StatusOf(err) != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", utils.StatusOf(err))
	}
}

func TestVerifyExpiredSessionIsRemoved(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	svc.SessionTTL = -time.Minute

	result, err := svc.Login(ctx, "laundry123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	_, err = svc.Verify(ctx, result.Token)
	if utils.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expired session accepted: %v", err)
	}

	// Verify deletes the expired record on read.
	_, err = svc.Repo.GetByTokenHash(ctx, utils.HashToken(result.Token))
	if !errors.Is(err, table.ErrItemNotFound) {
		t.Errorf("expired session still stored: %v", err)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	result, err := svc.Login(ctx, "laundry123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := svc.Logout(ctx, result.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := svc.Verify(ctx, result.Token); utils.StatusOf(err) != http.StatusUnauthorized {
		t.Errorf("token valid after logout: %v", err)
	}

	// Logging out twice is harmless.
	if err := svc.Logout(ctx, result.Token); err != nil {
		t.Errorf("second Logout failed: %v", err)
	}
}
