package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hotel-api/models"
)

func newTestAuth(t *testing.T) (*AuthService, *MemoryCollection[models.User]) {
	t.Helper()
	users, err := NewMemoryCollection[models.User]()
	if err != nil {
		t.Fatalf("NewMemoryCollection: %v", err)
	}
	return NewAuthService(users, "test-secret", time.Hour), users
}

func TestRegisterLoginAuthenticate(t *testing.T) {
	ctx := context.Background()
	auth, _ := newTestAuth(t)

	user, token, err := auth.Register(ctx, "Ann", " Ann@Example.com ", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ann@example.com" || user.Role != models.RoleUser {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.Password == "s3cret" {
		t.Fatalf("password stored in clear text")
	}

	id, err := auth.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if id.UserID != user.ID || id.Email != user.Email {
		t.Fatalf("identity = %+v", id)
	}

	if _, _, err := auth.Login(ctx, "ann@example.com", "s3cret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, _, err := auth.Login(ctx, "ann@example.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad password, got %v", err)
	}
	if _, _, err := auth.Login(ctx, "nobody@example.com", "s3cret"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
	if _, _, err := auth.Register(ctx, "Ann2", "ann@example.com", "x"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}
	if _, _, err := auth.Register(ctx, "NoPass", "np@example.com", ""); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	ctx := context.Background()
	auth, users := newTestAuth(t)
	user, token, err := auth.Register(ctx, "Bob", "bob@example.com", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	other := NewAuthService(users, "other-secret", time.Hour)
	forged, _ := other.IssueToken(user)

	expiredSvc := NewAuthService(users, "test-secret", time.Hour)
	expiredSvc.TTL = -time.Minute
	expired, _ := expiredSvc.IssueToken(user)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": user.ID})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	for name, cred := range map[string]string{
		"empty":    "",
		"garbage":  "not-a-jwt",
		"forged":   forged,
		"expired":  expired,
		"unsigned": unsigned,
	} {
		if _, err := auth.Authenticate(ctx, cred); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}

	if _, err := users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := auth.Authenticate(ctx, token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for deleted user, got %v", err)
	}
}
