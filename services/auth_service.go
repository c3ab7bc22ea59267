package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hotel-api/models"
)

// Identity is the verified caller behind a credential.
type Identity struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Authenticator turns a bearer credential into an Identity or rejects it with
// ErrUnauthorized.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (Identity, error)
}

type AuthService struct {
	Users  Collection[models.User]
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(users Collection[models.User], secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &AuthService{Users: users, Secret: []byte(secret), TTL: ttl}
}

type tokenClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

func (s *AuthService) IssueToken(user models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		ID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	})
	return token.SignedString(s.Secret)
}

func (s *AuthService) Authenticate(ctx context.Context, credential string) (Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return Identity{}, ErrUnauthorized
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.ID == "" {
		return Identity{}, ErrUnauthorized
	}

	user, err := s.Users.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Identity{}, ErrUnauthorized
		}
		return Identity{}, err
	}
	return identityOf(user), nil
}

// Register creates a regular user account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, "", ValidationError{Msg: "email and password are required"}
	}

	if _, err := s.Users.FindOne(ctx, Filter{"email": email}); err == nil {
		return models.User{}, "", fmt.Errorf("%w: email %s already registered", ErrConflict, email)
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, "", err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}
	user := models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.Users.Create(ctx, &user); err != nil {
		return models.User{}, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, "", ValidationError{Msg: "email and password are required"}
	}

	user, err := s.Users.FindOne(ctx, Filter{"email": email})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, "", ErrUnauthorized
		}
		return models.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, "", ErrUnauthorized
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func identityOf(u models.User) Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
