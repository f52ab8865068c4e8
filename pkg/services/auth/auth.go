package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lib-tools/library-atlas/pkg/adapters"
	"github.com/lib-tools/library-atlas/pkg/models/domain"
	"github.com/lib-tools/library-atlas/pkg/models/store"
	"github.com/lib-tools/library-atlas/pkg/store/postgres"
)

// TokenExpiry is the default token lifetime.
const TokenExpiry = 24 * time.Hour

// Claims are the JWT claims carried by an access token.
type Claims struct {
	BorrowerID string `json:"borrower_id"`
	Name       string `json:"name"`
	IsAdmin    bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Service registers and authenticates borrower accounts and verifies their
// tokens.
type Service interface {
	Register(ctx context.Context, name, email, password string) (domain.Borrower, string, error)
	Login(ctx context.Context, email, password string) (domain.Borrower, string, error)
	Verify(token string) (*Claims, error)
}

type service struct {
	borrowers postgres.BorrowerStore
	secret    string
}

func NewService(borrowers postgres.BorrowerStore, secret string) (Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &service{borrowers: borrowers, secret: secret}, nil
}

func (s *service) Register(ctx context.Context, name, email, password string) (domain.Borrower, string, error) {
	if name == "" || email == "" {
		return domain.Borrower{}, "", domain.NewValidationError("name and email are required")
	}
	if len(password) < 6 {
		return domain.Borrower{}, "", domain.NewValidationError("password must be at least 6 characters")
	}

	if _, err := s.borrowers.GetByEmail(ctx, email); err == nil {
		return domain.Borrower{}, "", domain.NewValidationError("email %q is already registered", email)
	} else if !errors.Is(err, postgres.ErrNotFound) {
		return domain.Borrower{}, "", fmt.Errorf("look up borrower: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Borrower{}, "", fmt.Errorf("hash password: %w", err)
	}

	record := store.Borrower{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.borrowers.Add(ctx, record); err != nil {
		return domain.Borrower{}, "", fmt.Errorf("store borrower: %w", err)
	}

	borrower := adapters.MapBorrowerStoreToDomain(record)
	token, err := s.issueToken(borrower)
	if err != nil {
		return domain.Borrower{}, "", err
	}
	return borrower, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (domain.Borrower, string, error) {
	record, err := s.borrowers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return domain.Borrower{}, "", domain.NewValidationError("invalid credentials")
		}
		return domain.Borrower{}, "", fmt.Errorf("look up borrower: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return domain.Borrower{}, "", domain.NewValidationError("invalid credentials")
	}

	borrower := adapters.MapBorrowerStoreToDomain(*record)
	token, err := s.issueToken(borrower)
	if err != nil {
		return domain.Borrower{}, "", err
	}
	return borrower, token, nil
}

func (s *service) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func (s *service) issueToken(borrower domain.Borrower) (string, error) {
	claims := Claims{
		BorrowerID: borrower.ID,
		Name:       borrower.Name,
		IsAdmin:    borrower.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
