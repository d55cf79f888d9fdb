package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PasswordHasher is the credential-store dependency; implemented by
// internal/auth.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer mints the bearer token returned on register and login.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewService(repo Repository, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, string, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	exists, err := s.repo.ExistsByEmailOrUsername(ctx, input.Email, input.Username)
	if err != nil {
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, "", ErrUserExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	newUser := User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if input.Phone != "" {
		newUser.Phone = &input.Phone
	}

	if err := s.repo.Create(ctx, &newUser); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(newUser.ID, newUser.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return &newUser, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	found, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		// Unknown email and bad password are indistinguishable to the
		// caller.
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	if !s.hasher.Compare(found.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(found.ID, found.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return found, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
