package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/physiorec/physiorec/internal/platform/db"
	"github.com/physiorec/physiorec/pkg/password"
)

type Service struct {
	repo UserRepository
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// Register creates a login identity with a hashed password. Duplicate
// usernames and emails are reported as typed errors so the handler can keep
// the historical response bodies.
func (s *Service) Register(ctx context.Context, in CreateUserInput) (*User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if constraint, ok := db.UniqueViolation(err); ok {
			if strings.Contains(constraint, "email") {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies an email/password pair and returns the user.
// Any failure, unknown email or wrong password, collapses into
// ErrInvalidCredentials so callers cannot probe which one it was.
func (s *Service) Authenticate(ctx context.Context, email, pass string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !password.Match(u.PasswordHash, pass) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ResolveUser implements auth.UserResolver: it maps a token subject back to
// the stored user id.
func (s *Service) ResolveUser(ctx context.Context, email string) (int64, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, ErrInvalidCredentials
	}
	return u.ID, nil
}
