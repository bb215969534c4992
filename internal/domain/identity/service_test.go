package identity

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// =========== Mock Repository ===========

type mockUserRepo struct {
	store  map[int64]*User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{store: make(map[int64]*User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	for _, other := range m.store {
		if other.Username == u.Username {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
		if other.Email == u.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	m.nextID++
	m.store[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*User, error) {
	return m.store[id], nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.store {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func newTestService() *Service {
	return NewService(newMockUserRepo())
}

// =========== Register ===========

func TestService_Register(t *testing.T) {
	svc := newTestService()
	u, err := svc.Register(context.Background(), CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected assigned id")
	}
	if u.PasswordHash == "secret" || u.PasswordHash == "" {
		t.Error("password should be stored hashed")
	}
}

func TestService_Register_MissingFields(t *testing.T) {
	svc := newTestService()
	_, err := svc.Register(context.Background(), CreateUserInput{Username: "alice"})
	if err != ErrMissingFields {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	svc := newTestService()
	in := CreateUserInput{Username: "alice", Email: "alice@example.com", Password: "secret"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	in.Email = "alice2@example.com"
	if _, err := svc.Register(context.Background(), in); err != ErrUsernameTaken {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestService()
	in := CreateUserInput{Username: "alice", Email: "alice@example.com", Password: "secret"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	in.Username = "alice2"
	if _, err := svc.Register(context.Background(), in); err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

// =========== Authenticate ===========

func TestService_Authenticate(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Register(context.Background(), CreateUserInput{
		Username: "alice", Email: "alice@example.com", Password: "secret",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	u, err := svc.Authenticate(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("expected alice, got %s", u.Username)
	}
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Register(context.Background(), CreateUserInput{
		Username: "alice", Email: "alice@example.com", Password: "secret",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "alice@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestService_Authenticate_UnknownEmail(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "secret"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// =========== ResolveUser ===========

func TestService_ResolveUser(t *testing.T) {
	svc := newTestService()
	u, err := svc.Register(context.Background(), CreateUserInput{
		Username: "alice", Email: "alice@example.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	id, err := svc.ResolveUser(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != u.ID {
		t.Errorf("expected id %d, got %d", u.ID, id)
	}

	if _, err := svc.ResolveUser(context.Background(), "ghost@example.com"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
