package identity

import "context"

// UserRepository persists login identities. Lookups return (nil, nil) when no
// row matches; errors are reserved for storage failures.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
