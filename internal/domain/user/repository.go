package user

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("a user with the same email already exists")
)

// Repository defines the storage operations for users
type Repository interface {
	// Create persists a new user and assigns its id
	Create(ctx context.Context, u *User) error

	// FindByID returns a user by its id
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByEmail returns a user by its email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List lists users ordered by name
	List(ctx context.Context, limit, offset int) ([]*User, error)

	// Update updates an existing user
	Update(ctx context.Context, u *User) error

	// Delete removes a user
	Delete(ctx context.Context, id int64) error
}
