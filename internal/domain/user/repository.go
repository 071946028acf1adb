package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Create stores a new account
	Create(ctx context.Context, u *User) error

	// GetByID retrieves an account by numeric ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves an account by email, the login key
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update persists changes to an existing account
	Update(ctx context.Context, u *User) error
}
