package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// Register creates an account, hashing the password and defaulting
	// the role to viewer when unset
	Register(ctx context.Context, email, username, password, role string) (*User, error)

	// Authenticate checks credentials and returns the account. Wrong
	// email and wrong password fail identically.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id int64) (*User, error)
}
