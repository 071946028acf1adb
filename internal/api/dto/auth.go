package dto

// LoginRequest carries credentials for token issuance. No length rule on
// the password: any shape of bad credential gets the same 401.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries new-account fields. Role is capped by the
// handler; self-registration never yields admin.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin analyst viewer"`
}

// RefreshTokenRequest trades a refresh token for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *UserDTO `json:"user"`
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
}
