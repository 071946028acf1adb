package client

import "context"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// Login authenticates with email and password. The access token is stored
// on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.doRequest(ctx, "POST", "/api/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Register creates a new account and logs in
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doRequest(ctx, "POST", "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Refresh exchanges a refresh token for a new token pair
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.doRequest(ctx, "POST", "/api/auth/refresh", map[string]string{
		"refreshToken": refreshToken,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// GetCurrentUser returns the authenticated user's profile
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, "GET", "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
