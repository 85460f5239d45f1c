package client

import (
	"context"
	"net/http"
)

// AuthService covers /auth
type AuthService struct {
	c *Client
}

// Login authenticates and, on success, stores the token, role and profile in the session
func (s *AuthService) Login(ctx context.Context, email, password string) Response[AuthResult] {
	resp := do[AuthResult](ctx, s.c, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   LoginRequest{Email: email, Password: password},
	})
	if !resp.Success {
		return resp
	}

	if err := s.c.session.SetAuth(resp.Data.Token, resp.Data.Role); err != nil {
		resp.Success = false
		resp.Error = err.Error()
		return resp
	}
	if err := s.c.session.SetUser(resp.Data.User); err != nil {
		resp.Success = false
		resp.Error = err.Error()
	}
	return resp
}

// Register creates a customer account. It does not log in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) Response[User] {
	return do[User](ctx, s.c, call{method: http.MethodPost, path: "/auth/register", body: req})
}

// Me fetches the caller's profile from the server
func (s *AuthService) Me(ctx context.Context) Response[User] {
	return do[User](ctx, s.c, call{method: http.MethodGet, path: "/auth/me", private: true})
}

// Logout clears the local session
func (s *AuthService) Logout() error {
	return s.c.session.ClearAuth()
}
