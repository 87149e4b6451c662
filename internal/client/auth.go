package client

import (
	"context"
	"net/http"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         User   `json:"user"`
}

type AuthService struct {
	c *Client
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session Session
	if _, err := s.c.do(ctx, "login", http.MethodPost, "/auth/login", nil, body, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Me returns the user the client's token belongs to.
func (s *AuthService) Me(ctx context.Context) (User, error) {
	var u User
	if _, err := s.c.do(ctx, "current user", http.MethodGet, "/auth/me", nil, nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}
