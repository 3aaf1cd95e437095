package apiclient

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
)

var opLogin = operation{name: "login", fallback: "authentication failed"}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the raw login payload. Some backends nest the identity
// under "user", others return it at the top level.
type LoginResponse struct {
	models.Identity
	User        *models.Identity `json:"user,omitempty"`
	AccessToken string           `json:"accessToken,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := loginRequest{Email: email, Password: password}
	if err := c.check(opLogin, req); err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := c.do(ctx, opLogin, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
