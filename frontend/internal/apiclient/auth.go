package apiclient

import (
	"context"

	"github.com/playto-dev/playto/shared/api"
)

// Login exchanges credentials for a bearer token.
func (c *APIClient) Login(ctx context.Context, username, password string) (string, error) {
	var resp api.LoginResponse
	if err := c.doJSON(ctx, "POST", "/auth/login", "", api.LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}
