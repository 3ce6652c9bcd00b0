package kampusapi

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/kampushq/kampus/core/user"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login authenticates against the API and attaches the resulting session to
// the client.
func (c *Client) Login(ctx context.Context, username, password string) (user.Session, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/users/login", nil, loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return user.Session{}, err
	}

	sess, err := user.NewSession(resp.Token)
	if err != nil {
		return user.Session{}, errors.Wrap(err, "login succeeded but token is unusable")
	}
	c.UseSession(sess)
	return sess, nil
}

// RefreshToken trades the current token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context) (user.Session, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/v1/users/token-refresh", nil, nil, &resp); err != nil {
		return user.Session{}, err
	}

	sess, err := user.NewSession(resp.Token)
	if err != nil {
		return user.Session{}, errors.Wrap(err, "refresh succeeded but token is unusable")
	}
	c.UseSession(sess)
	return sess, nil
}
