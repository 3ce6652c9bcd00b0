package user

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

var NowFunc = time.Now // mockable

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64    `json:"oriat,omitempty"`
	Username     string   `json:"username,omitempty"`
	Email        string   `json:"email,omitempty"`
	Roles        []string `json:"roles,omitempty"`
}

// Session is a logged-in state held by the client: the raw access token
// plus its decoded claims. The signature is the server's business; the
// client only decodes the payload to know who is logged in and until when.
type Session struct {
	Token  string `json:"token"`
	Claims Claims `json:"-"`
}

func NewSession(token string) (Session, error) {
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return Session{}, errors.Wrap(err, "decoding access token")
	}
	return Session{Token: token, Claims: *claims}, nil
}

func (s Session) Expired() bool {
	if s.Claims.ExpiresAt == 0 {
		return false
	}
	return NowFunc().UTC().Unix() >= s.Claims.ExpiresAt
}

// User rebuilds a partial User view from the token claims.
func (s Session) User() User {
	id, _ := strconv.Atoi(s.Claims.Subject)
	return User{
		ID:       id,
		Username: s.Claims.Username,
		Email:    s.Claims.Email,
		Roles:    s.Claims.Roles,
		IsActive: true,
	}
}
