package authsvc

import (
	"errors"
	"strings"

	"carrental/util/hash"
	jwtutil "carrental/util/jwt"
)

var ErrInvalidCreds = errors.New("invalid credentials")

// Service authenticates the agency operator. There is a single admin
// principal, configured at startup; successful login yields a JWT for
// the protected API surface.
type Service interface {
	Login(email, password, secret string) (string, error)
}

type service struct {
	adminEmail string
	adminHash  string
}

func New(adminEmail, adminHash string) Service {
	return &service{adminEmail: strings.ToLower(adminEmail), adminHash: adminHash}
}

func (s *service) Login(email, password, secret string) (string, error) {
	if strings.ToLower(strings.TrimSpace(email)) != s.adminEmail {
		return "", ErrInvalidCreds
	}
	if !hash.Check(s.adminHash, password) {
		return "", ErrInvalidCreds
	}
	return jwtutil.Issue(secret, s.adminEmail, "admin", 24)
}
