package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/postboard-app/postboard/backend/internal/common/clock"
	userdomain "github.com/postboard-app/postboard/backend/internal/user/domain"
)

// Claims are the identity claims carried by a signed token.
type Claims struct {
	UserID userdomain.ID
	Email  string
}

// TokenService issues and verifies HS256-signed identity tokens. The
// signing secret is injected once at construction and never changes
// for the lifetime of the process.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokenService(secret string, ttl time.Duration, clock clock.Clock) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
	}
}

func (s *TokenService) Issue(userID userdomain.ID, email string) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"id":    string(userID),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	incrementTokensIssued()
	return tokenString, nil
}

// Verify checks signature and expiry. Any structural or signature
// problem is an error; callers on the request path treat every error
// as "anonymous", never as a failure of the request itself.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	incrementTokenVerifications()

	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		incrementTokenVerificationsFailed()
		if err == nil {
			err = errors.New("token is not valid")
		}
		return Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		incrementTokenVerificationsFailed()
		return Claims{}, errors.New("invalid claims type")
	}

	id, _ := mapClaims["id"].(string)
	email, _ := mapClaims["email"].(string)
	if id == "" || email == "" {
		incrementTokenVerificationsFailed()
		return Claims{}, errors.New("missing id or email claims")
	}

	return Claims{
		UserID: userdomain.ID(id),
		Email:  email,
	}, nil
}
