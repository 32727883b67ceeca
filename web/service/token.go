package service

import (
	"errors"
	"time"

	"reviewhub/config"
	"reviewhub/database/model"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid token")

// TokenService issues and parses the bearer access tokens handed out by
// the token-exchange endpoint. Tokens are stateless HS256 JWTs keyed by
// the server secret; there is no refresh flow.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenService() *TokenService {
	return &TokenService{
		secret:   []byte(config.GetSecretKey()),
		lifetime: time.Duration(config.GetTokenHours()) * time.Hour,
	}
}

// Issue returns a signed access token for the user.
func (s *TokenService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"uid": user.Id,
		"iat": now.Unix(),
		"exp": now.Add(s.lifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse validates a raw token and returns the username it was issued to.
func (s *TokenService) Parse(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errInvalidToken
	}
	return subject, nil
}
