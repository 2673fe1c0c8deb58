package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/shared/identity"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("token invalide")

// TokenClaims contenu signé du jeton d'accès
type TokenClaims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService émet et vérifie les jetons HS256
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg *config.Config) *TokenService {
	authConfig := cfg.GetAuth()
	return newTokenService(authConfig.JWTSecret, authConfig.TokenTTL, time.Now)
}

func newTokenService(secret string, ttl time.Duration, now func() time.Time) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: now}
}

// Issue signe un jeton pour l'utilisateur et retourne sa date d'expiration
func (s *TokenService) Issue(user *identity.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := TokenClaims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signature du jeton: %w", err)
	}
	return token, expiresAt, nil
}

// Parse vérifie signature, algorithme et expiration
func (s *TokenService) Parse(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ID <= 0 {
		return nil, errInvalidToken
	}
	return claims, nil
}
