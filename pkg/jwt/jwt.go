package jwt

import (
	"errors"
	"time"

	"vet-clinic/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrWrongTokenType = errors.New("unexpected token type")
)

// Identity is what a token asserts about its holder
type Identity struct {
	UserID   uuid.UUID
	Email    string
	UserType string
}

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	UserType  string    `json:"user_type"`
	TokenType TokenType `json:"token_type"`
	TokenID   string    `json:"token_id"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token together with the id the token store tracks
type IssuedToken struct {
	Value     string
	ID        string
	Type      TokenType
	ExpiresAt time.Time
}

type JWTService struct {
	config config.JWTConfig
	now    func() time.Time
}

type Option func(*JWTService)

// WithClock replaces time.Now for issuing and validating tokens
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		s.now = now
	}
}

func NewJWTService(cfg config.JWTConfig, opts ...Option) *JWTService {
	s := &JWTService{config: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a new token of the given type for id
func (s *JWTService) Issue(id Identity, tokenType TokenType) (*IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(s.Expiry(tokenType))
	tokenID := uuid.NewString()

	claims := Claims{
		UserID:    id.UserID,
		Email:     id.Email,
		UserType:  id.UserType,
		TokenType: tokenType,
		TokenID:   tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   id.UserID.String(),
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		Value:     signed,
		ID:        tokenID,
		Type:      tokenType,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse validates tokenString and checks it is of type want
func (s *JWTService) Parse(tokenString string, want TokenType) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuedAt(),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil, !token.Valid:
		return nil, ErrInvalidToken
	}

	if claims.TokenType != want {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// Expiry is the lifetime of tokens of the given type
func (s *JWTService) Expiry(tokenType TokenType) time.Duration {
	if tokenType == RefreshToken {
		return s.config.RefreshExpiry
	}
	return s.config.AccessExpiry
}
