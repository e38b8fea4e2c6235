package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/shared/timezone"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaim  = errors.New("invalid token claim")
	ErrMissingHeader = errors.New("authorization header is required")
	ErrBearerFormat  = errors.New("authorization header must be 'Bearer <token>'")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

const (
	otelScopeName = "jwt"
	bearerScheme  = "Bearer"
	clockLeeway   = 30 * time.Second
)

// Claims carries the caller identity. The token id is the registered jti claim.
type Claims struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role,omitempty"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(ctx context.Context, userID, email, role string) (*TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (*Claims, error)
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// Service signs HS256 tokens. Access and refresh tokens use separate secrets, so one can never pass as the other.
type Service struct {
	issuer string
	keys   map[TokenType]signingKey
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) JWT {
	return &Service{
		issuer: cfg.App.Name,
		keys: map[TokenType]signingKey{
			AccessToken:  {secret: []byte(cfg.JWT.AccessSecret), ttl: time.Duration(cfg.JWT.AccessExpireMin) * time.Minute},
			RefreshToken: {secret: []byte(cfg.JWT.RefreshSecret), ttl: time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute},
		},
		otel: otel,
	}
}

func (s *Service) key(tokenType TokenType) (signingKey, error) {
	key, ok := s.keys[tokenType]
	if !ok {
		return signingKey{}, fmt.Errorf("unknown token type: %s", tokenType)
	}

	return key, nil
}

func (s *Service) GenerateTokenPair(ctx context.Context, userID, email, role string) (_ *TokenPair, err error) {
	_, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".GenerateTokenPair")
	defer scope.End()
	defer scope.TraceIfError(&err)

	now := timezone.Now()
	pair := &TokenPair{TokenType: bearerScheme}

	if pair.AccessToken, err = s.sign(userID, email, role, AccessToken, now); err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if pair.RefreshToken, err = s.sign(userID, email, role, RefreshToken, now); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	pair.ExpiresIn = int64(s.keys[AccessToken].ttl.Seconds())

	return pair, nil
}

func (s *Service) sign(userID, email, role string, tokenType TokenType, now time.Time) (string, error) {
	key, err := s.key(tokenType)
	if err != nil {
		return "", err
	}

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(key.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *Service) ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (_ *Claims, err error) {
	_, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".ValidateToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	key, err := s.key(tokenType)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}

	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return key.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithLeeway(clockLeeway),
		jwt.WithTimeFunc(timezone.Now),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.Type != tokenType:
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader returns the token of a "Bearer <token>" header. The scheme is case-insensitive.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	token = strings.TrimSpace(token)

	if !ok || !strings.EqualFold(scheme, bearerScheme) || token == "" {
		return "", ErrBearerFormat
	}

	return token, nil
}
