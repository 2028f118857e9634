package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims is the token payload issued by the identity service
type Claims struct {
	jwt.RegisteredClaims
	Name    string   `json:"name,omitempty"`
	Email   string   `json:"email,omitempty"`
	IsStaff bool     `json:"is_staff,omitempty"`
	Roles   []string `json:"roles,omitempty"`
}

// JWTValidator validates HS256 bearer tokens signed with the shared secret
type JWTValidator struct {
	secret   []byte
	issuer   string
	audience string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(cfg *config.AuthConfig) *JWTValidator {
	return &JWTValidator{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// ValidateToken validates a token and returns the user it identifies
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: signing secret not configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	roles := append([]string(nil), claims.Roles...)
	if claims.IsStaff {
		roles = append(roles, RoleStaff)
	}

	return &UserContext{
		UserID:      userID,
		DisplayName: claims.Name,
		Email:       claims.Email,
		Roles:       roles,
	}, nil
}
