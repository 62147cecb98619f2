package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/config"
)

// ============================================
// Auth Service
// ============================================

// Sessions are owned by the identity provider; this service only verifies
// the HS256 tokens it signs.
type AuthService interface {
	ValidateToken(token string) (*Identity, error)
	// UserIDFromToken is ValidateToken reduced to the subject.
	UserIDFromToken(token string) (string, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

// IdentityClaims are the claims the identity provider puts in its tokens.
type IdentityClaims struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Picture  string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

func (s *authService) ValidateToken(tokenString string) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.JWTIssuer))
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	id := &Identity{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Username: claims.Username,
	}
	if claims.Name != "" {
		id.FullName = &claims.Name
	}
	if claims.Picture != "" {
		id.AvatarURL = &claims.Picture
	}
	return id, nil
}

func (s *authService) UserIDFromToken(tokenString string) (string, error) {
	id, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return id.UserID, nil
}
