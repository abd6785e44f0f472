package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"zap-feed-service/internal/core/domain"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/pkg/apperror"
)

// JWTTokenService issues and validates HS256 session tokens.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate signs a token for the user. The subject is the ledger user id;
// the AAD object id and display name ride along so handlers can build a
// session response without another roster fetch.
func (s *JWTTokenService) Generate(user domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"aad":  user.AADObjectID,
		"name": user.DisplayName,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
		"iss":  s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a token, returning its claims.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.ErrInvalidToken()
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrInvalidToken()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.ErrInvalidToken()
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, apperror.ErrInvalidToken()
	}
	aad, _ := claims["aad"].(string)
	name, _ := claims["name"].(string)

	return &ports.TokenClaims{
		UserID:      sub,
		AADObjectID: aad,
		DisplayName: name,
	}, nil
}
