package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/profitpath/internal/models"
)

// CustomClaims описывает данные, хранящиеся в токене. Subject - id пользователя,
// Name и Email носят справочный характер.
type CustomClaims struct {
	Name                 string `json:"name,omitempty"`
	Email                string `json:"email,omitempty"`
	jwt.RegisteredClaims        // Subject, IssuedAt, ExpiresAt
}

// GenerateToken выпускает токен для личности пользователя.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(identity models.Identity) (string, error) {
	const op = "jwt.GenerateToken"
	if identity.UserID == "" {
		return "", fmt.Errorf("%s: empty subject", op)
	}
	now := time.Now()
	claims := CustomClaims{
		Name:  identity.Name,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает его claims.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformed)
	}
	return claims, nil
}

// Verify проверяет токен и возвращает личность пользователя.
func (j *MakerImpl) Verify(tokenStr string) (models.Identity, error) {
	claims, err := j.ParseToken(tokenStr)
	if err != nil {
		return models.Identity{}, err
	}
	return models.Identity{
		UserID: claims.Subject,
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
