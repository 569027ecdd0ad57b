// Package auth содержит работу с JWT-токенами. Токены выпускает
// внешний провайдер аутентификации с общим секретом, здесь они
// только проверяются.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTMaker описывает выпуск и проверку JWT-токенов.
type JWTMaker interface {
	GenerateToken(username string) (string, error)
	ParseToken(tokenStr string) (*jwt.RegisteredClaims, error)
}

// JWTMakerImpl реализация JWTMaker на симметричном секрете.
type JWTMakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт JWTMakerImpl.
func NewJWTMaker(secretKey string, ttl time.Duration) *JWTMakerImpl {
	return &JWTMakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken выпускает токен с именем пользователя в Subject.
func (j *JWTMakerImpl) GenerateToken(username string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken проверяет подпись и срок действия токена.
func (j *JWTMakerImpl) ParseToken(tokenStr string) (*jwt.RegisteredClaims, error) {
	const op = "auth.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(_ *jwt.Token) (any, error) {
			return []byte(j.secretKey), nil
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
