package service

import (
	"time"

	"alfatrade/pkg/jwt"
)

// TokenTTL - срок жизни выданного токена.
const TokenTTL = 30 * 24 * time.Hour // 30 дней

type JWTManager struct {
	SecretKey string
	TTL       time.Duration
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		SecretKey: secret,
		TTL:       TokenTTL,
	}
}

// Generate подписывает токен, в userId которого лежит счёт пользователя.
func (j *JWTManager) Generate(userID, email string) (string, error) {
	return jwt.GenerateToken(j.SecretKey, userID, email, j.TTL)
}
