package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/store"
	"github.com/golang-jwt/jwt/v5"
)

const (
	apiKeyLength   = 32
	apiKeyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	tokenLifetime = 24 * time.Hour
)

// ErrUnknownCredential возвращается, когда переданный ключ или токен
// не соответствует ни одному активному пользователю.
var ErrUnknownCredential = errors.New("unknown or inactive credential")

// UserFinder - операции хранилища, нужные для проверки учётных данных.
type UserFinder interface {
	FindUserByAPIKey(ctx context.Context, key string) (*model.User, error)
	FindUserByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthService выпускает API-ключи и JWT-токены и разрешает учётные данные
// во владельца ссылок.
type AuthService struct {
	users     UserFinder
	jwtSecret []byte
}

// NewAuthService создаёт новый экземпляр AuthService.
func NewAuthService(users UserFinder, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
	}
}

// NewAPIKey генерирует криптографически случайный API-ключ.
func (a *AuthService) NewAPIKey() (string, error) {
	key := make([]byte, apiKeyLength)
	max := big.NewInt(int64(len(apiKeyAlphabet)))

	for i := range key {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate api key: %w", err)
		}
		key[i] = apiKeyAlphabet[n.Int64()]
	}

	return string(key), nil
}

// IssueToken создаёт подписанный JWT с идентификатором пользователя.
// Токен можно передавать как Bearer вместо API-ключа.
func (a *AuthService) IssueToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// parseToken проверяет подпись JWT и извлекает идентификатор пользователя.
func (a *AuthService) parseToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("user_id claim missing")
	}

	return int64(userID), nil
}

// ResolveOwner разрешает учётные данные (API-ключ или JWT) в пользователя.
// Пустые учётные данные означают анонимный запрос (nil, nil).
// Неизвестные или неактивные - ErrUnknownCredential.
func (a *AuthService) ResolveOwner(ctx context.Context, credential string) (*model.User, error) {
	if credential == "" {
		return nil, nil
	}

	user, err := a.users.FindUserByAPIKey(ctx, credential)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve api key: %w", err)
	}

	// Не API-ключ: пробуем как JWT
	userID, tokenErr := a.parseToken(credential)
	if tokenErr != nil {
		return nil, ErrUnknownCredential
	}

	user, err = a.users.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownCredential
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token owner: %w", err)
	}

	return user, nil
}
