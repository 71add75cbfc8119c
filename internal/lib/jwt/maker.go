// Package jwt реализует выпуск и проверку подписанных сессионных токенов.
//
// Maker подписывает токены симметричным секретом (HS256) и проверяет
// подпись, срок действия и формат при каждом использовании. Ошибки проверки
// различимы (ErrMalformed, ErrInvalidSignature, ErrExpired) для логов, но
// вызывающий код обязан трактовать их одинаково - как отсутствие аутентификации.
package jwt

import (
	"errors"
	"time"
)

// DefaultTTL - срок жизни сессии по умолчанию.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrEmptySecret - секрет подписи не задан; выпуск токенов запрещён.
	ErrEmptySecret = errors.New("jwt secret is empty")
	// ErrMalformed - токен не удалось разобрать.
	ErrMalformed = errors.New("token is malformed")
	// ErrInvalidSignature - подпись не совпала или алгоритм не тот.
	ErrInvalidSignature = errors.New("token signature is invalid")
	// ErrExpired - срок действия токена истёк.
	ErrExpired = errors.New("token is expired")
)

// MakerImpl выпускает и проверяет токены с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey []byte        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт MakerImpl. Пустой секрет - ошибка: подписывать
// токены угадываемым ключом нельзя.
func NewJWTMaker(secretKey string, ttl time.Duration) (*MakerImpl, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
	}, nil
}

// TTL возвращает срок жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}

// Kind возвращает короткое имя категории ошибки проверки для логов.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
