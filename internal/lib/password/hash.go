// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHashWithCost создает bcrypt-хеш пароля со случайной солью на каждый вызов.
// CompareHash сравнивает bcrypt-хеш с введённым паролем.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost - рабочий фактор bcrypt, используемый при регистрации.
const Cost = 10

var (
	// ErrTooLong - пароль длиннее 72 байт, bcrypt его не примет.
	ErrTooLong = bcrypt.ErrPasswordTooLong
	// ErrMismatch - пароль не соответствует хэшу.
	ErrMismatch = bcrypt.ErrMismatchedHashAndPassword
)

// GetHashWithCost принимает пароль пользователя и возвращает его bcrypt‑хэш
// с рабочим фактором cost.
//
// Соль генерируется bcrypt для каждого вызова, поэтому одинаковые пароли
// дают разные хэши.
func GetHashWithCost(password string, cost int) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, ErrMismatch при
// несовпадении и другую ошибку, если хэш повреждён.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	if errors.Is(err, ErrMismatch) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err != nil {
		return fmt.Errorf("%s: malformed hash: %w", op, err)
	}
	return nil
}
