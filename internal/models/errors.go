package models

import "errors"

var (
	// ErrNotFound - пользователь или запись не найдены.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials - пароль не совпал.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict - username или email уже заняты.
	ErrConflict = errors.New("user already exists")
	// ErrInvalidSymbol - тикер не прошёл проверку формата.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrUnauthenticated - сессия отсутствует, повреждена или истекла.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrStorageFailure - файл хранилища не читается или не пишется.
	ErrStorageFailure = errors.New("storage failure")
	// ErrInvalidInput - входные данные не прошли проверку.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream - внешний провайдер вернул ошибку или непригодный ответ.
	ErrUpstream = errors.New("upstream failure")
	// ErrServiceDisabled - функциональность выключена конфигурацией (нет ключа API).
	ErrServiceDisabled = errors.New("service disabled")
)
