// Package services реализует регистрацию, вход и проверку сессии пользователей
// ProfitPath поверх файлового хранилища.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/profitpath/internal/lib/jwt"
	"github.com/magabrotheeeer/profitpath/internal/lib/password"
	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

const (
	// MinPasswordLength - минимальная длина пароля при регистрации.
	MinPasswordLength = 8
	// MaxPasswordBytes - предел bcrypt на длину пароля.
	MaxPasswordBytes = 72
)

// UserStore - хранилище записей пользователей с контрактом load-mutate-save.
type UserStore interface {
	Load(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, users []models.User) error
}

// TokenMaker выпускает и проверяет сессионные токены.
type TokenMaker interface {
	GenerateToken(identity models.Identity) (string, error)
	Verify(token string) (models.Identity, error)
}

// EventRecorder фиксирует события аутентификации для метрик.
type EventRecorder interface {
	AuthEvent(event, result string)
}

// AuthService реализует бизнес-логику регистрации и аутентификации.
type AuthService struct {
	users    UserStore
	tokens   TokenMaker
	events   EventRecorder
	log      *slog.Logger
	hashCost int
	now      func() time.Time
	newID    func() string
}

// NewAuthService создаёт AuthService. events может быть nil.
func NewAuthService(users UserStore, tokens TokenMaker, events EventRecorder, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		events:   events,
		log:      log,
		hashCost: password.Cost,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Register - создание нового пользователя с хэшированием пароля.
//
// Username и email должны быть уникальны без учёта регистра. При ошибке
// чтения хранилища регистрация не выполняется: сохранение поверх
// нечитаемого файла уничтожило бы существующие записи.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	const op = "services.auth.Register"

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Username == "" || in.Password == "" {
		s.record("register", "invalid")
		return nil, fmt.Errorf("%s: %w: all fields are required", op, models.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLength {
		s.record("register", "invalid")
		return nil, fmt.Errorf("%s: %w: password must be at least %d characters", op, models.ErrInvalidInput, MinPasswordLength)
	}

	users, err := s.users.Load(ctx)
	if err != nil {
		s.record("register", "error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range users {
		if strings.EqualFold(users[i].Username, in.Username) || strings.EqualFold(users[i].Email, in.Email) {
			s.record("register", "conflict")
			return nil, fmt.Errorf("%s: %w", op, models.ErrConflict)
		}
	}

	hashed, err := password.GetHashWithCost(in.Password, s.hashCost)
	if errors.Is(err, password.ErrTooLong) {
		s.record("register", "invalid")
		return nil, fmt.Errorf("%s: %w: password must be at most %d bytes", op, models.ErrInvalidInput, MaxPasswordBytes)
	}
	if err != nil {
		s.record("register", "error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:           s.newID(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hashed,
		Favorites:    []string{},
		CreatedAt:    s.now(),
	}
	users = append(users, user)

	if err := s.users.Save(ctx, users); err != nil {
		s.record("register", "error")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.record("register", "ok")
	s.log.Info("user registered", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return &user, nil
}

// Login - поиск пользователя по username или email, проверка пароля и
// выпуск сессионного токена.
//
// Ошибка чтения хранилища трактуется как отсутствие записей.
func (s *AuthService) Login(ctx context.Context, login, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	key := strings.TrimSpace(login)
	if key == "" || rawPassword == "" {
		s.record("login", "invalid")
		return "", nil, fmt.Errorf("%s: %w: login and password are required", op, models.ErrInvalidInput)
	}

	users := s.loadOrEmpty(ctx, op)

	var user *models.User
	for i := range users {
		if strings.EqualFold(users[i].Username, key) || strings.EqualFold(users[i].Email, key) {
			user = &users[i]
			break
		}
	}
	if user == nil {
		s.record("login", "not_found")
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Warn("stored password hash is malformed", slog.String("op", op), slog.String("user_id", user.ID), sl.Err(err))
		}
		s.record("login", "invalid_credentials")
		return "", nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(models.Identity{
		UserID: user.ID,
		Name:   user.DisplayName(),
		Email:  user.Email,
	})
	if err != nil {
		s.record("login", "error")
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	s.record("login", "ok")
	return token, user, nil
}

// Resolve проверяет сессионный токен и возвращает личность пользователя.
//
// Любая ошибка проверки превращается в models.ErrUnauthenticated; её
// категория попадает только в лог.
func (s *AuthService) Resolve(_ context.Context, token string) (models.Identity, error) {
	const op = "services.auth.Resolve"
	if token == "" {
		return models.Identity{}, fmt.Errorf("%s: %w: empty token", op, models.ErrUnauthenticated)
	}
	identity, err := s.tokens.Verify(token)
	if err != nil {
		s.record("resolve", jwt.Kind(err))
		s.log.Debug("session rejected", sl.Kind(jwt.Kind(err)), sl.Err(err))
		return models.Identity{}, fmt.Errorf("%s: %w", op, models.ErrUnauthenticated)
	}
	return identity, nil
}

// Me возвращает запись текущего пользователя.
func (s *AuthService) Me(ctx context.Context, identity models.Identity) (*models.User, error) {
	const op = "services.auth.Me"
	users := s.loadOrEmpty(ctx, op)
	for i := range users {
		if users[i].ID == identity.UserID {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
}

func (s *AuthService) loadOrEmpty(ctx context.Context, op string) []models.User {
	users, err := s.users.Load(ctx)
	if err != nil {
		s.log.Warn("users storage unreadable, treating as empty", slog.String("op", op), sl.Err(err))
		return nil
	}
	return users
}

func (s *AuthService) record(event, result string) {
	if s.events != nil {
		s.events.AuthEvent(event, result)
	}
}
