// Package favorites реализует список избранных тикеров пользователя.
//
// Каждое изменение - полный цикл load-mutate-save через хранилище
// пользователей, без кеша в памяти.
package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/lib/symbol"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// UserStore - хранилище записей пользователей.
type UserStore interface {
	Load(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, users []models.User) error
}

// Service управляет избранным пользователей.
type Service struct {
	users UserStore
	log   *slog.Logger
}

// NewService создаёт Service.
func NewService(users UserStore, log *slog.Logger) *Service {
	return &Service{
		users: users,
		log:   log,
	}
}

// List возвращает избранное пользователя. Для неизвестного пользователя
// и нечитаемого хранилища - пустой список.
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	const op = "services.favorites.List"
	users, err := s.users.Load(ctx)
	if err != nil {
		s.log.Warn("users storage unreadable, returning empty favorites", slog.String("op", op), sl.Err(err))
		return []string{}, nil
	}
	idx := indexOf(users, userID)
	if idx < 0 {
		return []string{}, nil
	}
	return cloneList(users[idx].Favorites), nil
}

// Add добавляет тикер в избранное.
//
// Тикер приводится к верхнему регистру и проверяется по формату. Если
// список уже содержит MaxFavorites тикеров, новый тикер молча отбрасывается.
func (s *Service) Add(ctx context.Context, userID, raw string) ([]string, error) {
	const op = "services.favorites.Add"
	sym, err := symbol.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	idx := indexOf(users, userID)
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	users[idx].Favorites = appendCapped(users[idx].Favorites, sym)
	if err := s.users.Save(ctx, users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cloneList(users[idx].Favorites), nil
}

// Remove удаляет тикер из избранного без учёта регистра. Отсутствующий
// тикер - не ошибка, список возвращается без изменений.
func (s *Service) Remove(ctx context.Context, userID, raw string) ([]string, error) {
	const op = "services.favorites.Remove"
	target := strings.ToUpper(strings.TrimSpace(raw))

	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	idx := indexOf(users, userID)
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	kept := make([]string, 0, len(users[idx].Favorites))
	for _, f := range users[idx].Favorites {
		if strings.ToUpper(f) != target {
			kept = append(kept, f)
		}
	}
	users[idx].Favorites = kept

	if err := s.users.Save(ctx, users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cloneList(kept), nil
}

func appendCapped(list []string, sym string) []string {
	for _, f := range list {
		if strings.EqualFold(f, sym) {
			return list
		}
	}
	if len(list) >= models.MaxFavorites {
		return list
	}
	return append(list, sym)
}

func indexOf(users []models.User, userID string) int {
	if userID == "" {
		return -1
	}
	for i := range users {
		if users[i].ID == userID {
			return i
		}
	}
	return -1
}

func cloneList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
