// Package storage реализует хранилище пользователей ProfitPath в одном
// JSON-файле. Контракт - явный цикл load-mutate-save: Load читает весь набор
// записей, Save атомарно заменяет его целиком.
//
// Одновременные записи из разных запросов не координируются: побеждает
// последняя запись. Это допустимо для развёртывания в одном процессе.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/profitpath/internal/lib/symbol"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

// Storage - файловое хранилище пользователей.
type Storage struct {
	path     string
	validate *validator.Validate
}

// New создаёт хранилище для файла path. Сам файл создаётся при первом Save.
func New(path string) (*Storage, error) {
	const op = "storage.New"
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%s: empty users path", op)
	}
	return &Storage{
		path:     path,
		validate: validator.New(),
	}, nil
}

// Path возвращает путь к файлу хранилища.
func (s *Storage) Path() string {
	return s.path
}

// Load возвращает все записи пользователей.
//
// Отсутствующий или пустой файл - пустой список без ошибки. Нечитаемый файл
// или записи неизвестной формы дают ошибку models.ErrStorageFailure.
func (s *Storage) Load(ctx context.Context) ([]models.User, error) {
	const op = "storage.Load"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrStorageFailure, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&users); err != nil {
		return nil, fmt.Errorf("%s: %w: decode %s: %v", op, models.ErrStorageFailure, s.path, err)
	}
	if users == nil {
		users = []models.User{}
	}

	for i := range users {
		users[i].Favorites = normalizeFavorites(users[i].Favorites)
	}
	if err := s.check(users); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrStorageFailure, err)
	}
	return users, nil
}

// Save атомарно заменяет весь набор записей: данные пишутся во временный
// файл рядом с целевым и переименовываются поверх него, поэтому читатели
// никогда не видят частично записанный набор.
func (s *Storage) Save(ctx context.Context, users []models.User) error {
	const op = "storage.Save"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if users == nil {
		users = []models.User{}
	}
	if err := s.check(users); err != nil {
		return fmt.Errorf("%s: %w: %v", op, models.ErrStorageFailure, err)
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, models.ErrStorageFailure, err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("%s: %w: %v", op, models.ErrStorageFailure, err)
	}
	return nil
}

// check проверяет форму записей и уникальность username/email без учёта регистра.
func (s *Storage) check(users []models.User) error {
	ids := make(map[string]struct{}, len(users))
	usernames := make(map[string]struct{}, len(users))
	emails := make(map[string]struct{}, len(users))
	for i := range users {
		u := &users[i]
		if err := s.validate.Struct(u); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if len(u.Favorites) > models.MaxFavorites {
			return fmt.Errorf("record %d: %d favorites exceed limit %d", i, len(u.Favorites), models.MaxFavorites)
		}
		if _, ok := ids[u.ID]; ok {
			return fmt.Errorf("record %d: duplicate id %q", i, u.ID)
		}
		ids[u.ID] = struct{}{}
		username := strings.ToLower(u.Username)
		if _, ok := usernames[username]; ok {
			return fmt.Errorf("record %d: duplicate username %q", i, u.Username)
		}
		usernames[username] = struct{}{}
		email := strings.ToLower(u.Email)
		if _, ok := emails[email]; ok {
			return fmt.Errorf("record %d: duplicate email %q", i, u.Email)
		}
		emails[email] = struct{}{}
	}
	return nil
}

// normalizeFavorites приводит сохранённые тикеры к каноническому виду:
// верхний регистр, без дубликатов и мусора, не больше MaxFavorites.
func normalizeFavorites(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		s, err := symbol.Normalize(r)
		if err != nil {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == models.MaxFavorites {
			break
		}
	}
	return out
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp: %w", err)
	}
	return nil
}
