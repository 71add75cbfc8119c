// Package symbol проверяет и нормализует биржевые тикеры.
package symbol

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/magabrotheeeer/profitpath/internal/models"
)

var pattern = regexp.MustCompile(`^[A-Z.\-]{1,10}$`)

// Normalize приводит тикер к верхнему регистру и проверяет формат.
func Normalize(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !pattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidSymbol, raw)
	}
	return s, nil
}

// NormalizeList нормализует список тикеров, сохраняя порядок и убирая дубликаты.
// Первый невалидный тикер прерывает разбор.
func NormalizeList(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		s, err := Normalize(r)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// SplitList разбирает строку вида "AAPL, tsla," в нормализованный список.
// Пустые элементы пропускаются.
func SplitList(csv string) ([]string, error) {
	var parts []string
	for _, p := range strings.Split(csv, ",") {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return NormalizeList(parts)
}
