// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель - упростить формирование структурированных полей лога,
// например, для передачи информации об ошибках.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
// Для nil-ошибки значение пустое, чтобы вызов был безопасен в любом месте.
//
// Пример:
//
//	log.Error("failed to save users", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Kind возвращает slog.Attr с категорией ошибки для логов, где сама ошибка
// не показывается клиенту, но различима при разборе инцидентов.
func Kind(kind string) slog.Attr {
	return slog.String("error_kind", kind)
}
