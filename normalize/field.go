// Package normalize содержит чистые функции очистки сырых значений.
// Каждая функция возвращает типизированное значение либо явный признак
// "не распознано"; некорректный ввод никогда не коэрцируется молча
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// CleanText убирает окружающие пробелы; пустая после очистки строка
// считается нераспознанной
func CleanText(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// TitleText очищает текстовое поле и приводит его к заглавному регистру слов
// ("JOHN SMITH" -> "John Smith")
func TitleText(raw string) (string, bool) {
	cleaned, ok := CleanText(raw)
	if !ok {
		return "", false
	}
	return titleCaser.String(cleaned), true
}
