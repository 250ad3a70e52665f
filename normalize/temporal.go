package normalize

import (
	"strconv"
	"time"
)

// Допустимые входные шаблоны даты/времени. Все остальное, включая частично
// совпадающие строки, считается нераспознанным.
// Дробная часть секунд усекается, а не округляется
var instantLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05.999999999",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseInstant разрешает разнородный текст даты/времени в канонический момент
// с точностью до секунды. Принимаются только шаблоны
// YYYY-MM-DD[ HH:MM[:SS]] и DD/MM/YYYY[ HH:MM[:SS]], время по умолчанию полночь
func ParseInstant(raw string) (time.Time, bool) {
	cleaned, ok := CleanText(raw)
	if !ok {
		return time.Time{}, false
	}

	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, time.UTC); err == nil {
			return t.Truncate(time.Second), true
		}
	}
	return time.Time{}, false
}

// TimeKey возвращает суррогатный ключ календарного измерения: момент в формате
// YYYYMMDDHHMMSS как 14-значное целое. Два момента внутри одной секунды
// намеренно получают один ключ
func TimeKey(t time.Time) int64 {
	key, _ := strconv.ParseInt(t.Format("20060102150405"), 10, 64)
	return key
}

// Quarter возвращает календарный квартал (1-4)
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// IsWeekend сообщает, приходится ли момент на субботу или воскресенье
func IsWeekend(t time.Time) bool {
	weekday := t.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}
