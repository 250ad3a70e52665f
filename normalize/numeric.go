package normalize

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Полное соответствие знаковому десятичному числу после зачистки мусора
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseDecimal извлекает десятичное значение из зашумленного текста.
// Валютные символы и разделители удаляются; цифры, точки и знаки сохраняются,
// и остаток обязан полностью соответствовать знаковому десятичному шаблону.
// Вторая точка или знак среди цифр делают значение нераспознанным
func ParseDecimal(raw string) (float64, bool) {
	cleaned, ok := CleanText(raw)
	if !ok {
		return 0, false
	}

	var b strings.Builder
	for _, r := range cleaned {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			b.WriteRune(r)
		}
	}

	candidate := b.String()
	if !decimalPattern.MatchString(candidate) {
		return 0, false
	}

	value, err := strconv.ParseFloat(candidate, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ParseQuantity извлекает целочисленное количество. Десятичный текст с нулевой
// дробной частью ("3.0") принимается, любая другая дробь нераспознана
func ParseQuantity(raw string) (int, bool) {
	value, ok := ParseDecimal(raw)
	if !ok {
		return 0, false
	}
	if value != math.Trunc(value) {
		return 0, false
	}
	return int(value), true
}

// Median возвращает медиану набора значений со стандартной интерполяцией
// для четного количества элементов. Пустой набор нераспознан
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// Round2 округляет значение до 2 знаков после запятой
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
