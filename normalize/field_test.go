package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		resolved bool
	}{
		{"обычное значение", "C100", "C100", true},
		{"окружающие пробелы", "  C100  ", "C100", true},
		{"пустая строка", "", "", false},
		{"только пробелы", "   \t ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanText(tt.raw)
			assert.Equal(t, tt.resolved, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitleText(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		resolved bool
	}{
		{"верхний регистр", "UNITED KINGDOM", "United Kingdom", true},
		{"нижний регистр с пробелами", "  john smith ", "John Smith", true},
		{"уже нормализовано", "France", "France", true},
		{"пустое значение", "  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TitleText(tt.raw)
			assert.Equal(t, tt.resolved, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Нормализация идемпотентна: повторный прогон не меняет результат.
// На этом свойстве держится эквивалентность порядков clean-then-load
// и load-then-clean
func TestTitleTextIdempotent(t *testing.T) {
	first, ok := TitleText("  MIXED case VALUE ")
	assert.True(t, ok)

	second, ok := TitleText(first)
	assert.True(t, ok)
	assert.Equal(t, first, second)
}
