package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     float64
		resolved bool
	}{
		{"простое число", "9.99", 9.99, true},
		{"валютный мусор", "£ 9.99", 9.99, true},
		{"разделители тысяч", "1,234.50", 1234.5, true},
		{"отрицательное", "-3.5", -3.5, true},
		{"знак плюс", "+12", 12, true},
		{"целое", "42", 42, true},
		{"текстовая заглушка", "N/A", 0, false},
		{"пустая строка", "", 0, false},
		{"только знак", "-", 0, false},
		{"две точки остаются мусором", "1.2.3", 0, false},
		{"знак среди цифр остается мусором", "5-3", 0, false},
		{"двойной знак остается мусором", "--2", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDecimal(tt.raw)
			assert.Equal(t, tt.resolved, ok)
			if tt.resolved {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     int
		resolved bool
	}{
		{"целое", "6", 6, true},
		{"целое с дробным нулем", "3.0", 3, true},
		{"отрицательное (возврат)", "-2", -2, true},
		{"дробное количество", "2.5", 0, false},
		{"мусор", "six", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseQuantity(tt.raw)
			assert.Equal(t, tt.resolved, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMedian(t *testing.T) {
	t.Run("нечетное количество", func(t *testing.T) {
		m, ok := Median([]float64{5, 1, 9})
		assert.True(t, ok)
		assert.InDelta(t, 5.0, m, 1e-9)
	})

	t.Run("четное количество интерполируется", func(t *testing.T) {
		m, ok := Median([]float64{4, 1, 3, 2})
		assert.True(t, ok)
		assert.InDelta(t, 2.5, m, 1e-9)
	})

	t.Run("пустой набор нераспознан", func(t *testing.T) {
		_, ok := Median(nil)
		assert.False(t, ok)
	})

	t.Run("исходный срез не мутирует", func(t *testing.T) {
		values := []float64{3, 1, 2}
		_, _ = Median(values)
		assert.Equal(t, []float64{3, 1, 2}, values)
	})

	// Детерминизм фолбэка: одинаковый вход дает одинаковую медиану
	t.Run("детерминированность", func(t *testing.T) {
		values := []float64{7.5, 2.25, 9.99, 2.25}
		first, _ := Median(values)
		second, _ := Median(values)
		assert.Equal(t, first, second)
	})
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 19.98, Round2(2*9.99), 1e-9)
	assert.InDelta(t, 0.35, Round2(0.345), 1e-9)
	assert.InDelta(t, -1.23, Round2(-1.2349), 1e-9)
}
