package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

func TestCalendarDimensionCollectsAllSources(t *testing.T) {
	processor := NewCalendarDimensionProcessor(utils.NewNopLogger())

	// Календарное измерение обязано содержать моменты из всех источников с
	// полями даты, иначе разрешение фактов отбракует валидные строки
	data := &models.ExtractedData{
		Customers: []models.RawRecord{
			rawCustomer("C100", "a", "france", "2019-05-20"),
		},
		Sales: []models.RawRecord{
			rawSale("INV-1", "SKU-1", "C100", "1", "1.00", "", "2020-03-01 10:15:00"),
		},
		Calendar: []models.RawRecord{
			rawCalendar("2021-01-01 00:00:00"),
		},
	}

	dimension, err := processor.Process(data)
	require.NoError(t, err)
	require.Len(t, dimension, 3)

	keys := make([]int64, 0, len(dimension))
	for _, row := range dimension {
		keys = append(keys, row.CalendarKey)
	}
	assert.Equal(t, []int64{20190520000000, 20200301101500, 20210101000000}, keys)
}

func TestCalendarDimensionDerivedFields(t *testing.T) {
	processor := NewCalendarDimensionProcessor(utils.NewNopLogger())

	data := &models.ExtractedData{
		Calendar: []models.RawRecord{
			rawCalendar("2020-03-01 10:15:00"),
		},
	}

	dimension, err := processor.Process(data)
	require.NoError(t, err)
	require.Len(t, dimension, 1)

	row := dimension[0]
	assert.Equal(t, int64(20200301101500), row.CalendarKey)
	assert.Equal(t, "2020-03-01", row.FullDate)
	assert.Equal(t, "10:15:00", row.TimeOfDay)
	assert.Equal(t, 2020, row.Year)
	assert.Equal(t, 3, row.Month)
	assert.Equal(t, 1, row.Day)
	assert.Equal(t, 10, row.Hour)
	assert.Equal(t, 15, row.Minute)
	assert.Equal(t, 0, row.Second)
	assert.Equal(t, 1, row.Quarter)
	// 2020-03-01 воскресенье
	assert.Equal(t, "Sunday", row.WeekdayName)
	assert.True(t, row.IsWeekend)
}

func TestCalendarDimensionMidnightDefault(t *testing.T) {
	processor := NewCalendarDimensionProcessor(utils.NewNopLogger())

	data := &models.ExtractedData{
		Calendar: []models.RawRecord{
			rawCalendar("01/03/2020"),
		},
	}

	dimension, err := processor.Process(data)
	require.NoError(t, err)
	require.Len(t, dimension, 1)
	assert.Equal(t, int64(20200301000000), dimension[0].CalendarKey)
	assert.Equal(t, "00:00:00", dimension[0].TimeOfDay)
}

func TestCalendarDimensionSameSecondCollapse(t *testing.T) {
	processor := NewCalendarDimensionProcessor(utils.NewNopLogger())

	// Разные записи в пределах одной секунды дают одну запись измерения
	data := &models.ExtractedData{
		Calendar: []models.RawRecord{
			rawCalendar("2020-03-01 10:15:00"),
			rawCalendar("2020-03-01 10:15:00.250"),
			rawCalendar("2020-03-01 10:15:00.999"),
		},
	}

	dimension, err := processor.Process(data)
	require.NoError(t, err)
	require.Len(t, dimension, 1)
	assert.Equal(t, int64(20200301101500), dimension[0].CalendarKey)
}

func TestCalendarDimensionSkipsUnparseable(t *testing.T) {
	processor := NewCalendarDimensionProcessor(utils.NewNopLogger())

	data := &models.ExtractedData{
		Calendar: []models.RawRecord{
			rawCalendar("not a timestamp"),
			rawCalendar(""),
			rawCalendar("2020-03-01"),
		},
	}

	dimension, err := processor.Process(data)
	require.NoError(t, err)
	require.Len(t, dimension, 1)
}
