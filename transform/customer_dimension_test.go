package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

func TestCustomerDimensionDeduplication(t *testing.T) {
	processor := NewCustomerDimensionProcessor(utils.NewNopLogger())

	// Два дубликата C100: выживает запись с более поздней датой регистрации
	records := []models.RawRecord{
		rawCustomer("C100", "old name", "france", "2019-01-01"),
		rawCustomer("C100", "new name", "france", "2020-06-01"),
	}

	dimension, dropped, err := processor.Process(records)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, dimension, 1)

	row := dimension[0]
	assert.Equal(t, 1, row.CustomerKey)
	assert.Equal(t, "C100", row.CustomerID)
	assert.Equal(t, "New Name", row.Name)
	assert.True(t, row.SignupDate.Equal(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCustomerDimensionSurrogateKeyOrder(t *testing.T) {
	processor := NewCustomerDimensionProcessor(utils.NewNopLogger())

	// Суррогатные ключи назначаются по возрастанию натурального ключа,
	// независимо от входного порядка
	records := []models.RawRecord{
		rawCustomer("C300", "c", "spain", "2020-01-01"),
		rawCustomer("C100", "a", "france", "2020-01-01"),
		rawCustomer("C200", "b", "italy", "2020-01-01"),
	}

	dimension, _, err := processor.Process(records)
	require.NoError(t, err)
	require.Len(t, dimension, 3)

	assert.Equal(t, []string{"C100", "C200", "C300"},
		[]string{dimension[0].CustomerID, dimension[1].CustomerID, dimension[2].CustomerID})
	assert.Equal(t, []int{1, 2, 3},
		[]int{dimension[0].CustomerKey, dimension[1].CustomerKey, dimension[2].CustomerKey})
}

func TestCustomerDimensionEmptyNaturalKeyDropped(t *testing.T) {
	processor := NewCustomerDimensionProcessor(utils.NewNopLogger())

	records := []models.RawRecord{
		rawCustomer("  ", "nameless", "france", "2020-01-01"),
		rawCustomer("C100", "kept", "france", "2020-01-01"),
	}

	dimension, dropped, err := processor.Process(records)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	require.Len(t, dimension, 1)
	assert.Equal(t, "C100", dimension[0].CustomerID)
}

func TestCustomerDimensionTieBreaks(t *testing.T) {
	processor := NewCustomerDimensionProcessor(utils.NewNopLogger())

	t.Run("распознанная дата сильнее нераспознанной", func(t *testing.T) {
		records := []models.RawRecord{
			rawCustomer("C100", "undated", "france", "not a date"),
			rawCustomer("C100", "dated", "france", "2019-01-01"),
		}

		dimension, _, err := processor.Process(records)
		require.NoError(t, err)
		require.Len(t, dimension, 1)
		assert.Equal(t, "Dated", dimension[0].Name)
	})

	t.Run("при равных датах выживает первая во входном порядке", func(t *testing.T) {
		records := []models.RawRecord{
			rawCustomer("C100", "first", "france", "2020-01-01"),
			rawCustomer("C100", "second", "france", "2020-01-01"),
		}

		dimension, _, err := processor.Process(records)
		require.NoError(t, err)
		require.Len(t, dimension, 1)
		assert.Equal(t, "First", dimension[0].Name)
	})

	t.Run("нераспознанная дата дает нулевое время", func(t *testing.T) {
		records := []models.RawRecord{
			rawCustomer("C100", "undated", "france", "garbage"),
		}

		dimension, _, err := processor.Process(records)
		require.NoError(t, err)
		require.Len(t, dimension, 1)
		assert.True(t, dimension[0].SignupDate.IsZero())
	})
}
