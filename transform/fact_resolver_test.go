package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// testLookups строит таблицы поиска над маленькой звездой:
// клиент C100, товар SKU-1 с разрешённой ценой 9.99,
// календарные записи за 2020-03-01 10:15:00 и полночь того же дня
func testLookups() DimensionLookups {
	customers := []models.CustomerDimension{
		{CustomerKey: 1, CustomerID: "C100"},
	}
	products := []models.ProductDimension{
		{ProductKey: 1, StockCode: "SKU-1", UnitPrice: 9.99},
	}
	calendar := []models.CalendarDimension{
		{CalendarKey: 20200301101500},
		{CalendarKey: 20200301000000},
	}
	return BuildLookups(customers, products, calendar)
}

func TestFactResolverResolvesValidRow(t *testing.T) {
	resolver := NewFactResolverProcessor(utils.NewNopLogger())

	sales := []models.RawRecord{
		rawSale("INV-1", "SKU-1", "C100", "2", "5.00", "10.00", "2020-03-01 10:15:00"),
	}

	facts, quarantine := resolver.Process(sales, testLookups())
	require.Len(t, facts, 1)
	assert.Empty(t, quarantine)

	fact := facts[0]
	assert.Equal(t, int64(20200301101500), fact.CalendarKey)
	assert.Equal(t, 1, fact.ProductKey)
	assert.Equal(t, 1, fact.CustomerKey)
	assert.Equal(t, "INV-1", fact.InvoiceID)
	assert.Equal(t, 2, fact.Quantity)
	assert.InDelta(t, 5.00, fact.UnitPrice, 1e-9)
	assert.InDelta(t, 10.00, fact.TotalAmount, 1e-9)
}

func TestFactResolverMeasureFallbacks(t *testing.T) {
	resolver := NewFactResolverProcessor(utils.NewNopLogger())

	t.Run("нераспознанная цена замещается разрешённой ценой товара", func(t *testing.T) {
		sales := []models.RawRecord{
			rawSale("INV-1", "SKU-1", "C100", "2", "N/A", "", "2020-03-01 10:15:00"),
		}

		facts, quarantine := resolver.Process(sales, testLookups())
		require.Len(t, facts, 1)
		assert.Empty(t, quarantine)
		assert.InDelta(t, 9.99, facts[0].UnitPrice, 1e-9)
		assert.InDelta(t, 19.98, facts[0].TotalAmount, 1e-9)
	})

	t.Run("плохое количество дает явный ноль, строка загружается", func(t *testing.T) {
		sales := []models.RawRecord{
			rawSale("INV-1", "SKU-1", "C100", "garbage", "5.00", "", "2020-03-01 10:15:00"),
		}

		facts, quarantine := resolver.Process(sales, testLookups())
		require.Len(t, facts, 1)
		assert.Empty(t, quarantine)
		assert.Zero(t, facts[0].Quantity)
		assert.Zero(t, facts[0].TotalAmount)
	})

	t.Run("нулевая сумма пересчитывается из количества и цены", func(t *testing.T) {
		sales := []models.RawRecord{
			rawSale("INV-1", "SKU-1", "C100", "3", "3.333", "0", "2020-03-01 10:15:00"),
		}

		facts, _ := resolver.Process(sales, testLookups())
		require.Len(t, facts, 1)
		assert.InDelta(t, 10.00, facts[0].TotalAmount, 1e-9)
	})

	t.Run("присутствующая ненулевая сумма сохраняется", func(t *testing.T) {
		sales := []models.RawRecord{
			rawSale("INV-1", "SKU-1", "C100", "3", "3.00", "8.99", "2020-03-01 10:15:00"),
		}

		facts, _ := resolver.Process(sales, testLookups())
		require.Len(t, facts, 1)
		assert.InDelta(t, 8.99, facts[0].TotalAmount, 1e-9)
	})
}

func TestFactResolverQuarantineReasons(t *testing.T) {
	resolver := NewFactResolverProcessor(utils.NewNopLogger())

	tests := []struct {
		name   string
		record models.RawRecord
		reason string
	}{
		{
			"неизвестный товар",
			rawSale("INV-1", "SKU-404", "C100", "1", "1.00", "", "2020-03-01 10:15:00"),
			models.ReasonMissingProduct,
		},
		{
			"неизвестный клиент",
			rawSale("INV-1", "SKU-1", "C404", "1", "1.00", "", "2020-03-01 10:15:00"),
			models.ReasonMissingCustomer,
		},
		{
			"неизвестны и товар, и клиент",
			rawSale("INV-1", "SKU-404", "C404", "1", "1.00", "", "2020-03-01 10:15:00"),
			models.ReasonMissingProductAndCustomer,
		},
		{
			"момент вне календарного измерения",
			rawSale("INV-1", "SKU-1", "C100", "1", "1.00", "", "2020-12-31 23:59:59"),
			models.ReasonMissingCalendar,
		},
		{
			"нераспознаваемая дата",
			rawSale("INV-1", "SKU-1", "C100", "1", "1.00", "", "yesterday"),
			models.ReasonMissingCalendar,
		},
		{
			"пустой идентификатор счета",
			rawSale("  ", "SKU-1", "C100", "1", "1.00", "", "2020-03-01 10:15:00"),
			models.ReasonMissingInvoice,
		},
		{
			"приоритет: товар старше календаря",
			rawSale("INV-1", "SKU-404", "C100", "1", "1.00", "", "yesterday"),
			models.ReasonMissingProduct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts, quarantine := resolver.Process([]models.RawRecord{tt.record}, testLookups())
			assert.Empty(t, facts)
			require.Len(t, quarantine, 1)

			entry := quarantine[0]
			assert.Equal(t, tt.reason, entry.Reason)
			assert.Equal(t, models.SourceSales, entry.SourceTable)
			assert.NotEmpty(t, entry.EntryID)
			assert.Equal(t, tt.record.Fields, entry.RawRecord.Fields)
		})
	}
}

// Сохранение количества: каждая входная строка становится либо фактом,
// либо записью карантина
func TestFactResolverConservation(t *testing.T) {
	resolver := NewFactResolverProcessor(utils.NewNopLogger())

	sales := []models.RawRecord{
		rawSale("INV-1", "SKU-1", "C100", "1", "1.00", "", "2020-03-01 10:15:00"),
		rawSale("INV-2", "SKU-404", "C100", "1", "1.00", "", "2020-03-01 10:15:00"),
		rawSale("", "SKU-1", "C100", "1", "1.00", "", "2020-03-01 10:15:00"),
		rawSale("INV-4", "SKU-1", "C404", "1", "1.00", "", "2020-03-01 10:15:00"),
	}

	facts, quarantine := resolver.Process(sales, testLookups())
	assert.Equal(t, len(sales), len(facts)+len(quarantine))
}

// Строки независимы: перестановка входа не меняет множество результатов
func TestFactResolverOrderIndependence(t *testing.T) {
	resolver := NewFactResolverProcessor(utils.NewNopLogger())

	sales := []models.RawRecord{
		rawSale("INV-1", "SKU-1", "C100", "1", "2.00", "", "2020-03-01 10:15:00"),
		rawSale("INV-2", "SKU-404", "C100", "1", "2.00", "", "2020-03-01 10:15:00"),
		rawSale("INV-3", "SKU-1", "C100", "5", "1.50", "", "01/03/2020"),
	}
	reversed := []models.RawRecord{sales[2], sales[1], sales[0]}

	factsA, quarantineA := resolver.Process(sales, testLookups())
	factsB, quarantineB := resolver.Process(reversed, testLookups())

	assert.ElementsMatch(t, factsA, factsB)
	assert.Len(t, quarantineB, len(quarantineA))
}
