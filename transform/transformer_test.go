package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

func quarantineReasons(entries []models.QuarantineEntry) map[string]int {
	reasons := make(map[string]int)
	for _, entry := range entries {
		reasons[entry.Reason]++
	}
	return reasons
}

func TestTransformerProducesConformedStar(t *testing.T) {
	transformer := NewTransformer(utils.NewNopLogger(), CleanFirstStrategy{})

	result, err := transformer.Transform(sampleData())
	require.NoError(t, err)

	assert.Len(t, result.Customers, 2)
	assert.Len(t, result.Products, 2)
	// Моменты: 10:15:00 и полночь 2020-03-01, полночь 2020-06-01 (регистрация),
	// полночь 2020-03-01 от C200 совпадает с датой INV-3, 2020-03-02 из календаря
	assert.Len(t, result.Calendar, 4)
	assert.Len(t, result.Facts, 3)
	assert.Empty(t, result.Quarantine)

	// Ни одного осиротевшего факта: каждая ссылка разрешается в измерение
	lookups := BuildLookups(result.Customers, result.Products, result.Calendar)
	productKeys := make(map[int]bool)
	for _, p := range result.Products {
		productKeys[p.ProductKey] = true
	}
	customerKeys := make(map[int]bool)
	for _, c := range result.Customers {
		customerKeys[c.CustomerKey] = true
	}
	for _, fact := range result.Facts {
		assert.True(t, productKeys[fact.ProductKey])
		assert.True(t, customerKeys[fact.CustomerKey])
		assert.True(t, lookups.Calendar[fact.CalendarKey])
	}
}

// Обе стратегии упорядочивания должны давать эквивалентные результаты
func TestTransformerStrategiesEquivalent(t *testing.T) {
	cleanFirst := NewTransformer(utils.NewNopLogger(), CleanFirstStrategy{})
	loadFirst := NewTransformer(utils.NewNopLogger(), LoadFirstStrategy{})

	resultA, err := cleanFirst.Transform(sampleData())
	require.NoError(t, err)

	resultB, err := loadFirst.Transform(sampleData())
	require.NoError(t, err)

	assert.Equal(t, resultA.Customers, resultB.Customers)
	assert.Equal(t, resultA.Products, resultB.Products)
	assert.Equal(t, resultA.Calendar, resultB.Calendar)
	assert.Equal(t, resultA.Facts, resultB.Facts)
	assert.Equal(t, quarantineReasons(resultA.Quarantine), quarantineReasons(resultB.Quarantine))
}

// Идемпотентность: повторный запуск на неизменном входе дает идентичное
// содержимое таблиц
func TestTransformerIdempotent(t *testing.T) {
	transformer := NewTransformer(utils.NewNopLogger(), CleanFirstStrategy{})

	first, err := transformer.Transform(sampleData())
	require.NoError(t, err)

	second, err := transformer.Transform(sampleData())
	require.NoError(t, err)

	assert.Equal(t, first.Customers, second.Customers)
	assert.Equal(t, first.Products, second.Products)
	assert.Equal(t, first.Calendar, second.Calendar)
	assert.Equal(t, first.Facts, second.Facts)
}

// Вход не мутирует: исходные сырые записи остаются нетронутыми
func TestTransformerDoesNotMutateInput(t *testing.T) {
	transformer := NewTransformer(utils.NewNopLogger(), CleanFirstStrategy{})

	data := sampleData()
	original := sampleData()

	_, err := transformer.Transform(data)
	require.NoError(t, err)

	assert.Equal(t, original.Customers, data.Customers)
	assert.Equal(t, original.Products, data.Products)
	assert.Equal(t, original.Sales, data.Sales)
	assert.Equal(t, original.Calendar, data.Calendar)
}

// Структурная ошибка: измерение без единой записи фатально для запуска
func TestTransformerStructuralFailure(t *testing.T) {
	transformer := NewTransformer(utils.NewNopLogger(), CleanFirstStrategy{})

	t.Run("пустое измерение товаров", func(t *testing.T) {
		data := sampleData()
		data.Products = nil

		_, err := transformer.Transform(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "товаров")
	})

	t.Run("пустое измерение клиентов", func(t *testing.T) {
		data := sampleData()
		data.Customers = nil

		_, err := transformer.Transform(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "клиентов")
	})

	t.Run("пустое календарное измерение", func(t *testing.T) {
		data := sampleData()
		data.Calendar = nil
		// Убираем все распознаваемые даты из остальных источников
		for i := range data.Customers {
			data.Customers[i].Fields["signup_date"] = ""
		}
		for i := range data.Sales {
			data.Sales[i].Fields["invoice_date"] = "junk"
		}

		_, err := transformer.Transform(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "календарное")
	})
}

// Сохранение количества на уровне всего запуска, в обеих формах:
// факты + весь карантин = все входные строки;
// факты + карантин без причины "missing invoice id" = строки с непустым счетом
func TestTransformerConservation(t *testing.T) {
	data := sampleData()
	data.Sales = append(data.Sales,
		rawSale("", "SKU-1", "C100", "1", "1.00", "", "2020-03-01 10:15:00"),
		rawSale("INV-9", "SKU-404", "C100", "1", "1.00", "", "2020-03-01 10:15:00"),
	)

	transformer := NewTransformer(utils.NewNopLogger(), CleanFirstStrategy{})
	result, err := transformer.Transform(data)
	require.NoError(t, err)

	assert.Equal(t, len(data.Sales), len(result.Facts)+len(result.Quarantine))

	nonEmptyInvoice := 0
	for _, record := range data.Sales {
		if record.Field("invoice_no") != "" {
			nonEmptyInvoice++
		}
	}
	attributable := len(result.Quarantine) - quarantineReasons(result.Quarantine)[models.ReasonMissingInvoice]
	assert.Equal(t, nonEmptyInvoice, len(result.Facts)+attributable)
}

func TestTransformerMetadata(t *testing.T) {
	data := sampleData()
	data.Sales = append(data.Sales,
		rawSale("INV-9", "SKU-404", "C404", "1", "1.00", "", "2020-03-01 10:15:00"),
	)

	transformer := NewTransformer(utils.NewNopLogger(), LoadFirstStrategy{})
	result, err := transformer.Transform(data)
	require.NoError(t, err)

	metadata := result.Metadata
	assert.Equal(t, "load-first", metadata.Strategy)
	assert.Equal(t, 4, metadata.SalesRowsRead)
	assert.Equal(t, 2, metadata.CustomersLoaded)
	assert.Equal(t, 2, metadata.ProductsLoaded)
	assert.Equal(t, 3, metadata.FactsResolved)
	assert.Equal(t, 1, metadata.RowsQuarantined)
	assert.Equal(t, 1, metadata.QuarantineByReason[models.ReasonMissingProductAndCustomer])
}
