package transform

import (
	"sort"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/normalize"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ProductDimensionProcessor отвечает за построение измерения товаров
type ProductDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewProductDimensionProcessor создает новый экземпляр ProductDimensionProcessor
func NewProductDimensionProcessor(logger *utils.ETLLogger) *ProductDimensionProcessor {
	return &ProductDimensionProcessor{
		logger: logger,
	}
}

// Process строит дедуплицированное измерение товаров по ключу stock_code.
// Среди дубликатов выживает первая запись во входном порядке. Цена записи:
// распарсенная, иначе медиана цен этого товара из строк продаж, иначе 0
func (p *ProductDimensionProcessor) Process(records []models.RawRecord, medians map[string]float64) ([]models.ProductDimension, int, error) {
	p.logger.Debug("Обработка измерения товаров...")

	survivors := make(map[string]models.RawRecord)
	dropped := 0

	for _, record := range records {
		naturalKey, ok := normalize.CleanText(record.Field("stock_code"))
		if !ok {
			dropped++
			continue
		}

		if _, exists := survivors[naturalKey]; !exists {
			survivors[naturalKey] = record
		}
	}

	if dropped > 0 {
		p.logger.Info("Отброшено записей товаров без натурального ключа: %d", dropped)
	}

	// Назначаем суррогатные ключи по возрастанию натурального ключа
	naturalKeys := make([]string, 0, len(survivors))
	for key := range survivors {
		naturalKeys = append(naturalKeys, key)
	}
	sort.Strings(naturalKeys)

	dimension := make([]models.ProductDimension, 0, len(naturalKeys))
	for i, key := range naturalKeys {
		record := survivors[key]

		description, _ := normalize.TitleText(record.Field("description"))
		category, _ := normalize.TitleText(record.Field("category"))
		brand, _ := normalize.TitleText(record.Field("brand"))

		// Разрешаем цену: собственная, медианная, ноль
		unitPrice, ok := normalize.ParseDecimal(record.Field("unit_price"))
		if !ok {
			unitPrice = medians[key] // нулевое значение, если медианы нет
		}

		dimension = append(dimension, models.ProductDimension{
			ProductKey:  i + 1,
			StockCode:   key,
			Description: description,
			UnitPrice:   unitPrice,
			Category:    category,
			Brand:       brand,
		})
	}

	p.logger.Info("Обработано измерение товаров. Записей: %d", len(dimension))
	return dimension, dropped, nil
}
