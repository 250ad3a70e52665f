package extractors

import (
	"database/sql"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ProductExtractor извлекает сырые записи товаров из staging БД
type ProductExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewProductExtractor создает новый экземпляр ProductExtractor
func NewProductExtractor(db *sql.DB, logger *utils.ETLLogger) *ProductExtractor {
	return &ProductExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractProducts извлекает сырые записи товаров
func (e *ProductExtractor) ExtractProducts(batchSize int) ([]models.RawRecord, error) {
	e.logger.Debug("Начало извлечения записей товаров")

	query := `
		SELECT stock_code, description, unit_price, category, brand
		FROM raw_products
		LIMIT ?
	`
	columns := []string{"stock_code", "description", "unit_price", "category", "brand"}

	records, err := queryRawRecords(e.db, models.SourceProducts, query, columns, batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении записей товаров: %v", err)
		return nil, err
	}

	e.logger.Debug("Извлечено записей товаров: %d", len(records))
	return records, nil
}
