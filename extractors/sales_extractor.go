package extractors

import (
	"database/sql"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// SalesExtractor извлекает сырые строки продаж из staging БД
type SalesExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewSalesExtractor создает новый экземпляр SalesExtractor
func NewSalesExtractor(db *sql.DB, logger *utils.ETLLogger) *SalesExtractor {
	return &SalesExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractSales извлекает сырые строки продаж
func (e *SalesExtractor) ExtractSales(batchSize int) ([]models.RawRecord, error) {
	e.logger.Debug("Начало извлечения строк продаж")

	query := `
		SELECT invoice_no, stock_code, customer_id, quantity,
		       unit_price, total_amount, invoice_date
		FROM raw_invoices
		LIMIT ?
	`
	columns := []string{
		"invoice_no", "stock_code", "customer_id", "quantity",
		"unit_price", "total_amount", "invoice_date",
	}

	records, err := queryRawRecords(e.db, models.SourceSales, query, columns, batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении строк продаж: %v", err)
		return nil, err
	}

	e.logger.Debug("Извлечено строк продаж: %d", len(records))
	return records, nil
}
