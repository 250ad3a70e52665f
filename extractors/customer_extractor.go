package extractors

import (
	"database/sql"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CustomerExtractor извлекает сырые записи клиентов из staging БД
type CustomerExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewCustomerExtractor создает новый экземпляр CustomerExtractor
func NewCustomerExtractor(db *sql.DB, logger *utils.ETLLogger) *CustomerExtractor {
	return &CustomerExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractCustomers извлекает сырые записи клиентов
func (e *CustomerExtractor) ExtractCustomers(batchSize int) ([]models.RawRecord, error) {
	e.logger.Debug("Начало извлечения записей клиентов")

	query := `
		SELECT customer_id, name, country, signup_date
		FROM raw_customers
		LIMIT ?
	`
	columns := []string{"customer_id", "name", "country", "signup_date"}

	records, err := queryRawRecords(e.db, models.SourceCustomers, query, columns, batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении записей клиентов: %v", err)
		return nil, err
	}

	e.logger.Debug("Извлечено записей клиентов: %d", len(records))
	return records, nil
}
