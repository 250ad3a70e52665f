package extractors

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Extractor координирует процесс извлечения сырых данных из staging-базы
type Extractor struct {
	db                *sql.DB
	logger            *utils.ETLLogger
	customerExtractor *CustomerExtractor
	productExtractor  *ProductExtractor
	salesExtractor    *SalesExtractor
	calendarExtractor *CalendarExtractor
	batchSize         int
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(db *sql.DB, logger *utils.ETLLogger, batchSize int) *Extractor {
	return &Extractor{
		db:                db,
		logger:            logger,
		customerExtractor: NewCustomerExtractor(db, logger),
		productExtractor:  NewProductExtractor(db, logger),
		salesExtractor:    NewSalesExtractor(db, logger),
		calendarExtractor: NewCalendarExtractor(db, logger),
		batchSize:         batchSize,
	}
}

// Extract выполняет полное извлечение сырых данных для одного запуска ETL.
// Каждый запуск выполняет полную пересборку, инкрементального извлечения нет
func (e *Extractor) Extract() (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.LogExtractStart()

	var extractedData models.ExtractedData
	var err error

	// Извлекаем клиентов
	extractedData.Customers, err = e.customerExtractor.ExtractCustomers(e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении клиентов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения клиентов: %w", err)
	}

	// Извлекаем товары
	extractedData.Products, err = e.productExtractor.ExtractProducts(e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении товаров: %v", err)
		return nil, fmt.Errorf("ошибка извлечения товаров: %w", err)
	}

	// Извлекаем строки продаж
	extractedData.Sales, err = e.salesExtractor.ExtractSales(e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении продаж: %v", err)
		return nil, fmt.Errorf("ошибка извлечения продаж: %w", err)
	}

	// Извлекаем календарные записи
	extractedData.Calendar, err = e.calendarExtractor.ExtractCalendar(e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении календарных записей: %v", err)
		return nil, fmt.Errorf("ошибка извлечения календарных записей: %w", err)
	}

	// Записываем время извлечения
	extractedData.ExtractTS = time.Now()

	e.logger.LogExtractComplete(
		len(extractedData.Customers),
		len(extractedData.Products),
		len(extractedData.Sales),
		len(extractedData.Calendar),
		time.Since(startTime),
	)

	return &extractedData, nil
}

// queryRawRecords выполняет запрос и сканирует каждую строку в RawRecord.
// Все колонки читаются как NULL-совместимый текст: staging-слой не дает
// никаких гарантий типизации
func queryRawRecords(db *sql.DB, source, query string, columns []string, args ...interface{}) ([]models.RawRecord, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса %s: %w", source, err)
	}
	defer rows.Close()

	var records []models.RawRecord
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scanArgs := make([]interface{}, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки %s: %w", source, err)
		}

		fields := make(map[string]string, len(columns))
		for i, column := range columns {
			if values[i].Valid {
				fields[column] = values[i].String
			} else {
				fields[column] = ""
			}
		}

		records = append(records, models.RawRecord{Source: source, Fields: fields})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по строкам %s: %w", source, err)
	}

	return records, nil
}
