package extractors

import (
	"database/sql"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CalendarExtractor извлекает сырые календарные записи из staging БД
type CalendarExtractor struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewCalendarExtractor создает новый экземпляр CalendarExtractor
func NewCalendarExtractor(db *sql.DB, logger *utils.ETLLogger) *CalendarExtractor {
	return &CalendarExtractor{
		db:     db,
		logger: logger,
	}
}

// ExtractCalendar извлекает сырые календарные записи
func (e *CalendarExtractor) ExtractCalendar(batchSize int) ([]models.RawRecord, error) {
	e.logger.Debug("Начало извлечения календарных записей")

	query := `
		SELECT ts_value
		FROM raw_calendar
		LIMIT ?
	`
	columns := []string{"ts_value"}

	records, err := queryRawRecords(e.db, models.SourceCalendar, query, columns, batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении календарных записей: %v", err)
		return nil, err
	}

	e.logger.Debug("Извлечено календарных записей: %d", len(records))
	return records, nil
}
