package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CalendarLoader отвечает за загрузку календарного измерения
type CalendarLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewCalendarLoader создает новый экземпляр CalendarLoader
func NewCalendarLoader(db *sql.DB, logger *utils.ETLLogger) *CalendarLoader {
	return &CalendarLoader{
		db:     db,
		logger: logger,
	}
}

// Load загружает календарное измерение в указанную таблицу
func (l *CalendarLoader) Load(table string, calendar []models.CalendarDimension) error {
	if len(calendar) == 0 {
		l.logger.Debug("Нет календарных данных для загрузки")
		return nil
	}

	startTime := time.Now()
	l.logger.Info("Начало загрузки календарного измерения (всего: %d)", len(calendar))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s
		(calendar_key, full_ts, full_date, time_of_day,
		 year, month, day, hour, minute, second,
		 weekday_name, is_weekend, quarter)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, table))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, row := range calendar {
		if _, err := stmt.Exec(
			row.CalendarKey,
			row.FullTS,
			row.FullDate,
			row.TimeOfDay,
			row.Year,
			row.Month,
			row.Day,
			row.Hour,
			row.Minute,
			row.Second,
			row.WeekdayName,
			row.IsWeekend,
			row.Quarter,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке календарной записи %d: %w", row.CalendarKey, err)
		}

		processed++

		if processed%1000 == 0 {
			l.logger.Debug("Загружено %d из %d календарных записей...", processed, len(calendar))
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Info("Загрузка календарного измерения завершена. Загружено записей: %d. Длительность: %v",
		processed, time.Since(startTime))
	return nil
}
