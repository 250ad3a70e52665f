package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// FactLoader отвечает за загрузку фактов продаж
type FactLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewFactLoader создает новый экземпляр FactLoader
func NewFactLoader(db *sql.DB, logger *utils.ETLLogger) *FactLoader {
	return &FactLoader{
		db:     db,
		logger: logger,
	}
}

// Load загружает факты продаж в указанную таблицу
func (l *FactLoader) Load(table string, facts []models.SalesFact) error {
	if len(facts) == 0 {
		l.logger.Debug("Нет фактов продаж для загрузки")
		return nil
	}

	startTime := time.Now()
	l.logger.Info("Начало загрузки фактов продаж (всего: %d)", len(facts))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s
		(calendar_key, product_key, customer_key, invoice_id,
		 quantity, unit_price, total_amount, load_timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, table))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, fact := range facts {
		loadedAt := fact.LoadedAt
		if loadedAt.IsZero() {
			loadedAt = time.Now()
		}

		if _, err := stmt.Exec(
			fact.CalendarKey,
			fact.ProductKey,
			fact.CustomerKey,
			fact.InvoiceID,
			fact.Quantity,
			fact.UnitPrice,
			fact.TotalAmount,
			loadedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке факта по счету %s: %w", fact.InvoiceID, err)
		}

		processed++

		if processed%1000 == 0 {
			l.logger.Debug("Загружено %d из %d фактов...", processed, len(facts))
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Info("Загрузка фактов продаж завершена. Загружено записей: %d. Длительность: %v",
		processed, time.Since(startTime))
	return nil
}
