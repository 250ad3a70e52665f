package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CustomerLoader отвечает за загрузку измерения клиентов
type CustomerLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewCustomerLoader создает новый экземпляр CustomerLoader
func NewCustomerLoader(db *sql.DB, logger *utils.ETLLogger) *CustomerLoader {
	return &CustomerLoader{
		db:     db,
		logger: logger,
	}
}

// Load загружает измерение клиентов в указанную таблицу
func (l *CustomerLoader) Load(table string, customers []models.CustomerDimension) error {
	if len(customers) == 0 {
		l.logger.Debug("Нет данных клиентов для загрузки")
		return nil
	}

	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения клиентов (всего: %d)", len(customers))

	// Начинаем транзакцию
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	// Подготавливаем запрос в транзакции
	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s
		(customer_key, customer_id, name, country, signup_date)
		VALUES (?, ?, ?, ?, ?)
	`, table))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, customer := range customers {
		// NULL для нераспознанной даты регистрации
		var signupDate interface{}
		if !customer.SignupDate.IsZero() {
			signupDate = customer.SignupDate
		}

		if _, err := stmt.Exec(
			customer.CustomerKey,
			customer.CustomerID,
			customer.Name,
			customer.Country,
			signupDate,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке клиента %s: %w", customer.CustomerID, err)
		}

		processed++

		// Логируем прогресс каждые 1000 записей
		if processed%1000 == 0 {
			l.logger.Debug("Загружено %d из %d клиентов...", processed, len(customers))
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Info("Загрузка измерения клиентов завершена. Загружено записей: %d. Длительность: %v",
		processed, time.Since(startTime))
	return nil
}
