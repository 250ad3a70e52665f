package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ProductLoader отвечает за загрузку измерения товаров
type ProductLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewProductLoader создает новый экземпляр ProductLoader
func NewProductLoader(db *sql.DB, logger *utils.ETLLogger) *ProductLoader {
	return &ProductLoader{
		db:     db,
		logger: logger,
	}
}

// Load загружает измерение товаров в указанную таблицу
func (l *ProductLoader) Load(table string, products []models.ProductDimension) error {
	if len(products) == 0 {
		l.logger.Debug("Нет данных товаров для загрузки")
		return nil
	}

	startTime := time.Now()
	l.logger.Info("Начало загрузки измерения товаров (всего: %d)", len(products))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s
		(product_key, stock_code, description, unit_price, category, brand)
		VALUES (?, ?, ?, ?, ?, ?)
	`, table))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, product := range products {
		if _, err := stmt.Exec(
			product.ProductKey,
			product.StockCode,
			product.Description,
			product.UnitPrice,
			product.Category,
			product.Brand,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке товара %s: %w", product.StockCode, err)
		}

		processed++

		if processed%1000 == 0 {
			l.logger.Debug("Загружено %d из %d товаров...", processed, len(products))
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Info("Загрузка измерения товаров завершена. Загружено записей: %d. Длительность: %v",
		processed, time.Since(startTime))
	return nil
}
