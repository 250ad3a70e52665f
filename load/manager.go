package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// LoadManager координирует загрузку конформированных данных в хранилище.
// Измерения и факты пишутся в рабочие таблицы с суффиксом _new и публикуются
// одной атомарной подменой; при любой ошибке до публикации рабочие таблицы
// удаляются, а опубликованные таблицы предыдущего запуска остаются нетронутыми
type LoadManager struct {
	db     *sql.DB
	logger *utils.ETLLogger
	loader Loader
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(db *sql.DB, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		db:     db,
		logger: logger,
		loader: NewWarehouseLoader(db, logger),
	}
}

// Load выполняет полный цикл загрузки: схема, рабочие таблицы, измерения,
// факты, атомарная публикация и дописывание карантина
func (m *LoadManager) Load(data *models.TransformedData) error {
	startTime := time.Now()
	m.logger.Info("Начало загрузки данных в хранилище")

	if err := EnsureSchema(m.db); err != nil {
		return err
	}

	if err := createStagingTables(m.db, publishedTables); err != nil {
		return err
	}

	if err := m.loadStaging(data); err != nil {
		// Откат: опубликованные таблицы не тронуты, убираем только рабочие
		dropStagingTables(m.db, publishedTables)
		return err
	}

	if err := publishTables(m.db, publishedTables); err != nil {
		dropStagingTables(m.db, publishedTables)
		return err
	}

	// Карантин дописывается после публикации: его записи переживают подмену
	if err := m.loader.AppendQuarantine(data.Quarantine); err != nil {
		return fmt.Errorf("таблицы опубликованы, но карантин не сохранен: %w", err)
	}

	m.logger.Info("Загрузка данных в хранилище завершена. Длительность: %v", time.Since(startTime))
	return nil
}

// loadStaging заполняет рабочие таблицы измерениями и фактами
func (m *LoadManager) loadStaging(data *models.TransformedData) error {
	if err := m.loader.LoadCustomerDimension(TableDimCustomer+suffixNew, data.Customers); err != nil {
		return err
	}
	if err := m.loader.LoadProductDimension(TableDimProduct+suffixNew, data.Products); err != nil {
		return err
	}
	if err := m.loader.LoadCalendarDimension(TableDimCalendar+suffixNew, data.Calendar); err != nil {
		return err
	}
	if err := m.loader.LoadSalesFacts(TableFactSales+suffixNew, data.Facts); err != nil {
		return err
	}
	return nil
}

// LoadAlternate загружает факты альтернативного запуска в fact_sales_alt
// тем же протоколом публикации. Используется режимом verify для сверки
// двух порядков выполнения
func (m *LoadManager) LoadAlternate(facts []models.SalesFact) error {
	m.logger.Info("Начало загрузки альтернативных фактов для сверки")

	if err := EnsureSchema(m.db); err != nil {
		return err
	}

	altTables := []string{TableFactSalesAlt}
	if err := createStagingTables(m.db, altTables); err != nil {
		return err
	}

	if err := m.loader.LoadSalesFacts(TableFactSalesAlt+suffixNew, facts); err != nil {
		dropStagingTables(m.db, altTables)
		return err
	}

	if err := publishTables(m.db, altTables); err != nil {
		dropStagingTables(m.db, altTables)
		return err
	}

	m.logger.Info("Загрузка альтернативных фактов завершена")
	return nil
}
