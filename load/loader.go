package load

import (
	"database/sql"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Loader интерфейс для загрузки конформированных данных в хранилище
type Loader interface {
	// LoadCustomerDimension загружает измерение клиентов в указанную таблицу
	LoadCustomerDimension(table string, customers []models.CustomerDimension) error

	// LoadProductDimension загружает измерение товаров в указанную таблицу
	LoadProductDimension(table string, products []models.ProductDimension) error

	// LoadCalendarDimension загружает календарное измерение в указанную таблицу
	LoadCalendarDimension(table string, calendar []models.CalendarDimension) error

	// LoadSalesFacts загружает факты продаж в указанную таблицу
	LoadSalesFacts(table string, facts []models.SalesFact) error

	// AppendQuarantine дописывает записи карантина в долговечную таблицу
	AppendQuarantine(entries []models.QuarantineEntry) error
}

// WarehouseLoader реализация Loader для MySQL-хранилища
type WarehouseLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger

	// Загрузчики для отдельных таблиц
	customerLoader   *CustomerLoader
	productLoader    *ProductLoader
	calendarLoader   *CalendarLoader
	factLoader       *FactLoader
	quarantineLoader *QuarantineLoader
}

// NewWarehouseLoader создает новый экземпляр WarehouseLoader
func NewWarehouseLoader(db *sql.DB, logger *utils.ETLLogger) *WarehouseLoader {
	loader := &WarehouseLoader{
		db:     db,
		logger: logger,
	}

	// Инициализация загрузчиков для отдельных таблиц
	loader.customerLoader = NewCustomerLoader(db, logger)
	loader.productLoader = NewProductLoader(db, logger)
	loader.calendarLoader = NewCalendarLoader(db, logger)
	loader.factLoader = NewFactLoader(db, logger)
	loader.quarantineLoader = NewQuarantineLoader(db, logger)

	return loader
}

// LoadCustomerDimension загружает измерение клиентов
func (l *WarehouseLoader) LoadCustomerDimension(table string, customers []models.CustomerDimension) error {
	return l.customerLoader.Load(table, customers)
}

// LoadProductDimension загружает измерение товаров
func (l *WarehouseLoader) LoadProductDimension(table string, products []models.ProductDimension) error {
	return l.productLoader.Load(table, products)
}

// LoadCalendarDimension загружает календарное измерение
func (l *WarehouseLoader) LoadCalendarDimension(table string, calendar []models.CalendarDimension) error {
	return l.calendarLoader.Load(table, calendar)
}

// LoadSalesFacts загружает факты продаж
func (l *WarehouseLoader) LoadSalesFacts(table string, facts []models.SalesFact) error {
	return l.factLoader.Load(table, facts)
}

// AppendQuarantine дописывает записи карантина
func (l *WarehouseLoader) AppendQuarantine(entries []models.QuarantineEntry) error {
	return l.quarantineLoader.Append(entries)
}
