package load

import (
	"database/sql"
	"fmt"
)

// Имена опубликованных таблиц хранилища
const (
	TableDimCustomer  = "dim_customer"
	TableDimProduct   = "dim_product"
	TableDimCalendar  = "dim_calendar"
	TableFactSales    = "fact_sales"
	TableFactSalesAlt = "fact_sales_alt" // заполняется только режимом verify
	TableQuarantine   = "etl_quarantine"
)

// Суффиксы рабочих таблиц атомарной публикации
const (
	suffixNew = "_new"
	suffixOld = "_old"
)

// DDL опубликованных таблиц. Карантин долговечен и в публикации не участвует
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS dim_customer (
		customer_key INT NOT NULL PRIMARY KEY,
		customer_id VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL DEFAULT '',
		country VARCHAR(128) NOT NULL DEFAULT '',
		signup_date DATETIME NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dim_product (
		product_key INT NOT NULL PRIMARY KEY,
		stock_code VARCHAR(64) NOT NULL UNIQUE,
		description VARCHAR(255) NOT NULL DEFAULT '',
		unit_price DECIMAL(12,2) NOT NULL DEFAULT 0,
		category VARCHAR(128) NOT NULL DEFAULT '',
		brand VARCHAR(128) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS dim_calendar (
		calendar_key BIGINT NOT NULL PRIMARY KEY,
		full_ts DATETIME NOT NULL,
		full_date DATE NOT NULL,
		time_of_day TIME NOT NULL,
		year INT NOT NULL,
		month INT NOT NULL,
		day INT NOT NULL,
		hour INT NOT NULL,
		minute INT NOT NULL,
		second INT NOT NULL,
		weekday_name VARCHAR(16) NOT NULL,
		is_weekend BOOLEAN NOT NULL,
		quarter INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS fact_sales (
		id INT AUTO_INCREMENT PRIMARY KEY,
		calendar_key BIGINT NOT NULL,
		product_key INT NOT NULL,
		customer_key INT NOT NULL,
		invoice_id VARCHAR(64) NOT NULL,
		quantity INT NOT NULL,
		unit_price DECIMAL(12,2) NOT NULL,
		total_amount DECIMAL(14,2) NOT NULL,
		load_timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS fact_sales_alt LIKE fact_sales`,
	`CREATE TABLE IF NOT EXISTS etl_quarantine (
		entry_id CHAR(36) NOT NULL PRIMARY KEY,
		source_table VARCHAR(64) NOT NULL,
		raw_record BLOB NOT NULL,
		reason VARCHAR(128) NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
}

// Таблицы, публикуемые атомарной подменой при обычном запуске
var publishedTables = []string{
	TableDimCustomer,
	TableDimProduct,
	TableDimCalendar,
	TableFactSales,
}

// EnsureSchema создает таблицы хранилища, если они еще не существуют
func EnsureSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("ошибка при создании схемы хранилища: %w", err)
		}
	}
	return nil
}

// createStagingTables пересоздает рабочие таблицы публикации для указанных
// опубликованных таблиц
func createStagingTables(db *sql.DB, tables []string) error {
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s%s", table, suffixNew)); err != nil {
			return fmt.Errorf("ошибка при удалении рабочей таблицы %s%s: %w", table, suffixNew, err)
		}
		if _, err := db.Exec(fmt.Sprintf("CREATE TABLE %s%s LIKE %s", table, suffixNew, table)); err != nil {
			return fmt.Errorf("ошибка при создании рабочей таблицы %s%s: %w", table, suffixNew, err)
		}
	}
	return nil
}

// dropStagingTables удаляет рабочие таблицы (путь отката: опубликованные
// таблицы предыдущего успешного запуска остаются нетронутыми)
func dropStagingTables(db *sql.DB, tables []string) {
	for _, table := range tables {
		db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s%s", table, suffixNew))
	}
}

// publishTables атомарно подменяет опубликованные таблицы рабочими одним
// оператором RENAME TABLE: читатели видят либо полностью старый, либо
// полностью новый набор, частичной перезаписи не бывает
func publishTables(db *sql.DB, tables []string) error {
	rename := ""
	for i, table := range tables {
		if i > 0 {
			rename += ", "
		}
		rename += fmt.Sprintf("%s TO %s%s, %s%s TO %s",
			table, table, suffixOld, table, suffixNew, table)
	}

	if _, err := db.Exec("RENAME TABLE " + rename); err != nil {
		return fmt.Errorf("ошибка при атомарной публикации таблиц: %w", err)
	}

	// Старые поколения больше не нужны
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s%s", table, suffixOld)); err != nil {
			return fmt.Errorf("ошибка при удалении устаревшей таблицы %s%s: %w", table, suffixOld, err)
		}
	}

	return nil
}
