package config

import (
	"time"
)

// Имена стратегий упорядочивания конвейера
const (
	StrategyCleanFirst = "clean-first" // нормализация до построения измерений
	StrategyLoadFirst  = "load-first"  // нормализация в точке использования
)

// ETLConfig содержит конфигурацию для ETL-процесса
type ETLConfig struct {
	// Конфигурация для подключения к staging БД (исходной)
	StagingConfig DatabaseConfig `json:"staging_config"`

	// Конфигурация для подключения к хранилищу (целевой БД)
	WarehouseConfig DatabaseConfig `json:"warehouse_config"`

	// Интервал запуска ETL в режиме scheduled
	RunInterval time.Duration `json:"run_interval"`

	// Максимальное количество записей, извлекаемых за один запрос
	BatchSize int `json:"batch_size"`

	// Стратегия упорядочивания конвейера
	Strategy string `json:"strategy"`

	// Адрес операционного HTTP API
	HTTPAddr string `json:"http_addr"`

	// Включение/отключение подробного логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// Значения конфигурации по умолчанию
var (
	DefaultStagingConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "root",
		DBName:   "retail_staging",
	}

	DefaultWarehouseConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "root",
		DBName:   "retail_dwh",
	}

	DefaultETLConfig = ETLConfig{
		StagingConfig:         DefaultStagingConfig,
		WarehouseConfig:       DefaultWarehouseConfig,
		RunInterval:           24 * time.Hour,
		BatchSize:             100000,
		Strategy:              StrategyCleanFirst,
		HTTPAddr:              ":8081",
		EnableDetailedLogging: true,
	}
)

// GetConfig возвращает конфигурацию ETL
func GetConfig() ETLConfig {
	return DefaultETLConfig
}
