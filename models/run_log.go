package models

import (
	"time"
)

// ETLRunLog представляет запись о запуске ETL процесса
type ETLRunLog struct {
	ID                   int       `json:"id"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	Status               string    `json:"status"` // "success", "failed", "in_progress"
	Strategy             string    `json:"strategy"`
	CustomersLoaded      int       `json:"customers_loaded"`
	ProductsLoaded       int       `json:"products_loaded"`
	CalendarLoaded       int       `json:"calendar_loaded"`
	FactsLoaded          int       `json:"facts_loaded"`
	RowsQuarantined      int       `json:"rows_quarantined"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// RunLogRepository представляет репозиторий для работы с журналом запусков ETL
type RunLogRepository interface {
	// CreateRunLogTable создает таблицу журнала, если она не существует
	CreateRunLogTable() error

	// CreateLogEntry создает новую запись о запуске ETL
	CreateLogEntry(startTime time.Time, strategy string) (int, error)

	// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
	UpdateLogEntrySuccess(id int, endTime time.Time, metadata ETLMetadata) error

	// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
	UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error

	// GetLastSuccessfulRun получает информацию о последнем успешном запуске ETL
	GetLastSuccessfulRun() (*ETLRunLog, error)

	// GetRunStats получает статистику о запусках ETL за определенный период
	GetRunStats(days int) ([]ETLRunLog, error)
}
