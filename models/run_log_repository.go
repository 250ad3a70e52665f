package models

import (
	"database/sql"
	"fmt"
	"time"
)

// MySQLRunLogRepository реализация RunLogRepository для MySQL
type MySQLRunLogRepository struct {
	db *sql.DB
}

// NewMySQLRunLogRepository создает новый экземпляр MySQLRunLogRepository
func NewMySQLRunLogRepository(db *sql.DB) *MySQLRunLogRepository {
	return &MySQLRunLogRepository{
		db: db,
	}
}

// CreateRunLogTable создает таблицу журнала запусков ETL, если она не существует
func (r *MySQLRunLogRepository) CreateRunLogTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS etl_runs (
		id INT AUTO_INCREMENT PRIMARY KEY,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NULL,
		status ENUM('success', 'failed', 'in_progress') NOT NULL DEFAULT 'in_progress',
		strategy VARCHAR(32) NOT NULL DEFAULT '',
		customers_loaded INT DEFAULT 0,
		products_loaded INT DEFAULT 0,
		calendar_loaded INT DEFAULT 0,
		facts_loaded INT DEFAULT 0,
		rows_quarantined INT DEFAULT 0,
		error_message TEXT,
		execution_time_seconds FLOAT
	);
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы etl_runs: %w", err)
	}

	return nil
}

// CreateLogEntry создает новую запись о запуске ETL
func (r *MySQLRunLogRepository) CreateLogEntry(startTime time.Time, strategy string) (int, error) {
	query := `
	INSERT INTO etl_runs (start_time, status, strategy)
	VALUES (?, 'in_progress', ?)
	`

	result, err := r.db.Exec(query, startTime, strategy)
	if err != nil {
		return 0, fmt.Errorf("ошибка при создании записи о запуске ETL: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID созданной записи: %w", err)
	}

	return int(id), nil
}

// UpdateLogEntrySuccess обновляет запись при успешном завершении ETL
func (r *MySQLRunLogRepository) UpdateLogEntrySuccess(id int, endTime time.Time, metadata ETLMetadata) error {
	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM etl_runs WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	query := `
	UPDATE etl_runs
	SET
		end_time = ?,
		status = 'success',
		customers_loaded = ?,
		products_loaded = ?,
		calendar_loaded = ?,
		facts_loaded = ?,
		rows_quarantined = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(
		query,
		endTime,
		metadata.CustomersLoaded,
		metadata.ProductsLoaded,
		metadata.CalendarLoaded,
		metadata.FactsResolved,
		metadata.RowsQuarantined,
		executionTime,
		id,
	)

	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// UpdateLogEntryFailure обновляет запись при неудачном завершении ETL
func (r *MySQLRunLogRepository) UpdateLogEntryFailure(id int, endTime time.Time, errorMessage string) error {
	// Рассчитываем время выполнения в секундах
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM etl_runs WHERE id = ?", id).Scan(&startTime)
	if err != nil {
		return fmt.Errorf("ошибка при получении времени начала ETL: %w", err)
	}

	executionTime := endTime.Sub(startTime).Seconds()

	query := `
	UPDATE etl_runs
	SET
		end_time = ?,
		status = 'failed',
		error_message = ?,
		execution_time_seconds = ?
	WHERE id = ?
	`

	_, err = r.db.Exec(query, endTime, errorMessage, executionTime, id)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении записи о запуске ETL: %w", err)
	}

	return nil
}

// GetLastSuccessfulRun получает информацию о последнем успешном запуске ETL
func (r *MySQLRunLogRepository) GetLastSuccessfulRun() (*ETLRunLog, error) {
	query := `
	SELECT
		id, start_time, end_time, status, strategy,
		customers_loaded, products_loaded, calendar_loaded,
		facts_loaded, rows_quarantined,
		IFNULL(error_message, ''), IFNULL(execution_time_seconds, 0)
	FROM etl_runs
	WHERE status = 'success'
	ORDER BY end_time DESC
	LIMIT 1
	`

	var runLog ETLRunLog
	err := r.db.QueryRow(query).Scan(
		&runLog.ID, &runLog.StartTime, &runLog.EndTime, &runLog.Status, &runLog.Strategy,
		&runLog.CustomersLoaded, &runLog.ProductsLoaded, &runLog.CalendarLoaded,
		&runLog.FactsLoaded, &runLog.RowsQuarantined,
		&runLog.ErrorMessage, &runLog.ExecutionTimeSeconds,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Нет успешных запусков
		}
		return nil, fmt.Errorf("ошибка при получении информации о последнем успешном запуске ETL: %w", err)
	}

	return &runLog, nil
}

// GetRunStats получает статистику о запусках ETL за определенный период
func (r *MySQLRunLogRepository) GetRunStats(days int) ([]ETLRunLog, error) {
	query := `
	SELECT
		id, start_time, IFNULL(end_time, NOW()), status, strategy,
		customers_loaded, products_loaded, calendar_loaded,
		facts_loaded, rows_quarantined,
		IFNULL(error_message, ''), IFNULL(execution_time_seconds, 0)
	FROM etl_runs
	WHERE start_time >= DATE_SUB(NOW(), INTERVAL ? DAY)
	ORDER BY start_time DESC
	`

	rows, err := r.db.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики запусков ETL: %w", err)
	}
	defer rows.Close()

	var logs []ETLRunLog
	for rows.Next() {
		var runLog ETLRunLog
		err := rows.Scan(
			&runLog.ID, &runLog.StartTime, &runLog.EndTime, &runLog.Status, &runLog.Strategy,
			&runLog.CustomersLoaded, &runLog.ProductsLoaded, &runLog.CalendarLoaded,
			&runLog.FactsLoaded, &runLog.RowsQuarantined,
			&runLog.ErrorMessage, &runLog.ExecutionTimeSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании записи о запуске ETL: %w", err)
		}
		logs = append(logs, runLog)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по записям о запусках ETL: %w", err)
	}

	return logs, nil
}
