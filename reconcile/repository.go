package reconcile

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/utils"
)

// ReconciliationRepository интерфейс для сохранения отчетов о сверке
type ReconciliationRepository interface {
	// CreateReconciliationLogTable создает таблицу журнала сверок
	CreateReconciliationLogTable() error

	// SaveReport сохраняет отчет о сверке
	SaveReport(report ReconciliationReport) error
}

// MySQLReconciliationRepository реализация ReconciliationRepository для MySQL
type MySQLReconciliationRepository struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewMySQLReconciliationRepository создает новый экземпляр MySQLReconciliationRepository
func NewMySQLReconciliationRepository(db *sql.DB, logger *utils.ETLLogger) *MySQLReconciliationRepository {
	return &MySQLReconciliationRepository{
		db:     db,
		logger: logger,
	}
}

// CreateReconciliationLogTable создает таблицу журнала сверок, если она не существует
func (r *MySQLReconciliationRepository) CreateReconciliationLogTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS etl_reconciliation_log (
			id INT AUTO_INCREMENT PRIMARY KEY,
			run_timestamp TIMESTAMP NOT NULL,
			primary_strategy VARCHAR(32) NOT NULL,
			alternate_strategy VARCHAR(32) NOT NULL,
			primary_row_count INT NOT NULL,
			alternate_row_count INT NOT NULL,
			primary_total_amount DECIMAL(14,2) NOT NULL,
			alternate_total_amount DECIMAL(14,2) NOT NULL,
			is_match BOOLEAN NOT NULL,
			discrepancies TEXT
		)
	`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("ошибка при создании таблицы журнала сверок: %w", err)
	}
	return nil
}

// SaveReport сохраняет отчет о сверке в журнал
func (r *MySQLReconciliationRepository) SaveReport(report ReconciliationReport) error {
	// Расхождения сохраняются как JSON для разбора вручную
	discrepancies, err := json.Marshal(report.Discrepancies)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации расхождений: %w", err)
	}

	query := `
		INSERT INTO etl_reconciliation_log
		(run_timestamp, primary_strategy, alternate_strategy,
		 primary_row_count, alternate_row_count,
		 primary_total_amount, alternate_total_amount,
		 is_match, discrepancies)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query,
		report.RunTimestamp,
		report.PrimaryStrategy,
		report.AlternateStrategy,
		report.Primary.RowCount,
		report.Alternate.RowCount,
		report.Primary.TotalAmountSum,
		report.Alternate.TotalAmountSum,
		report.Match,
		string(discrepancies),
	); err != nil {
		return fmt.Errorf("ошибка при сохранении отчета о сверке: %w", err)
	}

	r.logger.Debug("Отчет о сверке сохранен (совпадение: %t)", report.Match)
	return nil
}

// GetRecentReports возвращает последние отчеты о сверке для операционного API
func (r *MySQLReconciliationRepository) GetRecentReports(limit int) ([]ReconciliationReport, error) {
	query := `
		SELECT run_timestamp, primary_strategy, alternate_strategy, is_match, discrepancies
		FROM etl_reconciliation_log
		ORDER BY run_timestamp DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении журнала сверок: %w", err)
	}
	defer rows.Close()

	reports := make([]ReconciliationReport, 0, limit)
	for rows.Next() {
		var report ReconciliationReport
		var discrepancies sql.NullString

		if err := rows.Scan(
			&report.RunTimestamp,
			&report.PrimaryStrategy,
			&report.AlternateStrategy,
			&report.Match,
			&discrepancies,
		); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании отчета о сверке: %w", err)
		}

		if discrepancies.Valid && discrepancies.String != "" {
			if err := json.Unmarshal([]byte(discrepancies.String), &report.Discrepancies); err != nil {
				return nil, fmt.Errorf("ошибка при разборе расхождений: %w", err)
			}
		}

		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по журналу сверок: %w", err)
	}

	return reports, nil
}
