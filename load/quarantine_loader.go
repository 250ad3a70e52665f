package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// QuarantineLoader отвечает за дописывание записей карантина.
// Карантинная таблица долговечна: записи прошлых запусков сохраняются,
// атомарная публикация её не затрагивает
type QuarantineLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewQuarantineLoader создает новый экземпляр QuarantineLoader
func NewQuarantineLoader(db *sql.DB, logger *utils.ETLLogger) *QuarantineLoader {
	return &QuarantineLoader{
		db:     db,
		logger: logger,
	}
}

// Append дописывает записи карантина в долговечную таблицу
func (l *QuarantineLoader) Append(entries []models.QuarantineEntry) error {
	if len(entries) == 0 {
		l.logger.Debug("Нет записей карантина для сохранения")
		return nil
	}

	startTime := time.Now()
	l.logger.Info("Начало сохранения карантина (всего: %d)", len(entries))

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s
		(entry_id, source_table, raw_record, reason, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, TableQuarantine))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	processed := 0
	for _, entry := range entries {
		// Исходная строка хранится сжатой, чтобы карантин не разрастался
		blob, err := utils.PackRawRecord(entry.RawRecord.Fields)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при упаковке записи карантина %s: %w", entry.EntryID, err)
		}

		if _, err := stmt.Exec(
			entry.EntryID,
			entry.SourceTable,
			blob,
			entry.Reason,
			entry.CreatedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка при вставке записи карантина %s: %w", entry.EntryID, err)
		}

		processed++
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	l.logger.Info("Сохранение карантина завершено. Записей: %d. Длительность: %v",
		processed, time.Since(startTime))
	return nil
}
