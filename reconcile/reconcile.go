// Package reconcile сверяет результаты двух запусков конвейера с разными
// порядками выполнения. Эквивалентность агрегатов подтверждает, что порядок
// очистки и загрузки не влияет на содержимое хранилища
package reconcile

import (
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/utils"
)

// Run сверяет агрегаты двух таблиц фактов, сохраняет отчет в журнал
// и возвращает его
func Run(
	dataService DataService,
	repository ReconciliationRepository,
	primaryTable, alternateTable string,
	primaryStrategy, alternateStrategy string,
	logger *utils.ETLLogger) (ReconciliationReport, error) {

	startTime := time.Now()
	logger.Info("Начало сверки таблиц %s и %s", primaryTable, alternateTable)

	primary, err := dataService.GetFactTotals(primaryTable)
	if err != nil {
		return ReconciliationReport{}, fmt.Errorf("ошибка при чтении агрегатов основного запуска: %w", err)
	}

	alternate, err := dataService.GetFactTotals(alternateTable)
	if err != nil {
		return ReconciliationReport{}, fmt.Errorf("ошибка при чтении агрегатов альтернативного запуска: %w", err)
	}

	report := BuildReport(primary, alternate, primaryStrategy, alternateStrategy)

	if err := repository.CreateReconciliationLogTable(); err != nil {
		return ReconciliationReport{}, err
	}
	if err := repository.SaveReport(report); err != nil {
		return ReconciliationReport{}, err
	}

	if report.Match {
		logger.Info("Сверка завершена: запуски эквивалентны. Длительность: %v", time.Since(startTime))
	} else {
		logger.Error("Сверка завершена: обнаружено расхождений: %d. Длительность: %v",
			len(report.Discrepancies), time.Since(startTime))
		for _, d := range report.Discrepancies {
			logger.Error("Расхождение %s: основной=%0.2f, альтернативный=%0.2f",
				d.Metric, d.PrimaryValue, d.AlternateValue)
		}
	}

	return report, nil
}

// BuildReport сравнивает агрегаты и формирует отчет о сверке
func BuildReport(primary, alternate FactTotals, primaryStrategy, alternateStrategy string) ReconciliationReport {
	discrepancies := Compare(primary, alternate)

	return ReconciliationReport{
		RunTimestamp:      time.Now(),
		PrimaryStrategy:   primaryStrategy,
		AlternateStrategy: alternateStrategy,
		Primary:           primary,
		Alternate:         alternate,
		Discrepancies:     discrepancies,
		Match:             len(discrepancies) == 0,
	}
}
