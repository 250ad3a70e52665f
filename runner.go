package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/LilVoxy/coursework_dwh/config"
	"github.com/LilVoxy/coursework_dwh/extractors"
	"github.com/LilVoxy/coursework_dwh/load"
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/reconcile"
	"github.com/LilVoxy/coursework_dwh/transform"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ETLRunner связывает фазы конвейера: извлечение, преобразование, загрузку,
// журналирование запусков и сверку
type ETLRunner struct {
	config        config.ETLConfig
	dbConnections *config.DBConnections
	logger        *utils.ETLLogger
	extractor     *extractors.Extractor
	loadManager   *load.LoadManager
	runLogRepo    models.RunLogRepository
	reconRepo     *reconcile.MySQLReconciliationRepository
	dataService   reconcile.DataService
}

// NewETLRunner создает новый экземпляр ETLRunner
func NewETLRunner(etlConfig config.ETLConfig) (*ETLRunner, error) {
	// Инициализируем логгер
	logger := utils.NewETLLogger(etlConfig.EnableDetailedLogging)
	logger.Info("Инициализация ETL Runner")

	// Проверяем, что стратегия известна, до подключения к базам
	if _, err := transform.StrategyByName(etlConfig.Strategy); err != nil {
		return nil, err
	}

	// Подключаемся к базам данных
	connections, err := config.ConnectDatabases(etlConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базам данных: %w", err)
	}

	// Инициализируем журнал запусков
	runLogRepo := models.NewMySQLRunLogRepository(connections.WarehouseDB)
	if err := runLogRepo.CreateRunLogTable(); err != nil {
		config.CloseDatabases(connections)
		return nil, fmt.Errorf("ошибка при создании таблицы журнала запусков: %w", err)
	}

	return &ETLRunner{
		config:        etlConfig,
		dbConnections: connections,
		logger:        logger,
		extractor:     extractors.NewExtractor(connections.StagingDB, logger, etlConfig.BatchSize),
		loadManager:   load.NewLoadManager(connections.WarehouseDB, logger),
		runLogRepo:    runLogRepo,
		reconRepo:     reconcile.NewMySQLReconciliationRepository(connections.WarehouseDB, logger),
		dataService:   reconcile.NewMySQLDataService(connections.WarehouseDB, logger),
	}, nil
}

// Close закрывает соединения с базами данных
func (r *ETLRunner) Close() {
	r.logger.Info("Завершение работы ETL Runner")
	config.CloseDatabases(r.dbConnections)
}

// Logger возвращает логгер раннера
func (r *ETLRunner) Logger() *utils.ETLLogger {
	return r.logger
}

// RunLogRepository возвращает журнал запусков для операционного API
func (r *ETLRunner) RunLogRepository() models.RunLogRepository {
	return r.runLogRepo
}

// ReconciliationRepository возвращает журнал сверок для операционного API
func (r *ETLRunner) ReconciliationRepository() *reconcile.MySQLReconciliationRepository {
	return r.reconRepo
}

// ExecuteETL выполняет полный проход конвейера со стратегией из конфигурации
func (r *ETLRunner) ExecuteETL() error {
	return r.executeWithStrategy(r.config.Strategy)
}

// executeWithStrategy выполняет полный проход конвейера указанной стратегией
func (r *ETLRunner) executeWithStrategy(strategyName string) error {
	startTime := time.Now()
	r.logger.LogETLStart(strategyName)

	strategy, err := transform.StrategyByName(strategyName)
	if err != nil {
		return err
	}

	// Создаем запись в журнале запусков
	logID, err := r.runLogRepo.CreateLogEntry(startTime, strategyName)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале запусков: %v", err)
		return fmt.Errorf("ошибка при создании записи в журнале запусков: %w", err)
	}

	// 1. Фаза извлечения (Extract): полная пересборка при каждом запуске
	extractedData, err := r.extractor.Extract()
	if err != nil {
		r.recordFailure(logID, fmt.Sprintf("Ошибка в фазе Extract: %v", err))
		return fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	// 2. Фаза преобразования (Transform)
	transformer := transform.NewTransformer(r.logger, strategy)
	transformedData, err := transformer.Transform(extractedData)
	if err != nil {
		r.recordFailure(logID, fmt.Sprintf("Ошибка в фазе Transform: %v", err))
		return fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	// 3. Фаза загрузки (Load) с атомарной публикацией
	if err := r.loadManager.Load(transformedData); err != nil {
		r.recordFailure(logID, fmt.Sprintf("Ошибка в фазе Load: %v", err))
		return fmt.Errorf("ошибка в фазе Load: %w", err)
	}

	// Фиксируем успех в журнале
	if err := r.runLogRepo.UpdateLogEntrySuccess(logID, time.Now(), transformedData.Metadata); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}

	r.logger.LogETLComplete(startTime,
		transformedData.Metadata.FactsResolved,
		transformedData.Metadata.RowsQuarantined)
	return nil
}

// ExecuteVerify выполняет конвейер обеими стратегиями на одном извлечении
// и сверяет результаты. Основная стратегия публикуется в основные таблицы,
// альтернативная только в fact_sales_alt
func (r *ETLRunner) ExecuteVerify() (reconcile.ReconciliationReport, error) {
	startTime := time.Now()
	primaryName := r.config.Strategy
	alternateName := alternateStrategy(primaryName)

	r.logger.Info("Запуск режима verify: %s против %s", primaryName, alternateName)

	primary, err := transform.StrategyByName(primaryName)
	if err != nil {
		return reconcile.ReconciliationReport{}, err
	}
	alternate, err := transform.StrategyByName(alternateName)
	if err != nil {
		return reconcile.ReconciliationReport{}, err
	}

	logID, err := r.runLogRepo.CreateLogEntry(startTime, primaryName)
	if err != nil {
		return reconcile.ReconciliationReport{}, fmt.Errorf("ошибка при создании записи в журнале запусков: %w", err)
	}

	// Одно извлечение на оба прохода: сверка сравнивает порядки выполнения,
	// а не снимки staging-базы
	extractedData, err := r.extractor.Extract()
	if err != nil {
		r.recordFailure(logID, fmt.Sprintf("Ошибка в фазе Extract: %v", err))
		return reconcile.ReconciliationReport{}, fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	primaryData, err := transform.NewTransformer(r.logger, primary).Transform(extractedData)
	if err != nil {
		r.recordFailure(logID, fmt.Sprintf("Ошибка в фазе Transform (%s): %v", primaryName, err))
		return reconcile.ReconciliationReport{}, fmt.Errorf("ошибка в фазе Transform (%s): %w", primaryName, err)
	}

	alternateData, err := transform.NewTransformer(r.logger, alternate).Transform(extractedData)
	if err != nil {
		r.recordFailure(logID, fmt.Sprintf("Ошибка в фазе Transform (%s): %v", alternateName, err))
		return reconcile.ReconciliationReport{}, fmt.Errorf("ошибка в фазе Transform (%s): %w", alternateName, err)
	}

	if err := r.loadManager.Load(primaryData); err != nil {
		r.recordFailure(logID, fmt.Sprintf("Ошибка в фазе Load: %v", err))
		return reconcile.ReconciliationReport{}, fmt.Errorf("ошибка в фазе Load: %w", err)
	}

	if err := r.loadManager.LoadAlternate(alternateData.Facts); err != nil {
		r.recordFailure(logID, fmt.Sprintf("Ошибка при загрузке альтернативных фактов: %v", err))
		return reconcile.ReconciliationReport{}, fmt.Errorf("ошибка при загрузке альтернативных фактов: %w", err)
	}

	report, err := reconcile.Run(
		r.dataService, r.reconRepo,
		load.TableFactSales, load.TableFactSalesAlt,
		primaryName, alternateName,
		r.logger)
	if err != nil {
		r.recordFailure(logID, fmt.Sprintf("Ошибка при сверке: %v", err))
		return reconcile.ReconciliationReport{}, err
	}

	if err := r.runLogRepo.UpdateLogEntrySuccess(logID, time.Now(), primaryData.Metadata); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}

	r.logger.LogETLComplete(startTime,
		primaryData.Metadata.FactsResolved,
		primaryData.Metadata.RowsQuarantined)
	return report, nil
}

// recordFailure фиксирует неудачный запуск в журнале
func (r *ETLRunner) recordFailure(logID int, errorMessage string) {
	r.logger.Error("%s", errorMessage)
	if err := r.runLogRepo.UpdateLogEntryFailure(logID, time.Now(), errorMessage); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}
}

// alternateStrategy возвращает стратегию, противоположную указанной
func alternateStrategy(name string) string {
	if name == config.StrategyCleanFirst {
		return config.StrategyLoadFirst
	}
	return config.StrategyCleanFirst
}

// StartScheduler запускает планировщик для регулярного выполнения ETL
func (r *ETLRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика ETL с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск ETL процесса")
		if err := r.ExecuteETL(); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного ETL: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик ETL остановлен")
}
