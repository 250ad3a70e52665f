package transform

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Transformer координирует фазу Transform: нормализацию, построение измерений
// и разрешение фактов под выбранной стратегией упорядочивания
type Transformer struct {
	logger            *utils.ETLLogger
	strategy          OrderingStrategy
	customerProcessor *CustomerDimensionProcessor
	productProcessor  *ProductDimensionProcessor
	calendarProcessor *CalendarDimensionProcessor
	factResolver      *FactResolverProcessor
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.ETLLogger, strategy OrderingStrategy) *Transformer {
	return &Transformer{
		logger:            logger,
		strategy:          strategy,
		customerProcessor: NewCustomerDimensionProcessor(logger),
		productProcessor:  NewProductDimensionProcessor(logger),
		calendarProcessor: NewCalendarDimensionProcessor(logger),
		factResolver:      NewFactResolverProcessor(logger),
	}
}

// Transform выполняет полный процесс преобразования сырых данных в
// конформированную звёздную схему
func (t *Transformer) Transform(extracted *models.ExtractedData) (*models.TransformedData, error) {
	startTime := time.Now()
	t.logger.Info("Начало фазы Transform (стратегия: %s)", t.strategy.Name())

	// 1. Стратегия решает, выполняется ли предварительный проход очистки
	data := t.strategy.Prepare(extracted, t.logger)

	// 2. Медианные цены вычисляются один раз и далее только читаются
	t.logger.Debug("Вычисление медианных цен по товарам...")
	medians := ComputePriceMedians(data.Sales)
	t.logger.Debug("Медианы вычислены для %d товаров", len(medians))

	// 3. Три измерения взаимно независимы и строятся параллельно.
	// Разрешение фактов обязано дождаться всех трёх (барьер g.Wait)
	transformedData := &models.TransformedData{}
	var customersDropped, productsDropped int

	var g errgroup.Group

	g.Go(func() error {
		var err error
		transformedData.Customers, customersDropped, err = t.customerProcessor.Process(data.Customers)
		if err != nil {
			return fmt.Errorf("ошибка при построении измерения клиентов: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		transformedData.Products, productsDropped, err = t.productProcessor.Process(data.Products, medians)
		if err != nil {
			return fmt.Errorf("ошибка при построении измерения товаров: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		transformedData.Calendar, err = t.calendarProcessor.Process(data)
		if err != nil {
			return fmt.Errorf("ошибка при построении календарного измерения: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		t.logger.Error("Ошибка при построении измерений: %v", err)
		return nil, err
	}

	// 4. Структурная целостность: пустое измерение фатально для запуска,
	// разрешение фактов требует непустых таблиц поиска
	if err := t.checkStructure(transformedData); err != nil {
		t.logger.Error("Структурная ошибка измерений: %v", err)
		return nil, err
	}

	// 5. Разрешение фактов по готовым таблицам поиска
	lookups := BuildLookups(transformedData.Customers, transformedData.Products, transformedData.Calendar)
	transformedData.Facts, transformedData.Quarantine = t.factResolver.Process(data.Sales, lookups)

	// Заполняем метаданные
	quarantineByReason := make(map[string]int)
	for _, entry := range transformedData.Quarantine {
		quarantineByReason[entry.Reason]++
	}

	transformedData.Metadata = models.ETLMetadata{
		RunTimestamp:       time.Now(),
		Strategy:           t.strategy.Name(),
		SalesRowsRead:      len(data.Sales),
		CustomersLoaded:    len(transformedData.Customers),
		ProductsLoaded:     len(transformedData.Products),
		CalendarLoaded:     len(transformedData.Calendar),
		FactsResolved:      len(transformedData.Facts),
		RowsQuarantined:    len(transformedData.Quarantine),
		QuarantineByReason: quarantineByReason,
		CustomersDropped:   customersDropped,
		ProductsDropped:    productsDropped,
	}

	t.logger.Info("Фаза Transform завершена. Длительность: %v", time.Since(startTime))
	return transformedData, nil
}

// checkStructure проверяет, что каждое измерение произвело хотя бы одну
// запись. Пустое измерение фатально и прерывает запуск до разрешения фактов
func (t *Transformer) checkStructure(data *models.TransformedData) error {
	if len(data.Customers) == 0 {
		return fmt.Errorf("измерение клиентов не произвело ни одной записи")
	}
	if len(data.Products) == 0 {
		return fmt.Errorf("измерение товаров не произвело ни одной записи")
	}
	if len(data.Calendar) == 0 {
		return fmt.Errorf("календарное измерение не произвело ни одной записи")
	}
	return nil
}
