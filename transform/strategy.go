package transform

import (
	"fmt"

	"github.com/LilVoxy/coursework_dwh/config"
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/normalize"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// OrderingStrategy задает порядок очистки относительно построения модели.
// Обе стратегии должны давать эквивалентные результаты (проверяет пакет reconcile)
type OrderingStrategy interface {
	// Name возвращает имя стратегии для журнала запусков
	Name() string

	// Prepare выполняет (или пропускает) предварительный проход очистки
	// над извлечёнными данными
	Prepare(data *models.ExtractedData, logger *utils.ETLLogger) *models.ExtractedData
}

// Текстовые поля, приводимые к заглавному регистру, по источникам
var titledFields = map[string]map[string]bool{
	models.SourceCustomers: {"name": true, "country": true},
	models.SourceProducts:  {"description": true, "category": true, "brand": true},
}

// CleanFirstStrategy реализует порядок "clean-then-load": все сырые поля
// канонизируются отдельным проходом до построения измерений и фактов
type CleanFirstStrategy struct{}

// Name возвращает имя стратегии
func (CleanFirstStrategy) Name() string { return config.StrategyCleanFirst }

// Prepare канонизирует все сырые записи. Исходные записи не мутируются
func (CleanFirstStrategy) Prepare(data *models.ExtractedData, logger *utils.ETLLogger) *models.ExtractedData {
	logger.Debug("Предварительный проход очистки (clean-then-load)...")

	prepared := &models.ExtractedData{
		Customers: cleanRecords(data.Customers),
		Products:  cleanRecords(data.Products),
		Sales:     cleanRecords(data.Sales),
		Calendar:  cleanRecords(data.Calendar),
		ExtractTS: data.ExtractTS,
	}

	logger.Debug("Предварительная очистка завершена")
	return prepared
}

// LoadFirstStrategy реализует порядок "load-then-clean": сырые записи доходят
// до построителей как есть, нормализация происходит в точке использования
type LoadFirstStrategy struct{}

// Name возвращает имя стратегии
func (LoadFirstStrategy) Name() string { return config.StrategyLoadFirst }

// Prepare не делает ничего: очистка откладывается до точки использования
func (LoadFirstStrategy) Prepare(data *models.ExtractedData, _ *utils.ETLLogger) *models.ExtractedData {
	return data
}

// StrategyByName возвращает стратегию по имени из конфигурации
func StrategyByName(name string) (OrderingStrategy, error) {
	switch name {
	case config.StrategyCleanFirst:
		return CleanFirstStrategy{}, nil
	case config.StrategyLoadFirst:
		return LoadFirstStrategy{}, nil
	default:
		return nil, fmt.Errorf("неизвестная стратегия упорядочивания: %q", name)
	}
}

// cleanRecords возвращает канонизированные копии записей
func cleanRecords(records []models.RawRecord) []models.RawRecord {
	cleaned := make([]models.RawRecord, 0, len(records))
	for _, record := range records {
		titled := titledFields[record.Source]

		next := models.RawRecord{
			Source: record.Source,
			Fields: make(map[string]string, len(record.Fields)),
		}
		for name, value := range record.Fields {
			if titled[name] {
				if v, ok := normalize.TitleText(value); ok {
					next.Fields[name] = v
				} else {
					next.Fields[name] = ""
				}
				continue
			}

			if v, ok := normalize.CleanText(value); ok {
				next.Fields[name] = v
			} else {
				next.Fields[name] = ""
			}
		}
		cleaned = append(cleaned, next)
	}
	return cleaned
}
