package transform

import (
	"sort"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/normalize"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CalendarDimensionProcessor отвечает за построение календарного измерения
type CalendarDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewCalendarDimensionProcessor создает новый экземпляр CalendarDimensionProcessor
func NewCalendarDimensionProcessor(logger *utils.ETLLogger) *CalendarDimensionProcessor {
	return &CalendarDimensionProcessor{
		logger: logger,
	}
}

// Process строит календарное измерение из множества различимых распознаваемых
// моментов, встреченных во ВСЕХ источниках с полями даты, а не только в
// календарном извлечении: иначе разрешение фактов отбраковывало бы валидные
// строки за отсутствие календарной записи.
// Моменты различаются по 14-значному ключу, то есть с точностью до секунды
func (p *CalendarDimensionProcessor) Process(data *models.ExtractedData) ([]models.CalendarDimension, error) {
	p.logger.Debug("Обработка календарного измерения...")

	instants := make(map[int64]time.Time)

	collect := func(records []models.RawRecord, field string) {
		for _, record := range records {
			instant, ok := normalize.ParseInstant(record.Field(field))
			if !ok {
				continue
			}
			key := normalize.TimeKey(instant)
			if _, exists := instants[key]; !exists {
				instants[key] = instant
			}
		}
	}

	collect(data.Calendar, "ts_value")
	collect(data.Sales, "invoice_date")
	collect(data.Customers, "signup_date")

	// Сортируем ключи для детерминированного порядка записей
	keys := make([]int64, 0, len(instants))
	for key := range instants {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	dimension := make([]models.CalendarDimension, 0, len(keys))
	for _, key := range keys {
		dimension = append(dimension, buildCalendarRow(key, instants[key]))
	}

	p.logger.Info("Обработано календарное измерение. Записей: %d", len(dimension))
	return dimension, nil
}

// buildCalendarRow раскладывает момент на производные календарные атрибуты
func buildCalendarRow(key int64, t time.Time) models.CalendarDimension {
	return models.CalendarDimension{
		CalendarKey: key,
		FullTS:      t,
		FullDate:    t.Format("2006-01-02"),
		TimeOfDay:   t.Format("15:04:05"),
		Year:        t.Year(),
		Month:       int(t.Month()),
		Day:         t.Day(),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		WeekdayName: t.Weekday().String(),
		IsWeekend:   normalize.IsWeekend(t),
		Quarter:     normalize.Quarter(t),
	}
}
