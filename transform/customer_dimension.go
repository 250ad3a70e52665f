package transform

import (
	"sort"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/normalize"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// CustomerDimensionProcessor отвечает за построение измерения клиентов
type CustomerDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewCustomerDimensionProcessor создает новый экземпляр CustomerDimensionProcessor
func NewCustomerDimensionProcessor(logger *utils.ETLLogger) *CustomerDimensionProcessor {
	return &CustomerDimensionProcessor{
		logger: logger,
	}
}

// кандидат на выживание при дедупликации
type customerCandidate struct {
	record     models.RawRecord
	signupDate time.Time
	signupOK   bool
	order      int // позиция во входных данных для стабильного разрешения ничьих
}

// Process строит дедуплицированное измерение клиентов по ключу customer_id.
// Среди дубликатов выживает запись с самой поздней распознанной датой
// регистрации, при равенстве первая во входном порядке. Суррогатные ключи
// назначаются по возрастанию натурального ключа
func (p *CustomerDimensionProcessor) Process(records []models.RawRecord) ([]models.CustomerDimension, int, error) {
	p.logger.Debug("Обработка измерения клиентов...")

	survivors := make(map[string]customerCandidate)
	dropped := 0

	for i, record := range records {
		naturalKey, ok := normalize.CleanText(record.Field("customer_id"))
		if !ok {
			// Запись измерения без натурального ключа бессмысленна:
			// отбрасываем с предупреждением, карантин не для этого пути
			dropped++
			continue
		}

		candidate := customerCandidate{record: record, order: i}
		candidate.signupDate, candidate.signupOK = normalize.ParseInstant(record.Field("signup_date"))

		current, exists := survivors[naturalKey]
		if !exists || candidateWins(candidate, current) {
			survivors[naturalKey] = candidate
		}
	}

	if dropped > 0 {
		p.logger.Info("Отброшено записей клиентов без натурального ключа: %d", dropped)
	}

	// Назначаем суррогатные ключи по возрастанию натурального ключа
	naturalKeys := make([]string, 0, len(survivors))
	for key := range survivors {
		naturalKeys = append(naturalKeys, key)
	}
	sort.Strings(naturalKeys)

	dimension := make([]models.CustomerDimension, 0, len(naturalKeys))
	for i, key := range naturalKeys {
		candidate := survivors[key]

		name, _ := normalize.TitleText(candidate.record.Field("name"))
		country, _ := normalize.TitleText(candidate.record.Field("country"))

		row := models.CustomerDimension{
			CustomerKey: i + 1,
			CustomerID:  key,
			Name:        name,
			Country:     country,
		}
		if candidate.signupOK {
			row.SignupDate = candidate.signupDate
		}

		dimension = append(dimension, row)
	}

	p.logger.Info("Обработано измерение клиентов. Записей: %d", len(dimension))
	return dimension, dropped, nil
}

// candidateWins сообщает, вытесняет ли новый кандидат текущего выжившего.
// Распознанная дата регистрации всегда сильнее нераспознанной, более поздняя
// дата сильнее более ранней; в остальных случаях текущий сохраняется
// (стабильный порядок по входу)
func candidateWins(next, current customerCandidate) bool {
	if next.signupOK != current.signupOK {
		return next.signupOK
	}
	if next.signupOK && current.signupOK && !next.signupDate.Equal(current.signupDate) {
		return next.signupDate.After(current.signupDate)
	}
	return false
}
