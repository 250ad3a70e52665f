package reconcile

import (
	"time"
)

// FactTotals содержит агрегаты одной таблицы фактов, по которым
// сверяются два запуска конвейера
type FactTotals struct {
	RowCount          int             // количество строк фактов
	QuantitySum       int             // сумма количеств
	TotalAmountSum    float64         // сумма итоговых сумм
	DistinctCustomers int             // число различных ключей клиентов
	DistinctProducts  int             // число различных ключей товаров
	RevenueByProduct  map[int]float64 // выручка по каждому ключу товара
}

// Discrepancy описывает одно расхождение между агрегатами двух запусков
type Discrepancy struct {
	Metric         string  // имя метрики
	PrimaryValue   float64 // значение в основном запуске
	AlternateValue float64 // значение в альтернативном запуске
	Delta          float64 // абсолютная разница
}

// ReconciliationReport итог сверки двух запусков конвейера
type ReconciliationReport struct {
	RunTimestamp      time.Time     `json:"run_timestamp"`
	PrimaryStrategy   string        `json:"primary_strategy"`
	AlternateStrategy string        `json:"alternate_strategy"`
	Primary           FactTotals    `json:"-"`
	Alternate         FactTotals    `json:"-"`
	Discrepancies     []Discrepancy `json:"discrepancies"`
	Match             bool          `json:"match"`
}
