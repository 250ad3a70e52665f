package models

import (
	"time"
)

// TransformedData содержит конформированные данные для загрузки в хранилище
type TransformedData struct {
	// Измерения
	Customers []CustomerDimension
	Products  []ProductDimension
	Calendar  []CalendarDimension

	// Факты
	Facts []SalesFact

	// Карантин
	Quarantine []QuarantineEntry

	// Метаданные
	Metadata ETLMetadata
}

// ETLMetadata содержит метаданные о запуске ETL
type ETLMetadata struct {
	RunTimestamp       time.Time
	Strategy           string
	SalesRowsRead      int
	CustomersLoaded    int
	ProductsLoaded     int
	CalendarLoaded     int
	FactsResolved      int
	RowsQuarantined    int
	QuarantineByReason map[string]int
	CustomersDropped   int // записи без натурального ключа (предупреждение, не карантин)
	ProductsDropped    int
}
