package models

import (
	"time"
)

// Имена исходных staging-таблиц
const (
	SourceCustomers = "raw_customers"
	SourceProducts  = "raw_products"
	SourceSales     = "raw_invoices"
	SourceCalendar  = "raw_calendar"
)

// RawRecord представляет одну запись staging-извлечения:
// отображение имени поля в сырой текст без каких-либо гарантий типизации.
// Запись создается извлечением, не изменяется и потребляется ровно один раз
type RawRecord struct {
	Source string
	Fields map[string]string
}

// Field возвращает сырое значение поля (пустая строка, если поле отсутствует)
func (r RawRecord) Field(name string) string {
	return r.Fields[name]
}

// Clone возвращает копию записи с независимой картой полей
func (r RawRecord) Clone() RawRecord {
	fields := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return RawRecord{Source: r.Source, Fields: fields}
}

// ExtractedData содержит сырые данные, извлечённые из staging-базы
type ExtractedData struct {
	Customers []RawRecord
	Products  []RawRecord
	Sales     []RawRecord
	Calendar  []RawRecord
	ExtractTS time.Time
}
