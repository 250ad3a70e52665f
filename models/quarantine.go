package models

import (
	"time"

	"github.com/google/uuid"
)

// Коды причин отбраковки строк. Порядок объявления задает приоритет:
// если у строки несколько проблем, фиксируется самая приоритетная
const (
	ReasonMissingProductAndCustomer = "missing product and customer mapping"
	ReasonMissingProduct            = "missing product mapping"
	ReasonMissingCustomer           = "missing customer mapping"
	ReasonMissingCalendar           = "missing calendar mapping"
	ReasonMissingInvoice            = "missing invoice id"
)

// QuarantineEntry представляет запись карантина: исходная строка,
// не прошедшая конформацию, с тегом источника и причиной отбраковки.
// Записи только добавляются и никогда не удаляются конвейером
type QuarantineEntry struct {
	EntryID     string
	SourceTable string
	RawRecord   RawRecord
	Reason      string
	CreatedAt   time.Time
}

// NewQuarantineEntry создает запись карантина для отбракованной строки
func NewQuarantineEntry(record RawRecord, reason string) QuarantineEntry {
	return QuarantineEntry{
		EntryID:     uuid.New().String(),
		SourceTable: record.Source,
		RawRecord:   record,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
}
