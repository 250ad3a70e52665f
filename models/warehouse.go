package models

import (
	"time"
)

// CustomerDimension представляет измерение клиентов в хранилище
type CustomerDimension struct {
	CustomerKey int       // суррогатный ключ
	CustomerID  string    // натуральный ключ (идентификатор клиента в источнике)
	Name        string
	Country     string
	SignupDate  time.Time // нулевое время, если дата регистрации не распознана
}

// ProductDimension представляет измерение товаров в хранилище
type ProductDimension struct {
	ProductKey  int    // суррогатный ключ
	StockCode   string // натуральный ключ (артикул)
	Description string
	UnitPrice   float64 // разрешённая цена: распарсенная либо медианная
	Category    string
	Brand       string
}

// CalendarDimension представляет календарное измерение в хранилище.
// Суррогатный ключ: момент времени в формате YYYYMMDDHHMMSS (14 цифр);
// два момента внутри одной секунды схлопываются в одну запись
type CalendarDimension struct {
	CalendarKey int64 // 14-значный ключ вида 20200301101500
	FullTS      time.Time
	FullDate    string // YYYY-MM-DD
	TimeOfDay   string // HH:MM:SS
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	WeekdayName string
	IsWeekend   bool
	Quarter     int
}

// SalesFact представляет факт продажи в хранилище.
// Все три ссылки на измерения обязаны разрешаться в существующие записи
type SalesFact struct {
	ID          int
	CalendarKey int64
	ProductKey  int
	CustomerKey int
	InvoiceID   string
	Quantity    int
	UnitPrice   float64
	TotalAmount float64
	LoadedAt    time.Time
}
