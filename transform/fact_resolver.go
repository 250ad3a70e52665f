package transform

import (
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/normalize"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// DimensionLookups содержит таблицы поиска, построенные из готовых измерений
type DimensionLookups struct {
	Customers map[string]int                      // натуральный ключ -> суррогатный ключ
	Products  map[string]models.ProductDimension // натуральный ключ -> запись измерения (нужна разрешённая цена)
	Calendar  map[int64]bool                      // существование 14-значного ключа
}

// BuildLookups строит таблицы поиска из построенных измерений
func BuildLookups(
	customers []models.CustomerDimension,
	products []models.ProductDimension,
	calendar []models.CalendarDimension,
) DimensionLookups {
	lookups := DimensionLookups{
		Customers: make(map[string]int, len(customers)),
		Products:  make(map[string]models.ProductDimension, len(products)),
		Calendar:  make(map[int64]bool, len(calendar)),
	}
	for _, c := range customers {
		lookups.Customers[c.CustomerID] = c.CustomerKey
	}
	for _, p := range products {
		lookups.Products[p.StockCode] = p
	}
	for _, c := range calendar {
		lookups.Calendar[c.CalendarKey] = true
	}
	return lookups
}

// FactResolverProcessor отвечает за разрешение строк продаж в факты
type FactResolverProcessor struct {
	logger *utils.ETLLogger
}

// NewFactResolverProcessor создает новый экземпляр FactResolverProcessor
func NewFactResolverProcessor(logger *utils.ETLLogger) *FactResolverProcessor {
	return &FactResolverProcessor{
		logger: logger,
	}
}

// Process разрешает каждую строку продаж в факт либо отправляет её в карантин.
// Строки независимы: порядок обработки не влияет на результат
func (p *FactResolverProcessor) Process(sales []models.RawRecord, lookups DimensionLookups) ([]models.SalesFact, []models.QuarantineEntry) {
	p.logger.Debug("Разрешение фактов продаж...")

	facts := make([]models.SalesFact, 0, len(sales))
	var quarantine []models.QuarantineEntry

	for _, record := range sales {
		fact, reason := p.resolveRow(record, lookups)
		if reason != "" {
			quarantine = append(quarantine, models.NewQuarantineEntry(record, reason))
			continue
		}
		facts = append(facts, fact)
	}

	p.logger.Info("Разрешено фактов: %d, отправлено в карантин: %d", len(facts), len(quarantine))
	return facts, quarantine
}

// resolveRow разрешает одну строку. Пустая причина означает успех.
// Причины ранжированы по приоритету: отсутствие товара и клиента старше
// отсутствия товара, затем клиента, затем календаря, затем прочего
func (p *FactResolverProcessor) resolveRow(record models.RawRecord, lookups DimensionLookups) (models.SalesFact, string) {
	invoiceID, invoiceOK := normalize.CleanText(record.Field("invoice_no"))

	// Разрешаем три ссылки на измерения
	var product models.ProductDimension
	productOK := false
	if stockCode, ok := normalize.CleanText(record.Field("stock_code")); ok {
		product, productOK = lookups.Products[stockCode]
	}

	customerKey := 0
	customerOK := false
	if customerID, ok := normalize.CleanText(record.Field("customer_id")); ok {
		customerKey, customerOK = lookups.Customers[customerID]
	}

	var calendarKey int64
	calendarOK := false
	if instant, ok := normalize.ParseInstant(record.Field("invoice_date")); ok {
		calendarKey = normalize.TimeKey(instant)
		calendarOK = lookups.Calendar[calendarKey]
	}

	switch {
	case !productOK && !customerOK:
		return models.SalesFact{}, models.ReasonMissingProductAndCustomer
	case !productOK:
		return models.SalesFact{}, models.ReasonMissingProduct
	case !customerOK:
		return models.SalesFact{}, models.ReasonMissingCustomer
	case !calendarOK:
		return models.SalesFact{}, models.ReasonMissingCalendar
	case !invoiceOK:
		return models.SalesFact{}, models.ReasonMissingInvoice
	}

	// Количество: распарсенное целое либо явный ноль.
	// Строка с плохим количеством, но валидными ключами всё равно загружается
	quantity, ok := normalize.ParseQuantity(record.Field("quantity"))
	if !ok {
		quantity = 0
	}

	// Цена: распарсенная либо разрешённая цена товара (в ней уже учтена
	// замороженная медиана)
	unitPrice, ok := normalize.ParseDecimal(record.Field("unit_price"))
	if !ok {
		unitPrice = product.UnitPrice
	}

	// Сумма: распарсенная ненулевая либо количество × цена
	totalAmount, ok := normalize.ParseDecimal(record.Field("total_amount"))
	if !ok || totalAmount == 0 {
		totalAmount = normalize.Round2(float64(quantity) * unitPrice)
	} else {
		totalAmount = normalize.Round2(totalAmount)
	}

	return models.SalesFact{
		CalendarKey: calendarKey,
		ProductKey:  product.ProductKey,
		CustomerKey: customerKey,
		InvoiceID:   invoiceID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: totalAmount,
	}, ""
}
