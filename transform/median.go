package transform

import (
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/normalize"
)

// ComputePriceMedians вычисляет медианную цену по каждому товару из успешно
// распарсенных цен строк продаж. Вычисляется один раз за запуск, до разрешения
// фактов, и далее только читается
func ComputePriceMedians(sales []models.RawRecord) map[string]float64 {
	pricesByProduct := make(map[string][]float64)

	for _, record := range sales {
		stockCode, ok := normalize.CleanText(record.Field("stock_code"))
		if !ok {
			continue
		}

		price, ok := normalize.ParseDecimal(record.Field("unit_price"))
		if !ok {
			continue
		}

		pricesByProduct[stockCode] = append(pricesByProduct[stockCode], price)
	}

	medians := make(map[string]float64, len(pricesByProduct))
	for stockCode, prices := range pricesByProduct {
		if median, ok := normalize.Median(prices); ok {
			medians[stockCode] = median
		}
	}

	return medians
}
