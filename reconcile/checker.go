package reconcile

import (
	"math"
	"sort"
)

// Денежные агрегаты хранятся с точностью до сотых, все, что меньше
// половины копейки, считается равенством
const moneyEpsilon = 0.005

// Compare сравнивает агрегаты двух запусков и возвращает список расхождений.
// Пустой список означает эквивалентность запусков
func Compare(primary, alternate FactTotals) []Discrepancy {
	discrepancies := make([]Discrepancy, 0)

	if primary.RowCount != alternate.RowCount {
		discrepancies = append(discrepancies, countDiscrepancy(
			"row_count", primary.RowCount, alternate.RowCount))
	}

	if primary.QuantitySum != alternate.QuantitySum {
		discrepancies = append(discrepancies, countDiscrepancy(
			"quantity_sum", primary.QuantitySum, alternate.QuantitySum))
	}

	if math.Abs(primary.TotalAmountSum-alternate.TotalAmountSum) > moneyEpsilon {
		discrepancies = append(discrepancies, Discrepancy{
			Metric:         "total_amount_sum",
			PrimaryValue:   primary.TotalAmountSum,
			AlternateValue: alternate.TotalAmountSum,
			Delta:          math.Abs(primary.TotalAmountSum - alternate.TotalAmountSum),
		})
	}

	if primary.DistinctCustomers != alternate.DistinctCustomers {
		discrepancies = append(discrepancies, countDiscrepancy(
			"distinct_customers", primary.DistinctCustomers, alternate.DistinctCustomers))
	}

	if primary.DistinctProducts != alternate.DistinctProducts {
		discrepancies = append(discrepancies, countDiscrepancy(
			"distinct_products", primary.DistinctProducts, alternate.DistinctProducts))
	}

	discrepancies = append(discrepancies, compareProductRevenue(primary, alternate)...)

	return discrepancies
}

// compareProductRevenue сверяет выручку по каждому товару в обоих запусках
func compareProductRevenue(primary, alternate FactTotals) []Discrepancy {
	// Объединение ключей товаров обоих запусков, в стабильном порядке
	productKeys := make(map[int]bool)
	for key := range primary.RevenueByProduct {
		productKeys[key] = true
	}
	for key := range alternate.RevenueByProduct {
		productKeys[key] = true
	}

	sortedKeys := make([]int, 0, len(productKeys))
	for key := range productKeys {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Ints(sortedKeys)

	discrepancies := make([]Discrepancy, 0)
	for _, key := range sortedKeys {
		primaryRevenue := primary.RevenueByProduct[key]
		alternateRevenue := alternate.RevenueByProduct[key]

		if math.Abs(primaryRevenue-alternateRevenue) > moneyEpsilon {
			discrepancies = append(discrepancies, Discrepancy{
				Metric:         "product_revenue",
				PrimaryValue:   primaryRevenue,
				AlternateValue: alternateRevenue,
				Delta:          math.Abs(primaryRevenue - alternateRevenue),
			})
		}
	}

	return discrepancies
}

func countDiscrepancy(metric string, primary, alternate int) Discrepancy {
	return Discrepancy{
		Metric:         metric,
		PrimaryValue:   float64(primary),
		AlternateValue: float64(alternate),
		Delta:          math.Abs(float64(primary) - float64(alternate)),
	}
}
