package reconcile

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/normalize"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// DataService интерфейс для получения агрегатов таблицы фактов
type DataService interface {
	// GetFactTotals возвращает агрегаты указанной таблицы фактов
	GetFactTotals(table string) (FactTotals, error)
}

// MySQLDataService реализация DataService поверх хранилища MySQL
type MySQLDataService struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewMySQLDataService создает новый экземпляр MySQLDataService
func NewMySQLDataService(db *sql.DB, logger *utils.ETLLogger) *MySQLDataService {
	return &MySQLDataService{
		db:     db,
		logger: logger,
	}
}

// GetFactTotals читает агрегаты таблицы фактов одним запросом плюс
// разбивку выручки по товарам
func (s *MySQLDataService) GetFactTotals(table string) (FactTotals, error) {
	totals := FactTotals{
		RevenueByProduct: make(map[int]float64),
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COALESCE(SUM(quantity), 0),
			COALESCE(SUM(total_amount), 0),
			COUNT(DISTINCT customer_key),
			COUNT(DISTINCT product_key)
		FROM %s
	`, table)

	if err := s.db.QueryRow(query).Scan(
		&totals.RowCount,
		&totals.QuantitySum,
		&totals.TotalAmountSum,
		&totals.DistinctCustomers,
		&totals.DistinctProducts,
	); err != nil {
		return FactTotals{}, fmt.Errorf("ошибка при чтении агрегатов таблицы %s: %w", table, err)
	}

	revenueQuery := fmt.Sprintf(`
		SELECT product_key, COALESCE(SUM(total_amount), 0)
		FROM %s
		GROUP BY product_key
	`, table)

	rows, err := s.db.Query(revenueQuery)
	if err != nil {
		return FactTotals{}, fmt.Errorf("ошибка при чтении выручки по товарам из %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var productKey int
		var revenue float64
		if err := rows.Scan(&productKey, &revenue); err != nil {
			return FactTotals{}, fmt.Errorf("ошибка при сканировании выручки по товару: %w", err)
		}
		totals.RevenueByProduct[productKey] = revenue
	}
	if err := rows.Err(); err != nil {
		return FactTotals{}, fmt.Errorf("ошибка при итерации по выручке товаров: %w", err)
	}

	s.logger.Debug("Агрегаты %s: строк=%d, сумма=%0.2f", table, totals.RowCount, totals.TotalAmountSum)
	return totals, nil
}

// ComputeFactTotals вычисляет те же агрегаты по фактам в памяти.
// Используется сверкой до загрузки и тестами
func ComputeFactTotals(facts []models.SalesFact) FactTotals {
	totals := FactTotals{
		RevenueByProduct: make(map[int]float64),
	}

	customers := make(map[int]bool)
	products := make(map[int]bool)

	for _, fact := range facts {
		totals.RowCount++
		totals.QuantitySum += fact.Quantity
		totals.TotalAmountSum += fact.TotalAmount
		customers[fact.CustomerKey] = true
		products[fact.ProductKey] = true
		totals.RevenueByProduct[fact.ProductKey] += fact.TotalAmount
	}

	totals.TotalAmountSum = normalize.Round2(totals.TotalAmountSum)
	for key, revenue := range totals.RevenueByProduct {
		totals.RevenueByProduct[key] = normalize.Round2(revenue)
	}

	totals.DistinctCustomers = len(customers)
	totals.DistinctProducts = len(products)
	return totals
}
