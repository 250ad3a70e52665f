package transform

import (
	"github.com/LilVoxy/coursework_dwh/models"
)

// Вспомогательные конструкторы сырых записей для тестов пакета

func rawCustomer(id, name, country, signupDate string) models.RawRecord {
	return models.RawRecord{
		Source: models.SourceCustomers,
		Fields: map[string]string{
			"customer_id": id,
			"name":        name,
			"country":     country,
			"signup_date": signupDate,
		},
	}
}

func rawProduct(stockCode, description, unitPrice, category, brand string) models.RawRecord {
	return models.RawRecord{
		Source: models.SourceProducts,
		Fields: map[string]string{
			"stock_code":  stockCode,
			"description": description,
			"unit_price":  unitPrice,
			"category":    category,
			"brand":       brand,
		},
	}
}

func rawSale(invoiceNo, stockCode, customerID, quantity, unitPrice, totalAmount, invoiceDate string) models.RawRecord {
	return models.RawRecord{
		Source: models.SourceSales,
		Fields: map[string]string{
			"invoice_no":   invoiceNo,
			"stock_code":   stockCode,
			"customer_id":  customerID,
			"quantity":     quantity,
			"unit_price":   unitPrice,
			"total_amount": totalAmount,
			"invoice_date": invoiceDate,
		},
	}
}

func rawCalendar(tsValue string) models.RawRecord {
	return models.RawRecord{
		Source: models.SourceCalendar,
		Fields: map[string]string{
			"ts_value": tsValue,
		},
	}
}

// sampleData возвращает небольшой согласованный набор сырых данных:
// два клиента, два товара, три валидные строки продаж и одна календарная запись
func sampleData() *models.ExtractedData {
	return &models.ExtractedData{
		Customers: []models.RawRecord{
			rawCustomer("C100", " john smith ", "UNITED KINGDOM", "2020-06-01"),
			rawCustomer("C200", "jane doe", "france", "01/03/2020"),
		},
		Products: []models.RawRecord{
			rawProduct("SKU-1", "ceramic mug", "9.99", "kitchen", "acme"),
			rawProduct("SKU-2", "wool scarf", "N/A", "apparel", "acme"),
		},
		Sales: []models.RawRecord{
			rawSale("INV-1", "SKU-1", "C100", "2", "9.99", "", "2020-03-01 10:15:00"),
			rawSale("INV-2", "SKU-2", "C200", "1", "4.50", "4.50", "2020-03-01 10:15:00"),
			rawSale("INV-3", "SKU-1", "C200", "3", "", "", "01/03/2020"),
		},
		Calendar: []models.RawRecord{
			rawCalendar("2020-03-02 08:00:00"),
		},
	}
}
