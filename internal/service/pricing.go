package service

import "github.com/Miyuranga305/Order-Platform-Frontend/internal/model"

// Breakdown содержит расчёт стоимости заказа по форме создания.
type Breakdown struct {
	Subtotal       float64
	DiscountAmount float64
	Tax            float64
	Total          float64
}

// Subtotal считает сумму позиций без скидок: Σ количество × цена.
// Скидки отдельных позиций на промежуточную сумму не влияют — они
// учитываются только в отображаемой строке позиции (поведение
// унаследовано от исходного интерфейса, см. DESIGN.md).
func Subtotal(items []model.OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Quantity) * it.UnitPrice
	}
	return sum
}

// CalculateBreakdown считает скидку, налог и итог заказа.
// Налог берётся с суммы после скидки уровня заказа.
func CalculateBreakdown(items []model.OrderItem, discountPct, taxRate float64) Breakdown {
	subtotal := Subtotal(items)
	discount := subtotal * discountPct / 100
	tax := (subtotal - discount) * taxRate / 100

	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Tax:            tax,
		Total:          subtotal - discount + tax,
	}
}

// ItemTotal возвращает отображаемую стоимость позиции с учётом её скидки.
func ItemTotal(it model.OrderItem) float64 {
	return float64(it.Quantity) * it.UnitPrice * (1 - it.Discount/100)
}

// ItemSavings возвращает отображаемую экономию по скидке позиции.
func ItemSavings(it model.OrderItem) float64 {
	return float64(it.Quantity) * it.UnitPrice * (it.Discount / 100)
}

// ItemStats содержит сводку по позициям формы заказа.
type ItemStats struct {
	Count         int
	TotalQuantity int
	AveragePrice  float64
}

// SummarizeItems считает количество позиций, общее количество единиц
// и среднюю цену единицы.
func SummarizeItems(items []model.OrderItem) ItemStats {
	stats := ItemStats{Count: len(items)}
	for _, it := range items {
		stats.TotalQuantity += it.Quantity
	}
	if stats.TotalQuantity > 0 {
		stats.AveragePrice = Subtotal(items) / float64(stats.TotalQuantity)
	}
	return stats
}
