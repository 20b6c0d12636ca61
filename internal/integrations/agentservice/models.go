package agentservice

import "github.com/google/uuid"

// DiscountType тип агентской скидки
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

// Discount агентская скидка на конкретный объект
type Discount struct {
	PropertyID uuid.UUID    `json:"propertyId"`
	Type       DiscountType `json:"discountType"`
	Value      float64      `json:"discountValue"`
}

// Apply применяет скидку к цене, не опускаясь ниже нуля
// Результат округляется до двух знаков
func (d *Discount) Apply(price float64) float64 {
	var discounted float64
	if d.Type == DiscountPercentage {
		discounted = price * (1 - d.Value/100)
	} else {
		discounted = price - d.Value
	}
	if discounted < 0 {
		discounted = 0
	}
	return float64(int64(discounted*100+0.5)) / 100
}

// discountsResponse ответ сервиса агентов
type discountsResponse struct {
	Approved  bool       `json:"approved"`
	Discounts []Discount `json:"discounts"`
}
