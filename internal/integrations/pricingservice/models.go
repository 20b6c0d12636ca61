package pricingservice

import "github.com/google/uuid"

// PriceRange ценовой диапазон объекта по тарифам meal plan
type PriceRange struct {
	PropertyID uuid.UUID `json:"propertyId"`
	Min        float64   `json:"min"`
	Max        float64   `json:"max"`
	Currency   string    `json:"currency"`
}

// priceRangesRequest тело запроса ценовых диапазонов
type priceRangesRequest struct {
	PropertyIDs []uuid.UUID `json:"propertyIds"`
}

// priceRangesResponse ответ сервиса цен
type priceRangesResponse struct {
	Ranges []PriceRange `json:"ranges"`
}
