package model

import "time"

// Service is a purchasable offering listed on the marketplace.
// Sold is mutated only by payment reconciliation and never decreases.
type Service struct {
	ID                 int64
	Title              string
	Category           string
	Price              float64
	PriceAfterDiscount *float64
	Sold               int64
	CreatedAt          time.Time
}

// EffectivePrice returns the discounted price when one is set and lower
// than the list price.
func (s Service) EffectivePrice() float64 {
	if s.PriceAfterDiscount != nil && *s.PriceAfterDiscount < s.Price {
		return *s.PriceAfterDiscount
	}
	return s.Price
}
