// Package pricing computes the price breakdown of a reservation.
package pricing

//go:generate go run go.uber.org/mock/mockgen -source=./pricing.go -destination=./mocks/pricing_mock.go -package=mocks

import (
	"dinebook/config"
	"math"
)

// centEpsilon absorbs binary float error so values like 1.005 round up.
const centEpsilon = 1e-9

type Rates struct {
	BaseFee        float64
	PersonFee      float64
	ServiceFeeRate float64
}

var DefaultRates = Rates{
	BaseFee:        10,
	PersonFee:      5,
	ServiceFeeRate: 0.05,
}

type Breakdown struct {
	BaseFee             float64 `json:"base_fee"`
	PersonFee           float64 `json:"person_fee"`
	ServiceFee          float64 `json:"service_fee"`
	Subtotal            float64 `json:"subtotal"`
	TotalBeforeDiscount float64 `json:"total_before_discount"`
	DiscountAmount      float64 `json:"discount_amount"`
	DiscountPercentage  float64 `json:"discount_percentage"`
	Total               float64 `json:"total"`
}

type Calculator interface {
	Compute(partySize int, discountPercentage float64) Breakdown
}

type calculatorImpl struct {
	rates Rates
}

func NewCalculator(rates Rates) Calculator {
	return &calculatorImpl{rates: rates}
}

func New(cfg *config.Config) Calculator {
	return NewCalculator(Rates{
		BaseFee:        cfg.Reservation.Pricing.BaseFee,
		PersonFee:      cfg.Reservation.Pricing.PersonFee,
		ServiceFeeRate: cfg.Reservation.Pricing.ServiceFeeRate,
	})
}

// Compute prices a party. The total is derived from unrounded intermediates;
// the fee fields are rounded to cents for storage.
func (c *calculatorImpl) Compute(partySize int, discountPercentage float64) Breakdown {
	additionalGuests := max(partySize-1, 0)

	if discountPercentage < 0 {
		discountPercentage = 0
	}

	if discountPercentage > 100 {
		discountPercentage = 100
	}

	base := c.rates.BaseFee
	personFee := float64(additionalGuests) * c.rates.PersonFee
	subtotal := base + personFee
	serviceFee := subtotal * c.rates.ServiceFeeRate
	totalBeforeDiscount := subtotal + serviceFee
	discount := totalBeforeDiscount * discountPercentage / 100

	return Breakdown{
		BaseFee:             Round2(base),
		PersonFee:           Round2(personFee),
		ServiceFee:          Round2(serviceFee),
		Subtotal:            Round2(subtotal),
		TotalBeforeDiscount: Round2(totalBeforeDiscount),
		DiscountAmount:      Round2(discount),
		DiscountPercentage:  discountPercentage,
		Total:               Round2(totalBeforeDiscount - discount),
	}
}

// Round2 rounds half-up on the cent boundary.
func Round2(v float64) float64 {
	if v < 0 {
		return -Round2(-v)
	}

	return math.Floor(v*100+0.5+centEpsilon) / 100
}
