// Package pricing computes checkout totals. All arithmetic runs on
// decimals; float64 only appears at the JSON boundary.
package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

var ErrInvalidPromo = errors.New("invalid promo code")

type promo struct {
	percent int64
	amount  decimal.Decimal
}

// Promo table as shipped on the storefronts. Percent discounts apply to the
// subtotal only, never the delivery charge.
var promos = map[string]promo{
	"SAVE10":    {percent: 10},
	"RAMADAN15": {percent: 15},
	"FLAT50":    {amount: decimal.NewFromInt(50)},
}

type Quote struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryCharge float64 `json:"delivery_charge"`
	Discount       float64 `json:"discount"`
	Total          float64 `json:"total"`
	PromoCode      string  `json:"promo_code,omitempty"`
}

func Subtotal(items []domain.CheckoutItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	f, _ := sum.Float64()
	return f
}

// Discount resolves a promo code against a subtotal. Unknown codes return
// ErrInvalidPromo with a zero discount; checkout remains completable.
func Discount(code string, subtotal float64) (float64, error) {
	if code == "" {
		return 0, nil
	}
	p, ok := promos[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return 0, ErrInvalidPromo
	}
	if p.percent > 0 {
		d := decimal.NewFromFloat(subtotal).
			Mul(decimal.NewFromInt(p.percent)).
			Div(decimal.NewFromInt(100))
		f, _ := d.Float64()
		return f, nil
	}
	f, _ := p.amount.Float64()
	return f, nil
}

// ComputeQuote prices a cart: subtotal + delivery - discount, never negative.
func ComputeQuote(items []domain.CheckoutItem, deliveryCharge float64, code string) (Quote, error) {
	subtotal := Subtotal(items)
	discount, err := Discount(code, subtotal)

	total := decimal.NewFromFloat(subtotal).
		Add(decimal.NewFromFloat(deliveryCharge)).
		Sub(decimal.NewFromFloat(discount))
	if total.IsNegative() {
		total = decimal.Zero
	}
	t, _ := total.Float64()

	q := Quote{
		Subtotal:       subtotal,
		DeliveryCharge: deliveryCharge,
		Discount:       discount,
		Total:          t,
	}
	if err == nil && code != "" {
		q.PromoCode = strings.ToUpper(strings.TrimSpace(code))
	}
	return q, err
}

// ExpectedTotal recomputes what a submitted checkout should cost given its
// own line items, delivery charge and discount. Used to flag mismatching
// client-side totals; the submitted value is still what gets persisted.
func ExpectedTotal(items []domain.CheckoutItem, deliveryCharge, discount float64) float64 {
	total := decimal.NewFromFloat(Subtotal(items)).
		Add(decimal.NewFromFloat(deliveryCharge)).
		Sub(decimal.NewFromFloat(discount))
	if total.IsNegative() {
		total = decimal.Zero
	}
	f, _ := total.Float64()
	return f
}
