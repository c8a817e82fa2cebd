package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

func TestComputeQuote_PercentPromo(t *testing.T) {
	// 990×2 + 80 delivery − SAVE10 (10% of subtotal = 198) = 1862.
	items := []domain.CheckoutItem{
		{ProductID: 1, ProductName: "Premium Panjabi", Quantity: 2, Price: 990},
	}

	quote, err := ComputeQuote(items, 80, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, float64(1980), quote.Subtotal)
	assert.Equal(t, float64(198), quote.Discount)
	assert.Equal(t, float64(1862), quote.Total)
	assert.Equal(t, "SAVE10", quote.PromoCode)
}

func TestComputeQuote_UnknownCode(t *testing.T) {
	items := []domain.CheckoutItem{{ProductID: 1, Quantity: 1, Price: 500}}

	quote, err := ComputeQuote(items, 80, "UNKNOWN123")
	assert.ErrorIs(t, err, ErrInvalidPromo)
	// Checkout stays completable: discount zero, total still priced.
	assert.Equal(t, float64(0), quote.Discount)
	assert.Equal(t, float64(580), quote.Total)
	assert.Empty(t, quote.PromoCode)
}

func TestComputeQuote_NoCode(t *testing.T) {
	items := []domain.CheckoutItem{{ProductID: 1, Quantity: 3, Price: 100.50}}

	quote, err := ComputeQuote(items, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 301.50, quote.Subtotal)
	assert.Equal(t, 301.50, quote.Total)
}

func TestComputeQuote_FixedPromoNeverNegative(t *testing.T) {
	items := []domain.CheckoutItem{{ProductID: 1, Quantity: 1, Price: 20}}

	quote, err := ComputeQuote(items, 0, "FLAT50")
	require.NoError(t, err)
	assert.Equal(t, float64(0), quote.Total)
}

func TestComputeQuote_CodeIsCaseInsensitive(t *testing.T) {
	items := []domain.CheckoutItem{{ProductID: 1, Quantity: 1, Price: 1000}}

	quote, err := ComputeQuote(items, 0, " save10 ")
	require.NoError(t, err)
	assert.Equal(t, float64(100), quote.Discount)
	assert.Equal(t, "SAVE10", quote.PromoCode)
}

func TestExpectedTotal(t *testing.T) {
	items := []domain.CheckoutItem{
		{ProductID: 1, Quantity: 2, Price: 990},
	}
	assert.Equal(t, float64(1862), ExpectedTotal(items, 80, 198))
	assert.Equal(t, float64(0), ExpectedTotal(nil, 0, 100))
}
