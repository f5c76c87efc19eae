package stripe

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripego "github.com/stripe/stripe-go/v75"

	"artist-portfolio/internal/domain/works"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestUnitAmount(t *testing.T) {
	assert.Equal(t, int64(120050), UnitAmount(decimal.RequireFromString("1200.50")))
	assert.Equal(t, int64(1), UnitAmount(decimal.RequireFromString("0.005")))
	assert.Equal(t, int64(90000), UnitAmount(decimal.RequireFromString("900")))
}

func TestPurchasable(t *testing.T) {
	tests := []struct {
		name string
		a    works.Artwork
		want error
	}{
		{"ok", works.Artwork{IsPublished: true, Price: price("10")}, nil},
		{"sold", works.Artwork{IsPublished: true, IsSold: true, Price: price("10")}, ErrNotForSale},
		{"draft", works.Artwork{Price: price("10")}, ErrNotForSale},
		{"no_price", works.Artwork{IsPublished: true}, ErrNoPrice},
		{"zero_price", works.Artwork{IsPublished: true, Price: price("0")}, ErrNoPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Purchasable(tt.a))
		})
	}
}

func TestParams(t *testing.T) {
	c := NewCheckout("sk_test", "https://artist.example/", "EUR")
	p := c.Params(works.Artwork{ID: "art-1", Title: "Dusk", ImageURL: "https://img/1.png", Price: price("250.00")})

	require.Len(t, p.LineItems, 1)
	item := p.LineItems[0]
	assert.Equal(t, "eur", *item.PriceData.Currency)
	assert.Equal(t, int64(25000), *item.PriceData.UnitAmount)
	assert.Equal(t, "Dusk", *item.PriceData.ProductData.Name)
	assert.Equal(t, "payment", *p.Mode)
	assert.Equal(t, "art-1", *p.ClientReferenceID)
	assert.Equal(t, "art-1", p.Metadata[MetadataArtworkID])
	assert.Equal(t, "https://artist.example/gallery?purchased=art-1", *p.SuccessURL)
}

func TestArtworkIDAndPaid(t *testing.T) {
	s := &stripego.CheckoutSession{
		ClientReferenceID: "ref",
		Metadata:          map[string]string{MetadataArtworkID: "meta"},
		PaymentStatus:     stripego.CheckoutSessionPaymentStatusPaid,
	}
	assert.Equal(t, "meta", ArtworkID(s))
	assert.True(t, Paid(s))

	s.Metadata = nil
	s.PaymentStatus = stripego.CheckoutSessionPaymentStatusUnpaid
	assert.Equal(t, "ref", ArtworkID(s))
	assert.False(t, Paid(s))
	assert.Equal(t, "", ArtworkID(nil))
}

func TestNormalizePaymentStatus(t *testing.T) {
	none := " "
	paid := "no_payment_required"
	assert.Equal(t, "none", NormalizePaymentStatus(nil))
	assert.Equal(t, "none", NormalizePaymentStatus(&none))
	assert.Equal(t, "paid", NormalizePaymentStatus(&paid))
}
