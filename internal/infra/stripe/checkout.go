package stripe

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	stripego "github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"

	"artist-portfolio/internal/domain/works"
)

const MetadataArtworkID = "artwork_id"

var (
	ErrNotForSale = errors.New("artwork is not for sale")
	ErrNoPrice    = errors.New("artwork has no price")
)

type Session struct {
	ID  string
	URL string
}

// Checkout opens one-off payment sessions for single artworks.
type Checkout struct {
	SecretKey string
	AppURL    string
	Currency  string
}

func NewCheckout(secretKey, appURL, currency string) *Checkout {
	if appURL == "" {
		appURL = "http://localhost:5173"
	}
	if currency == "" {
		currency = "eur"
	}
	return &Checkout{SecretKey: secretKey, AppURL: strings.TrimRight(appURL, "/"), Currency: strings.ToLower(currency)}
}

// UnitAmount converts a price to the smallest currency unit.
func UnitAmount(price decimal.Decimal) int64 {
	return price.Shift(2).Round(0).IntPart()
}

// Purchasable reports why a may not be sold, or nil.
func Purchasable(a works.Artwork) error {
	if !a.IsPublished || a.IsSold {
		return ErrNotForSale
	}
	if a.Price == nil || !a.Price.IsPositive() {
		return ErrNoPrice
	}
	return nil
}

func (c *Checkout) Params(a works.Artwork) *stripego.CheckoutSessionParams {
	product := &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripego.String(a.Title),
	}
	if a.Description != "" {
		product.Description = stripego.String(a.Description)
	}
	if a.ImageURL != "" {
		product.Images = []*string{stripego.String(a.ImageURL)}
	}

	params := &stripego.CheckoutSessionParams{
		SuccessURL: stripego.String(c.AppURL + "/gallery?purchased=" + a.ID),
		CancelURL:  stripego.String(c.AppURL + "/gallery?canceled=1"),
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripego.String(c.Currency),
					UnitAmount:  stripego.Int64(UnitAmount(*a.Price)),
					ProductData: product,
				},
				Quantity: stripego.Int64(1),
			},
		},
		ClientReferenceID: stripego.String(a.ID),
	}
	params.AddMetadata(MetadataArtworkID, a.ID)
	return params
}

func (c *Checkout) Create(ctx context.Context, a works.Artwork) (Session, error) {
	if err := Purchasable(a); err != nil {
		return Session{}, err
	}
	if c.SecretKey == "" {
		return Session{}, errors.New("stripe key not configured")
	}
	stripego.Key = c.SecretKey

	params := c.Params(a)
	params.Context = ctx
	s, err := checkoutsession.New(params)
	if err != nil {
		return Session{}, err
	}
	return Session{ID: s.ID, URL: s.URL}, nil
}

// ArtworkID reads the artwork a completed session paid for.
func ArtworkID(s *stripego.CheckoutSession) string {
	if s == nil {
		return ""
	}
	if id := s.Metadata[MetadataArtworkID]; id != "" {
		return id
	}
	return s.ClientReferenceID
}

// Paid is true once the session's money has been collected.
func Paid(s *stripego.CheckoutSession) bool {
	if s == nil {
		return false
	}
	status := string(s.PaymentStatus)
	return NormalizePaymentStatus(&status) == "paid"
}
