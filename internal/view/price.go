package view

import (
	"strconv"

	"github.com/stationone-hq/stationone-menu/internal/domain"
)

// Currency is appended to every rendered amount.
const Currency = "EG"

// PriceTag is the price block shown for a product.
type PriceTag struct {
	Shown    bool
	Current  float64
	Original float64
	OnSale   bool
}

// NewPriceTag derives the tag for a product: nothing without a price, the
// discounted price over the struck original when a discount is set.
func NewPriceTag(p domain.Product) PriceTag {
	if p.Price == 0 {
		return PriceTag{}
	}
	if p.PriceAfterDiscount != nil && *p.PriceAfterDiscount != 0 {
		return PriceTag{Shown: true, Current: *p.PriceAfterDiscount, Original: p.Price, OnSale: true}
	}
	return PriceTag{Shown: true, Current: p.Price}
}

func (t PriceTag) String() string {
	if !t.Shown {
		return ""
	}
	if t.OnSale {
		return FormatAmount(t.Current) + " (was " + FormatAmount(t.Original) + ") SALE"
	}
	return FormatAmount(t.Current)
}

// FormatAmount renders an amount without trailing zeros, e.g. "45 EG" or "12.5 EG".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + Currency
}

// OfferPrice returns the special price line of an offer, or "" when unset.
func OfferPrice(o domain.Offer) string {
	if o.PriceAfterDiscount == nil || *o.PriceAfterDiscount == 0 {
		return ""
	}
	return FormatAmount(*o.PriceAfterDiscount)
}

// OfferStatus reports "Active Offer" or "Offer Expired"; "" when the backend
// did not say.
func OfferStatus(o domain.Offer) string {
	if o.IsActive == nil {
		return ""
	}
	if *o.IsActive {
		return "Active Offer"
	}
	return "Offer Expired"
}
