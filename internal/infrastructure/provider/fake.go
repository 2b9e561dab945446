package provider

import (
	"context"
	"time"

	"cnythb-converter/internal/application"
	"cnythb-converter/internal/domain"

	"github.com/shopspring/decimal"
)

// Ensure Fake implements application.RateProvider.
var _ application.RateProvider = (*Fake)(nil)

// Fake quotes a fixed rate for every pair. Useful offline.
type Fake struct {
	rate decimal.Decimal
}

func NewFake(rate decimal.Decimal) *Fake { return &Fake{rate: rate} }

func (f *Fake) Get(_ context.Context, pair domain.CurrencyPair) (domain.RateQuote, error) {
	return domain.RateQuote{
		Pair: pair,
		Rate: f.rate,
		Date: time.Now().UTC().Format(time.DateOnly),
	}, nil
}
