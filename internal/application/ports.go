package application

import (
	"context"

	"cnythb-converter/internal/domain"

	"github.com/shopspring/decimal"
)

// RateProvider fetches a fresh quote for pair. Implementations must not cache.
type RateProvider interface {
	Get(ctx context.Context, pair domain.CurrencyPair) (domain.RateQuote, error)
}

type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, pair domain.CurrencyPair) (domain.Conversion, error)
}

// Display is the surface a Session drives. It is only touched from the
// goroutine that runs the session's Dispatcher.
type Display interface {
	AmountText() string
	SetAmountText(s string)
	ResultText() string
	SetResult(s string)
	SelectedPair() (from, to string)
	SetSelectedPair(from, to string)
	SetStatus(s string)
	SetTriggerEnabled(enabled bool)
	SetTitle(s string)
	// Refresh repaints the surface after an asynchronous update.
	Refresh()
}

// Dispatcher runs fn on the display goroutine.
type Dispatcher interface {
	Post(fn func())
}
