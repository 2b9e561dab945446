package application

import (
	"context"
	"errors"
	"fmt"

	"cnythb-converter/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RateConverter struct {
	provider RateProvider
	log      *zap.Logger
}

var _ Converter = (*RateConverter)(nil)

type Option func(*RateConverter)

func WithLogger(l *zap.Logger) Option { return func(c *RateConverter) { c.log = l } }

func NewRateConverter(provider RateProvider, opts ...Option) *RateConverter {
	c := &RateConverter{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// Convert fetches a fresh quote for pair and multiplies amount by it.
// Every call performs its own request; nothing is cached or shared between calls.
func (c *RateConverter) Convert(ctx context.Context, amount decimal.Decimal, pair domain.CurrencyPair) (domain.Conversion, error) {
	if pair.From == pair.To {
		return domain.Conversion{}, fmt.Errorf("convert %s: %w", pair, domain.ErrSameCurrency)
	}
	if err := pair.Validate(); err != nil {
		return domain.Conversion{}, fmt.Errorf("convert: %w", err)
	}
	if amount.IsNegative() {
		return domain.Conversion{}, fmt.Errorf("convert %s: %w", amount, domain.ErrNegativeAmount)
	}

	q, err := c.provider.Get(ctx, pair)
	if err != nil {
		c.log.Warn("rate fetch failed", zap.Stringer("pair", pair), zap.Error(err))
		if !errors.Is(err, domain.ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		}
		return domain.Conversion{}, err
	}

	conv := domain.NewConversion(amount, q)
	c.log.Debug("converted",
		zap.Stringer("pair", pair),
		zap.Stringer("amount", amount),
		zap.Stringer("rate", q.Rate),
		zap.Stringer("result", conv.Result),
		zap.String("date", q.Date),
	)
	return conv, nil
}
