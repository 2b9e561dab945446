package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"cnythb-converter/internal/application"
	"cnythb-converter/internal/domain"
	"cnythb-converter/internal/infrastructure/httpx"

	"github.com/shopspring/decimal"
)

// ExchangeRateProvider queries `GET <BaseURL>?from=<CODE>&to=<CODE>` on every call.
type ExchangeRateProvider struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.RateProvider = (*ExchangeRateProvider)(nil)

type latestResp struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (p *ExchangeRateProvider) Get(ctx context.Context, pair domain.CurrencyPair) (domain.RateQuote, error) {
	if p.BaseURL == "" {
		return domain.RateQuote{}, fmt.Errorf("%w: exchangerate: missing base url", domain.ErrFetchFailed)
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("%w: exchangerate: invalid base url: %w", domain.ErrFetchFailed, err)
	}
	q := u.Query()
	q.Set("from", string(pair.From))
	q.Set("to", string(pair.To))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("%w: exchangerate: create request: %w", domain.ErrFetchFailed, err)
	}

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	var body latestResp
	if err := client.DoJSON(ctx, req, &body); err != nil {
		return domain.RateQuote{}, fmt.Errorf("%w: exchangerate: %w", domain.ErrFetchFailed, err)
	}

	if body.Base != "" && body.Base != string(pair.From) {
		return domain.RateQuote{}, unavailable("base %s, want %s", body.Base, pair.From)
	}
	rate, ok := body.Rates[string(pair.To)]
	if !ok {
		return domain.RateQuote{}, unavailable("missing rate for %s", pair.To)
	}
	if !rate.IsPositive() {
		return domain.RateQuote{}, unavailable("non-positive rate %s for %s", rate, pair.To)
	}

	return domain.RateQuote{
		Pair: pair,
		Rate: rate,
		Date: body.Date,
	}, nil
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %w: exchangerate: %s", domain.ErrFetchFailed, domain.ErrRateUnavailable, fmt.Sprintf(format, args...))
}
