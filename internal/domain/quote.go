package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RateQuote is the price of one unit of Pair.From in Pair.To as of Date.
// It is only valid for the instant it was fetched.
type RateQuote struct {
	Pair CurrencyPair
	Rate decimal.Decimal
	Date string
}

type Conversion struct {
	Amount decimal.Decimal
	Quote  RateQuote
	Result decimal.Decimal
}

func NewConversion(amount decimal.Decimal, q RateQuote) Conversion {
	return Conversion{
		Amount: amount,
		Quote:  q,
		Result: amount.Mul(q.Rate),
	}
}

type DisplayPolicy string

const (
	DisplayTrimmed DisplayPolicy = "trimmed"
	DisplayFixed2  DisplayPolicy = "fixed2"
	DisplayInteger DisplayPolicy = "integer"
)

const trimmedPlaces = 8

func ParseDisplayPolicy(s string) (DisplayPolicy, error) {
	switch p := DisplayPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DisplayTrimmed, nil
	case DisplayTrimmed, DisplayFixed2, DisplayInteger:
		return p, nil
	default:
		return "", fmt.Errorf("unknown display policy: %q", s)
	}
}

// FormatAmount renders d for display. Unknown policies fall back to DisplayTrimmed.
func FormatAmount(d decimal.Decimal, p DisplayPolicy) string {
	switch p {
	case DisplayInteger:
		return d.Round(0).String()
	case DisplayFixed2:
		return d.StringFixed(2)
	default:
		return d.Round(trimmedPlaces).String()
	}
}

func (c Conversion) Format(p DisplayPolicy) string {
	return FormatAmount(c.Result, p)
}
