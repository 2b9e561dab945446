package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type Currency string

const (
	CNY Currency = "CNY"
	THB Currency = "THB"
)

// Currencies are the options offered by the currency selectors.
var Currencies = []Currency{CNY, THB}

var codeRe = regexp.MustCompile(`^[A-Z]{3}$`)

func ParseCurrency(s string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if !codeRe.MatchString(c) {
		return "", fmt.Errorf("%w: %q", ErrMalformedCurrency, s)
	}
	return Currency(c), nil
}

type CurrencyPair struct {
	From Currency
	To   Currency
}

// NewCurrencyPair parses both codes and rejects identical ones.
func NewCurrencyPair(from, to string) (CurrencyPair, error) {
	f, err := ParseCurrency(from)
	if err != nil {
		return CurrencyPair{}, err
	}
	t, err := ParseCurrency(to)
	if err != nil {
		return CurrencyPair{}, err
	}
	p := CurrencyPair{From: f, To: t}
	if err := p.Validate(); err != nil {
		return CurrencyPair{}, err
	}
	return p, nil
}

func (p CurrencyPair) Validate() error {
	if !codeRe.MatchString(string(p.From)) || !codeRe.MatchString(string(p.To)) {
		return fmt.Errorf("%w: %s", ErrMalformedCurrency, p)
	}
	if p.From == p.To {
		return fmt.Errorf("%w: %s", ErrSameCurrency, p)
	}
	return nil
}

func (p CurrencyPair) Swap() CurrencyPair {
	return CurrencyPair{From: p.To, To: p.From}
}

func (p CurrencyPair) String() string {
	return string(p.From) + "/" + string(p.To)
}
