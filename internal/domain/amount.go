package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type NumericPolicy string

const (
	DecimalAllowed NumericPolicy = "decimal"
	DigitsOnly     NumericPolicy = "digits"
)

var (
	digitsRe  = regexp.MustCompile(`^[0-9]+$`)
	decimalRe = regexp.MustCompile(`^(?:[0-9]+\.?[0-9]*|\.[0-9]+)$`)
	// partial inputs may stop at a lone separator while typing
	partialDecimalRe = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)
	digitsPayloadRe  = regexp.MustCompile(`^[0-9]+$`)
	decimalPayloadRe = regexp.MustCompile(`^[0-9.,]+$`)
)

func (p NumericPolicy) fractional() bool { return p != DigitsOnly }

func (p NumericPolicy) normalize(s string) string {
	s = strings.TrimSpace(s)
	if p.fractional() {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}

func (p NumericPolicy) matches(s string) bool {
	if p.fractional() {
		return decimalRe.MatchString(s)
	}
	return digitsRe.MatchString(s)
}

// ValidateAmount parses raw into a non-negative amount under policy.
func ValidateAmount(raw string, policy NumericPolicy) (decimal.Decimal, error) {
	s := policy.normalize(raw)
	if s == "" {
		return decimal.Zero, ErrEmptyInput
	}
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		if policy.matches(strings.TrimSpace(rest)) {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrNegativeAmount, raw)
		}
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedNumber, raw)
	}
	if !policy.matches(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedNumber, raw)
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedNumber, raw)
	}
	return d, nil
}

// AcceptsPayload reports whether a typed or pasted payload may be inserted at all.
func AcceptsPayload(policy NumericPolicy, payload string) bool {
	if policy.fractional() {
		return decimalPayloadRe.MatchString(payload)
	}
	return digitsPayloadRe.MatchString(payload)
}

// AcceptsEdit reports whether candidate, the field text after an edit, is
// empty or a prefix of a valid amount.
func AcceptsEdit(policy NumericPolicy, candidate string) bool {
	s := policy.normalize(candidate)
	if s == "" {
		return true
	}
	if policy.fractional() {
		return partialDecimalRe.MatchString(s)
	}
	return digitsRe.MatchString(s)
}

func ParseNumericPolicy(s string) (NumericPolicy, error) {
	switch NumericPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DecimalAllowed:
		return DecimalAllowed, nil
	case DigitsOnly:
		return DigitsOnly, nil
	default:
		return "", fmt.Errorf("unknown numeric policy: %q", s)
	}
}
