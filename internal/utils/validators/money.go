package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxMoney is the largest amount accepted from user input.
var MaxMoney = decimal.RequireFromString("999999999.99")

var errEmptyMoney = errors.New("empty amount")

// ParseMoney reads an amount written either as "1234.56" or in Brazilian
// notation ("1.234,56", "R$ 12,50"). The result is rounded to cents.
func ParseMoney(raw string) (decimal.Decimal, error) {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			return r
		}
		return -1
	}, raw)
	if s == "" {
		return decimal.Zero, errEmptyMoney
	}

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Contains(s, ","):
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return d.Round(2), nil
}

// IsValidMoney reports whether raw parses to an amount in [0, MaxMoney].
func IsValidMoney(raw string) bool {
	d, err := ParseMoney(raw)
	if err != nil {
		return false
	}
	return !d.IsNegative() && !d.GreaterThan(MaxMoney)
}
