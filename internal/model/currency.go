package model

import (
	"fmt"
	"strings"
)

// Currency is the native denomination of a unit.
// Keep these values stable; they are stored and exported.
type Currency string

const (
	USD Currency = "USD"
	ETH Currency = "ETH"
	BTC Currency = "BTC"
)

// Currencies lists every supported currency in display order.
var Currencies = []Currency{USD, ETH, BTC}

func (c Currency) Valid() bool {
	switch c {
	case USD, ETH, BTC:
		return true
	default:
		return false
	}
}

// ParseCurrency accepts any casing and surrounding whitespace.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown currency %q", ErrConfiguration, s)
	}
	return c, nil
}
