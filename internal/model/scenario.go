package model

import (
	"fmt"
	"strings"
)

// Scenario is a named snapshot of USD prices for the non-USD currencies.
// USD always converts at 1.0.
type Scenario struct {
	ID     string
	Name   string
	Active bool

	ETHPrice float64
	BTCPrice float64
}

// Price returns the USD price of one unit of c.
// An unknown currency is an error, never a default rate.
func (s Scenario) Price(c Currency) (float64, error) {
	switch c {
	case USD:
		return 1.0, nil
	case ETH:
		return s.ETHPrice, nil
	case BTC:
		return s.BTCPrice, nil
	default:
		return 0, fmt.Errorf("%w: no price for currency %q", ErrConfiguration, c)
	}
}

// Validate checks prices only; a zero price is allowed and zeroes USD output.
func (s Scenario) Validate() error {
	if !finite(s.ETHPrice) || s.ETHPrice < 0 {
		return requestFieldError("eth_price", "must be >= 0")
	}
	if !finite(s.BTCPrice) || s.BTCPrice < 0 {
		return requestFieldError("btc_price", "must be >= 0")
	}
	return nil
}

// WithPrices returns a copy of s with both prices replaced.
func (s Scenario) WithPrices(eth, btc float64) Scenario {
	s.ETHPrice = eth
	s.BTCPrice = btc
	return s
}

func (s Scenario) DisplayName() string {
	if n := strings.TrimSpace(s.Name); n != "" {
		return n
	}
	return s.ID
}
