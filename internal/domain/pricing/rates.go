// Package pricing holds exchange-rate tables and the display-currency
// conversion rules. All catalog prices are expressed in the base currency;
// conversion is a display concern only.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/driftwear/storefront/internal/domain/shared/valueobject"
)

// RateTable maps an ISO 4217 currency code to a multiplicative rate:
// 1 unit of the base currency equals rate units of the target currency.
type RateTable map[string]decimal.Decimal

// fallbackRates are the hardcoded last-resort rates, used when every
// upstream source fails. Values are deliberately coarse; they only need to
// keep displayed prices in the right ballpark.
var fallbackRates = map[string]string{
	string(valueobject.IDR): "1",
	string(valueobject.USD): "0.000064",
	string(valueobject.EUR): "0.000059",
	string(valueobject.GBP): "0.000050",
	string(valueobject.JPY): "0.0095",
	string(valueobject.SGD): "0.000086",
	string(valueobject.AUD): "0.000097",
}

// FallbackRates returns a fresh copy of the hardcoded fallback table.
func FallbackRates() RateTable {
	table := make(RateTable, len(fallbackRates))
	for code, rate := range fallbackRates {
		table[code] = decimal.RequireFromString(rate)
	}
	return table
}

// Validate checks table invariants: non-empty, base currency present and
// equal to 1, every rate strictly positive.
func (t RateTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("rate table is empty")
	}
	base, ok := t[string(valueobject.BaseCurrency)]
	if !ok {
		return fmt.Errorf("rate table is missing base currency %s", valueobject.BaseCurrency)
	}
	if !base.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("base currency %s must map to 1, got %s", valueobject.BaseCurrency, base)
	}
	for code, rate := range t {
		if !rate.IsPositive() {
			return fmt.Errorf("rate for %s must be positive, got %s", code, rate)
		}
	}
	return nil
}

// Clone returns a shallow copy of the table.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for code, rate := range t {
		out[code] = rate
	}
	return out
}

// Conversion is the result of converting a price for display. Currency may
// remain the source currency when no rate is known anywhere; callers must
// render the code Conversion carries, not the one they asked for.
type Conversion struct {
	Amount   decimal.Decimal
	Currency string
}

// ConvertForDisplay converts an amount in sourceCurrency into the target
// display currency:
//
//  1. an empty table is substituted with the hardcoded fallback table
//  2. target == source passes through unchanged
//  3. a positive rate in the effective table multiplies the amount
//  4. otherwise the fallback table is consulted
//  5. otherwise the amount stays in the source currency unchanged
func ConvertForDisplay(amount decimal.Decimal, sourceCurrency string, table RateTable, targetCurrency string) Conversion {
	effective := table
	if len(effective) == 0 {
		effective = FallbackRates()
	}

	if targetCurrency == sourceCurrency {
		return Conversion{Amount: amount, Currency: sourceCurrency}
	}

	if rate, ok := effective[targetCurrency]; ok && rate.IsPositive() {
		return Conversion{Amount: amount.Mul(rate), Currency: targetCurrency}
	}

	if rate, ok := FallbackRates()[targetCurrency]; ok && rate.IsPositive() {
		return Conversion{Amount: amount.Mul(rate), Currency: targetCurrency}
	}

	return Conversion{Amount: amount, Currency: sourceCurrency}
}
