package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PriceUnavailable is rendered when an amount cannot be displayed
// meaningfully, e.g. a negative amount produced by bad upstream data.
const PriceUnavailable = "price unavailable"

// FormatPrice renders an amount with the currency's symbol, digit grouping
// and exactly two fraction digits, regardless of the currency's conventional
// minor-unit count. Negative amounts render as PriceUnavailable rather than
// showing customers a nonsense price. Unknown currency codes fall back to
// "CODE 1234.56".
func FormatPrice(amount decimal.Decimal, currencyCode string) string {
	if amount.IsNegative() {
		return PriceUnavailable
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return fmt.Sprintf("%s %s", currencyCode, amount.StringFixed(2))
	}

	f, _ := amount.Float64()
	printer := message.NewPrinter(language.English)
	return printer.Sprintf("%v %v", currency.Symbol(unit),
		number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatConversion renders a Conversion produced by ConvertForDisplay.
func FormatConversion(c Conversion) string {
	return FormatPrice(c.Amount, c.Currency)
}
