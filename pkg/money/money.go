// Package money provides the currency metadata and formatting used when
// presenting simulation results. Amounts are stored in a single base
// currency; conversion for display is a presentation concern.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the canonical currency code amounts are stored in when a
// scenario does not name one.
const BaseCurrency = "EUR"

// Currency carries the display metadata for a currency code. The engine
// passes it through untouched; only formatters consume it.
type Currency struct {
	Code   string `yaml:"code" json:"code"`
	Symbol string `yaml:"symbol" json:"symbol"`
}

// currencySymbols maps ISO codes to display symbols.
var currencySymbols = map[string]string{
	"EUR": "€",
	"GBP": "£",
	"USD": "$",
	"CAD": "C$",
	"AUD": "A$",
	"NZD": "NZ$",
	"CHF": "CHF",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"SGD": "S$",
	"HKD": "HK$",
}

// CurrencyFor resolves the display metadata for an ISO code. Unknown codes
// fall back to the base currency symbol so formatting never fails.
func CurrencyFor(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = BaseCurrency
	}
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = currencySymbols[BaseCurrency]
	}
	return Currency{Code: code, Symbol: symbol}
}

// Format renders a whole-unit amount with the currency symbol and thousands
// separators, e.g. €1,234,567 or -€3,500.
func (c Currency) Format(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	d := decimal.NewFromFloat(amount).Round(0)
	grouped := groupThousands(d.String())
	if neg {
		return "-" + c.Symbol + grouped
	}
	return c.Symbol + grouped
}

// groupThousands inserts comma separators into a plain digit string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
