package export

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a report names no currency.
const DefaultCurrency = "EUR"

// FormatMoney renders amount in the display format of currency (an ISO 4217
// code). Amounts are rounded to the currency's minor unit. Unknown codes
// fall back to a plain two-decimal number followed by the code.
func FormatMoney(amount float64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	currency = strings.ToUpper(currency)
	d := decimal.NewFromFloat(amount)

	cur := money.GetCurrency(currency)
	if cur == nil {
		return d.StringFixed(2) + " " + currency
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := d.Mul(factor).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}
