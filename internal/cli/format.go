// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	currencyMu     sync.RWMutex
	currencySymbol = "$"
	printer        = message.NewPrinter(language.English)
)

// SetCurrency sets the symbol prefixed to money values. An empty symbol
// restores the default "$".
func SetCurrency(symbol string) {
	currencyMu.Lock()
	defer currencyMu.Unlock()
	if symbol == "" {
		symbol = "$"
	}
	currencySymbol = symbol
}

func currency() string {
	currencyMu.RLock()
	defer currencyMu.RUnlock()
	return currencySymbol
}

// FormatMoney formats an amount with grouping and two decimals.
// e.g., 98554.79 -> "$98,554.79", -12.5 -> "-$12.50"
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + currency() + printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// FormatMoneyDelta formats a change in value with an explicit sign.
// e.g., 8108.76 -> "+$8,108.76"
func FormatMoneyDelta(d decimal.Decimal) string {
	if d.IsNegative() {
		return FormatMoney(d)
	}
	return "+" + FormatMoney(d)
}

// FormatMoneyCompact formats an amount with a K/M/B suffix, for chart labels.
// e.g., 98554.79 -> "$98.6K"
func FormatMoneyCompact(d decimal.Decimal) string {
	f := d.InexactFloat64()
	abs := f
	sign := ""
	if abs < 0 {
		abs = -abs
		sign = "-"
	}

	var body string
	switch {
	case abs >= 1_000_000_000:
		body = fmt.Sprintf("%.1fB", abs/1_000_000_000)
	case abs >= 1_000_000:
		body = fmt.Sprintf("%.1fM", abs/1_000_000)
	case abs >= 1_000:
		body = fmt.Sprintf("%.1fK", abs/1_000)
	default:
		body = fmt.Sprintf("%.0f", abs)
	}
	return sign + currency() + body
}

// FormatPercentChange formats a percentage with sign and two decimals.
// e.g., 8.9653 -> "+8.97%"
func FormatPercentChange(pct decimal.Decimal) string {
	s := pct.StringFixed(2) + "%"
	if !pct.IsNegative() {
		s = "+" + s
	}
	return s
}

// FormatMonth formats a month as YYYY-MM-DD, the layout input files use.
func FormatMonth(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatMonthShort formats a month as "Oct 2024".
func FormatMonthShort(t time.Time) string {
	return t.Format("Jan 2006")
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
