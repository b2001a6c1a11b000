// Package format holds the display helpers the PesaFlow UI shares with
// other scripts: phone numbers, dates, currency amounts, and export URLs.
package format

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is the symbol used when no code is supplied.
const DefaultCurrency = "KES"

var printer = message.NewPrinter(language.English)

// Phone normalizes a Kenyan MSISDN for display. Non-digits are stripped, a
// leading 254 country code becomes the local trunk prefix, and the digits are
// grouped as 0712 345 678.
func Phone(raw string) string {
	digits := digitsOnly(raw)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "254") {
		digits = "0" + digits[3:]
	}
	if len(digits) <= 6 {
		return digits
	}
	head := digits[:len(digits)-6]
	mid := digits[len(digits)-6 : len(digits)-3]
	tail := digits[len(digits)-3:]
	return head + " " + mid + " " + tail
}

// DateTime renders a timestamp the way list views display it.
func DateTime(t time.Time) string {
	return t.Format("Jan 2, 2006, 3:04 PM")
}

// Currency renders an amount with the default currency code.
func Currency(amount float64) string {
	return CurrencyWith(DefaultCurrency, amount)
}

// CurrencyWith renders a grouped amount with exactly two fraction digits,
// prefixed by the currency code.
func CurrencyWith(code string, amount float64) string {
	return code + " " + printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Percent renders a rate with a single decimal and a percent sign.
func Percent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}

// CleanAmount strips everything but digits and dots from a currency field's
// raw input and reformats it as a grouped decimal with two fraction digits.
// Returns empty for inputs with no usable number.
func CleanAmount(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "." {
		return ""
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return ""
	}
	return printer.Sprint(number.Decimal(value,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// ExportURL appends (or replaces) the format query parameter on a page URL,
// used to navigate list views into their CSV/XLSX export variants.
func ExportURL(pageURL, exportFormat string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	query.Set("format", exportFormat)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
