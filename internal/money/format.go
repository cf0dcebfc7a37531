package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the storefront's display locale.
const DefaultLocale = "ru"

// Formatter renders amounts with locale-appropriate digit grouping.
//
// The separators come from the locale's number format; the digits come from
// the decimal itself, so amounts of any size print exactly.
type Formatter struct {
	currency string
	group    string
	point    string
}

// NewFormatter creates a formatter for a BCP 47 locale and a currency glyph.
// An unparseable locale falls back to DefaultLocale.
func NewFormatter(locale, currency string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	group, point := separators(message.NewPrinter(tag))
	return Formatter{
		currency: currency,
		group:    group,
		point:    point,
	}
}

// separators reads the grouping and decimal symbols off a formatted sample.
// Locales with non-ASCII digits fall back to "," and ".".
func separators(p *message.Printer) (group, point string) {
	sample := p.Sprintf("%v", number.Decimal(1234567.5,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1),
	))
	one := strings.IndexByte(sample, '1')
	two := strings.IndexByte(sample, '2')
	seven := strings.IndexByte(sample, '7')
	five := strings.LastIndexByte(sample, '5')
	if one < 0 || two < one || seven < two || five <= seven {
		return ",", "."
	}
	return sample[one+1 : two], sample[seven+1 : five]
}

// Format renders d rounded to two fraction digits. Whole amounts carry no
// fraction part.
func (f Formatter) Format(d decimal.Decimal) string {
	r := d.Round(2)
	var s string
	if r.IsInteger() {
		s = r.StringFixed(0)
	} else {
		s = r.StringFixed(2)
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteString(f.point)
		b.WriteString(frac)
	}
	return b.String()
}

// FormatAmount renders d followed by the currency glyph.
func (f Formatter) FormatAmount(d decimal.Decimal) string {
	if f.currency == "" {
		return f.Format(d)
	}
	return f.Format(d) + " " + f.currency
}

// Currency returns the glyph appended by FormatAmount.
func (f Formatter) Currency() string {
	return f.currency
}
