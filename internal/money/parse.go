package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice is returned when a value cannot be read as a finite,
// non-negative price.
var ErrInvalidPrice = errors.New("invalid price")

// Parse normalizes a price value.
//
// Numeric inputs are taken as is. Strings may contain digits, comma or dot
// separators, grouping whitespace and currency glyphs; everything except
// digits and separators is stripped. When several separators remain, the
// last one is the decimal separator unless all of them are the same
// character, in which case they are all grouping ("1.500.000").
func Parse(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidPrice)
	case decimal.Decimal:
		return nonNegative(v)
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidPrice)
		}
		return nonNegative(*v)
	case int:
		return nonNegative(decimal.NewFromInt(int64(v)))
	case int32:
		return nonNegative(decimal.NewFromInt32(v))
	case int64:
		return nonNegative(decimal.NewFromInt(v))
	case float32:
		return parseFloat(float64(v))
	case float64:
		return parseFloat(v)
	case json.Number:
		// JSON numbers may use exponent form ("1e3").
		if d, err := decimal.NewFromString(string(v)); err == nil {
			return nonNegative(d)
		}
		return parseText(string(v))
	case string:
		return parseText(v)
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported type %T", ErrInvalidPrice, raw)
	}
}

// MustParse is like Parse but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustParse(raw any) decimal.Decimal {
	d, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func parseFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v is not finite", ErrInvalidPrice, f)
	}
	return nonNegative(decimal.NewFromFloat(f))
}

func nonNegative(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s is negative", ErrInvalidPrice, d.String())
	}
	return d, nil
}

func parseText(s string) (decimal.Decimal, error) {
	runes := []rune(s)
	var kept []rune
	seenDigit := false

	for i, r := range runes {
		switch {
		case r >= '0' && r <= '9':
			kept = append(kept, r)
			seenDigit = true
		case r == ',' || r == '.':
			// Separators before the first digit belong to labels, not numbers.
			if seenDigit {
				kept = append(kept, r)
			}
		case r == '-' && !seenDigit && i+1 < len(runes) && isDigit(runes[i+1]):
			return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidPrice, s)
		}
	}

	// Trailing separators come from abbreviations such as "руб.".
	for len(kept) > 0 && !isDigit(kept[len(kept)-1]) {
		kept = kept[:len(kept)-1]
	}
	if !seenDigit || len(kept) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no digits in %q", ErrInvalidPrice, s)
	}

	d, err := decimal.NewFromString(canonicalDigits(kept))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidPrice, s, err)
	}
	return nonNegative(d)
}

// canonicalDigits rewrites digits-and-separators into a plain decimal literal.
func canonicalDigits(kept []rune) string {
	last := -1
	count := 0
	uniform := true
	var first rune
	for i, r := range kept {
		if isDigit(r) {
			continue
		}
		if count == 0 {
			first = r
		} else if r != first {
			uniform = false
		}
		count++
		last = i
	}

	var b strings.Builder
	for i, r := range kept {
		if isDigit(r) {
			b.WriteRune(r)
			continue
		}
		if i == last && !(uniform && count > 1) {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
