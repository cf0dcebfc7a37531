package harness

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roach88/ambercart/internal/cart"
)

// AssertionError is returned when an assertion fails.
// It includes the final cart to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Cart     cart.Cart
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFinal cart:\n")
	if e.Cart.IsEmpty() {
		fmt.Fprintf(&buf, "  (empty)\n")
	}
	for i, item := range e.Cart.Items {
		fmt.Fprintf(&buf, "  [%d] %s %q %s x%d\n", i+1, item.ID, item.Name, item.Price, item.Qty)
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns the
// failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	c := result.Cart
	fail := func(expected, actual string) error {
		return &AssertionError{Type: a.Type, Expected: expected, Actual: actual, Cart: c}
	}

	switch a.Type {
	case AssertItemCount:
		if got := c.ItemCount(); got != *a.Count {
			return fail(fmt.Sprintf("%d items", *a.Count), fmt.Sprintf("%d items", got))
		}

	case AssertTotal:
		want, err := decimal.NewFromString(a.Total)
		if err != nil {
			return fmt.Errorf("total %q: %w", a.Total, err)
		}
		if got := c.Total(); !got.Equal(want) {
			return fail("total "+want.String(), "total "+got.String())
		}

	case AssertLine:
		item, ok := findLine(c, a)
		if !ok {
			return fail(fmt.Sprintf("line %s%s", a.ID, a.Name), "not in cart")
		}
		if a.Qty != 0 && item.Qty != a.Qty {
			return fail(fmt.Sprintf("%s qty %d", item.ID, a.Qty), fmt.Sprintf("qty %d", item.Qty))
		}
		if a.Name != "" && item.Name != a.Name {
			return fail(fmt.Sprintf("%s name %q", item.ID, a.Name), fmt.Sprintf("name %q", item.Name))
		}

	case AssertLineOrder:
		got := c.IDs()
		if strings.Join(got, ",") != strings.Join(a.IDs, ",") {
			return fail(fmt.Sprintf("order %v", a.IDs), fmt.Sprintf("order %v", got))
		}

	case AssertEmpty:
		if !c.IsEmpty() {
			return fail("empty cart", fmt.Sprintf("%d lines", len(c.Items)))
		}

	case AssertOrders:
		if got := len(result.Orders); got != *a.Count {
			return fail(fmt.Sprintf("%d orders", *a.Count), fmt.Sprintf("%d orders", got))
		}

	case AssertTranscriptContains:
		if len(result.Transcripts) == 0 {
			return fail(fmt.Sprintf("transcript containing %q", a.Text), "no checkout")
		}
		last := result.Transcripts[len(result.Transcripts)-1]
		if !strings.Contains(last, a.Text) {
			return fail(fmt.Sprintf("transcript containing %q", a.Text), last)
		}

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

// findLine selects by id, or by name when no id is given.
func findLine(c cart.Cart, a Assertion) (cart.LineItem, bool) {
	if a.ID != "" {
		return c.Find(a.ID)
	}
	for _, item := range c.Items {
		if item.Name == a.Name {
			return item, true
		}
	}
	return cart.LineItem{}, false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
