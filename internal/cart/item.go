package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one row in the cart.
type LineItem struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Qty   int
}

// Subtotal returns Price × Qty without rounding.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Cart is an ordered, id-unique sequence of line items.
// First-added stays first.
type Cart struct {
	Items []LineItem
}

// Total returns Σ price × qty. The empty cart totals zero.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount returns Σ qty.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Qty
	}
	return n
}

// IsEmpty reports whether the cart has no line items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the line item with the given id.
func (c Cart) Find(id string) (LineItem, bool) {
	if i := indexOf(c.Items, id); i >= 0 {
		return c.Items[i], true
	}
	return LineItem{}, false
}

// IDs returns item identities in cart order.
func (c Cart) IDs() []string {
	ids := make([]string, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.ID
	}
	return ids
}

func indexOf(items []LineItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []LineItem) []LineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// Descriptor is a product as recovered from the storefront, ready to be
// added to the cart. ID is optional.
type Descriptor struct {
	Name  string
	ID    string
	Price decimal.Decimal
}

// Validate checks that the descriptor carries a usable name and a
// non-negative price.
func (d Descriptor) Validate() error {
	if NormalizeName(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDescriptor)
	}
	if d.Price.IsNegative() {
		return fmt.Errorf("%w: price %s is negative", ErrInvalidDescriptor, d.Price)
	}
	return nil
}

// Identity returns the merge key: the explicit ID when present, otherwise
// the derived one.
func (d Descriptor) Identity() string {
	if id := strings.TrimSpace(d.ID); id != "" {
		return id
	}
	return DeriveID(d.Name, d.Price)
}
