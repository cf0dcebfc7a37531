package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/ambercart/internal/money"
)

// record is the persisted shape of a line item.
type record struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
	Qty   int         `json:"qty"`
}

// Encode serializes items to the persisted JSON array.
// HTML escaping is disabled so names round-trip byte for byte.
func Encode(items []LineItem) (string, error) {
	records := make([]record, len(items))
	for i, item := range items {
		records[i] = record{
			ID:    item.ID,
			Name:  item.Name,
			Price: json.Number(item.Price.String()),
			Qty:   item.Qty,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// Decode parses persisted cart data.
//
// The returned items are always usable. A non-nil error wraps ErrCorrupt and
// describes what was discarded:
//   - blank data: empty cart, no error
//   - unparseable document: empty cart
//   - unreadable item (no name, bad price, qty not a positive integer): dropped
//   - missing id: recovered from legacy "sku", else re-derived from name+price
//   - duplicate id: merged into the first occurrence
func Decode(data string) ([]LineItem, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var (
		items []LineItem
		errs  []error
	)
	for i, v := range raw {
		item, err := decodeItem(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		if idx := indexOf(items, item.ID); idx >= 0 {
			if items[idx].Qty > MaxQty-item.Qty {
				errs = append(errs, fmt.Errorf("item %d: merged qty out of range", i))
				continue
			}
			items[idx].Qty += item.Qty
			continue
		}
		items = append(items, item)
	}

	if len(errs) > 0 {
		return items, fmt.Errorf("%w: %w", ErrCorrupt, errors.Join(errs...))
	}
	return items, nil
}

func decodeItem(v any) (LineItem, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return LineItem{}, fmt.Errorf("expected object, got %T", v)
	}

	name := NormalizeName(stringField(obj["name"]))
	if name == "" {
		return LineItem{}, errors.New("missing name")
	}

	price, err := money.Parse(obj["price"])
	if err != nil {
		return LineItem{}, err
	}

	qty, err := parseQty(obj["qty"])
	if err != nil {
		return LineItem{}, err
	}

	id := strings.TrimSpace(stringField(obj["id"]))
	if id == "" {
		id = strings.TrimSpace(stringField(obj["sku"]))
	}
	if id == "" {
		id = DeriveID(name, price)
	}

	return LineItem{ID: id, Name: name, Price: price, Qty: qty}, nil
}

func stringField(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

// parseQty accepts positive integers only. Anything else drops the item
// rather than defaulting to one.
func parseQty(v any) (int, error) {
	var (
		n   int64
		err error
	)
	switch q := v.(type) {
	case json.Number:
		n, err = q.Int64()
	case string:
		n, err = strconv.ParseInt(strings.TrimSpace(q), 10, 64)
	default:
		return 0, fmt.Errorf("qty: unsupported type %T", v)
	}
	if err != nil {
		return 0, fmt.Errorf("qty: %w", err)
	}
	if n < 1 || n > MaxQty {
		return 0, fmt.Errorf("qty: %d out of range", n)
	}
	return int(n), nil
}

// MaxQty is the largest quantity a line may hold.
const MaxQty = 1 << 30
