package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/money"
)

var (
	// ErrEmptyCart blocks checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrMissingCustomer blocks checkout without a name and phone.
	ErrMissingCustomer = errors.New("customer name and phone are required")
)

// ValidationError is a blocking checkout failure with a notice for the
// shopper. The cart is not touched.
type ValidationError struct {
	Err    error
	Notice string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Customer holds the checkout form fields.
type Customer struct {
	Name    string `json:"name" yaml:"name"`
	Phone   string `json:"phone" yaml:"phone"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Trimmed returns c with surrounding whitespace removed from every field.
func (c Customer) Trimmed() Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Comment: strings.TrimSpace(c.Comment),
	}
}

// Messages are the fixed strings of the transcript.
type Messages struct {
	Title           string `json:"title"`
	Article         string `json:"article"`
	Unit            string `json:"unit"`
	Total           string `json:"total"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Comment         string `json:"comment"`
	Footer          string `json:"footer"`
	EmptyCart       string `json:"empty_cart"`
	MissingCustomer string `json:"missing_customer"`
}

// DefaultMessages returns the storefront's Russian transcript strings.
func DefaultMessages() Messages {
	return Messages{
		Title:           "Заказ AmberTruck JM93",
		Article:         "арт.",
		Unit:            "шт",
		Total:           "ИТОГО",
		Name:            "Имя",
		Phone:           "Телефон",
		Comment:         "Комментарий",
		Footer:          "(Сообщение сформировано автоматически с сайта)",
		EmptyCart:       "Корзина пустая",
		MissingCustomer: "Введите имя и телефон",
	}
}

// Composer builds order transcripts.
type Composer struct {
	money    money.Formatter
	messages Messages
}

// NewComposer creates a composer.
func NewComposer(f money.Formatter, m Messages) *Composer {
	return &Composer{money: f, messages: m}
}

// Validate checks the checkout gate without composing.
func (c *Composer) Validate(ct cart.Cart, customer Customer) error {
	if ct.IsEmpty() {
		return &ValidationError{Err: ErrEmptyCart, Notice: c.messages.EmptyCart}
	}
	customer = customer.Trimmed()
	if customer.Name == "" || customer.Phone == "" {
		return &ValidationError{Err: ErrMissingCustomer, Notice: c.messages.MissingCustomer}
	}
	return nil
}

// Compose returns the transcript for ct, or a *ValidationError.
//
// Layout:
//
//	<title>
//
//	1) <name> (<article> <id>) — <qty> <unit> × <price> = <subtotal>
//	...
//
//	<total>: <amount>
//
//	<name label>: ...      (each customer line only when non-empty)
//
//	<footer>
func (c *Composer) Compose(ct cart.Cart, customer Customer) (string, error) {
	if err := c.Validate(ct, customer); err != nil {
		return "", err
	}
	customer = customer.Trimmed()
	m := c.messages

	var b strings.Builder
	b.WriteString(m.Title)
	b.WriteString("\n\n")

	for i, item := range ct.Items {
		fmt.Fprintf(&b, "%d) %s", i+1, item.Name)
		if !cart.IsDerivedID(item.ID) {
			fmt.Fprintf(&b, " (%s %s)", m.Article, item.ID)
		}
		fmt.Fprintf(&b, " — %d %s × %s = %s\n",
			item.Qty, m.Unit,
			c.money.FormatAmount(item.Price),
			c.money.FormatAmount(item.Subtotal()))
	}

	fmt.Fprintf(&b, "\n%s: %s\n\n", m.Total, c.money.FormatAmount(ct.Total()))

	writeField(&b, m.Name, customer.Name)
	writeField(&b, m.Phone, customer.Phone)
	writeField(&b, m.Comment, customer.Comment)

	if m.Footer != "" {
		b.WriteString("\n")
		b.WriteString(m.Footer)
	}
	return b.String(), nil
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}
