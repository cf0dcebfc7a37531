package order

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/money"
)

func testMessages() Messages {
	return Messages{
		Title:           "Order Test Shop",
		Article:         "art.",
		Unit:            "pcs",
		Total:           "TOTAL",
		Name:            "Name",
		Phone:           "Phone",
		Comment:         "Comment",
		Footer:          "(generated automatically)",
		EmptyCart:       "Cart is empty",
		MissingCustomer: "Enter name and phone",
	}
}

func newTestComposer() *Composer {
	return NewComposer(money.NewFormatter("en", "$"), testMessages())
}

func oilFilter() cart.LineItem {
	return cart.LineItem{ID: "JM93-001", Name: "Oil filter", Price: decimal.NewFromInt(6720), Qty: 1}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestCompose_Golden(t *testing.T) {
	c := cart.Cart{Items: []cart.LineItem{
		oilFilter(),
		{ID: cart.DeriveID("Bearing X", decimal.NewFromInt(1500)), Name: "Bearing X", Price: decimal.NewFromInt(1500), Qty: 2},
		{ID: "B-7", Name: "Bolt", Price: decimal.RequireFromString("0.35"), Qty: 40},
	}}
	customer := Customer{Name: "Ivan", Phone: "+7 900 123-45-67", Comment: "Kaliningrad, VIN XTC123"}

	text, err := newTestComposer().Compose(c, customer)
	require.NoError(t, err)

	newGoldie(t).Assert(t, "compose_full", []byte(text))
}

func TestCompose_OmitsEmptyOptionalFields(t *testing.T) {
	c := cart.Cart{Items: []cart.LineItem{oilFilter()}}

	text, err := newTestComposer().Compose(c, Customer{Name: "  Ivan ", Phone: "+7 900", Comment: "   "})
	require.NoError(t, err)

	newGoldie(t).Assert(t, "compose_without_comment", []byte(text))
}

func TestCompose_Deterministic(t *testing.T) {
	c := cart.Cart{Items: []cart.LineItem{oilFilter()}}
	customer := Customer{Name: "A", Phone: "1"}
	composer := newTestComposer()

	first, err := composer.Compose(c, customer)
	require.NoError(t, err)
	second, err := composer.Compose(c, customer)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompose_EmptyCartFails(t *testing.T) {
	text, err := newTestComposer().Compose(cart.Cart{}, Customer{Name: "Ivan", Phone: "1"})

	assert.Empty(t, text)
	assert.ErrorIs(t, err, ErrEmptyCart)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Cart is empty", verr.Notice)
}

func TestCompose_MissingCustomerFails(t *testing.T) {
	c := cart.Cart{Items: []cart.LineItem{oilFilter()}}

	for _, customer := range []Customer{
		{},
		{Name: "Ivan"},
		{Phone: "+7 900"},
		{Name: "   ", Phone: "+7 900"},
	} {
		_, err := newTestComposer().Compose(c, customer)
		assert.ErrorIs(t, err, ErrMissingCustomer, "customer %+v", customer)
	}
}

func TestCompose_EmptyCartCheckedFirst(t *testing.T) {
	_, err := newTestComposer().Compose(cart.Cart{}, Customer{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCompose_RussianDefaults(t *testing.T) {
	c := cart.Cart{Items: []cart.LineItem{oilFilter()}}
	composer := NewComposer(money.NewFormatter("ru", "₽"), DefaultMessages())

	text, err := composer.Compose(c, Customer{Name: "Иван", Phone: "+7 900"})
	require.NoError(t, err)

	assert.Contains(t, text, "Заказ AmberTruck JM93\n\n1) Oil filter (арт. JM93-001) — 1 шт × ")
	assert.Contains(t, text, "\nИмя: Иван\nТелефон: +7 900\n")
	assert.NotContains(t, text, "Комментарий")
	assert.Contains(t, text, "\n(Сообщение сформировано автоматически с сайта)")
}
