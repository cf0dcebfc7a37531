package extract_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/extract"
	"github.com/roach88/ambercart/internal/markup"
	"github.com/roach88/ambercart/internal/money"
)

func triggers(t *testing.T, page string) []*markup.Element {
	t.Helper()
	doc, err := markup.ParseString(page)
	require.NoError(t, err)
	return doc.Triggers()
}

func extractOne(t *testing.T, page string) (cart.Descriptor, error) {
	t.Helper()
	tr := triggers(t, page)
	require.Len(t, tr, 1)
	return extract.New(extract.DefaultVocabulary()).Extract(tr[0])
}

func TestExtract_TriggerAttributes(t *testing.T) {
	d, err := extractOne(t, `<button class="buy-btn" data-name="Фильтр масляный" data-sku="JM93-001" data-price="6 720 ₽">В корзину</button>`)
	require.NoError(t, err)

	assert.Equal(t, "Фильтр масляный", d.Name)
	assert.Equal(t, "JM93-001", d.ID)
	assert.True(t, d.Price.Equal(decimal.NewFromInt(6720)))
}

func TestExtract_ContainerAttributes(t *testing.T) {
	page := `<table><tbody>
		<tr data-name="Bearing X" data-price="1500">
			<td>Bearing X</td>
			<td><button class="buy-btn">Add</button></td>
		</tr>
	</tbody></table>`

	d, err := extractOne(t, page)
	require.NoError(t, err)
	assert.Equal(t, "Bearing X", d.Name)
	assert.Empty(t, d.ID)
	assert.Equal(t, cart.DeriveID("Bearing X", decimal.NewFromInt(1500)), d.Identity())
}

func TestExtract_LabelText(t *testing.T) {
	page := `<div class="product-card">
		<div class="product__name">  Article:   Kingpin   kit </div>
		<div class="product__sku">Артикул: KP-77</div>
		<div class="product__price">Цена: 12 400,50 ₽</div>
		<button class="buy-btn">Купить</button>
	</div>`

	d, err := extractOne(t, page)
	require.NoError(t, err)
	assert.Equal(t, "Kingpin kit", d.Name)
	assert.Equal(t, "KP-77", d.ID)
	assert.Equal(t, "12400.5", d.Price.String())
}

func TestExtract_FieldsFromDifferentSources(t *testing.T) {
	// Name from the trigger, price from the container, id from a label.
	page := `<div class="product" data-price="990">
		<span class="sku">SKU: BR-1</span>
		<button class="buy-btn" data-name="Brake pad">+</button>
	</div>`

	d, err := extractOne(t, page)
	require.NoError(t, err)
	assert.Equal(t, "Brake pad", d.Name)
	assert.Equal(t, "BR-1", d.ID)
	assert.Equal(t, "990", d.Price.String())
}

func TestExtract_TriggerWinsOverContainer(t *testing.T) {
	page := `<div class="product" data-name="Outer" data-price="1">
		<button class="buy-btn" data-name="Inner" data-price="2">+</button>
	</div>`

	d, err := extractOne(t, page)
	require.NoError(t, err)
	assert.Equal(t, "Inner", d.Name)
	assert.Equal(t, "2", d.Price.String())
}

func TestExtract_NoContainerUsesParentLabels(t *testing.T) {
	page := `<section><p class="name">Hub nut</p><p class="price">75</p><button class="buy-btn">+</button></section>`

	d, err := extractOne(t, page)
	require.NoError(t, err)
	assert.Equal(t, "Hub nut", d.Name)
	assert.Equal(t, "75", d.Price.String())
}

func TestExtract_SameProductDifferentMarkupSameIdentity(t *testing.T) {
	fromButton, err := extractOne(t, `<button class="buy-btn" data-name="Bearing  X" data-price="1 500 ₽">+</button>`)
	require.NoError(t, err)
	fromCard, err := extractOne(t, `<div class="card"><b class="name">Bearing X</b><i class="price">1500.00</i><button class="buy-btn">+</button></div>`)
	require.NoError(t, err)

	assert.Equal(t, fromButton.Identity(), fromCard.Identity())
}

func TestExtract_MissingName(t *testing.T) {
	_, err := extractOne(t, `<button class="buy-btn" data-price="100">+</button>`)
	require.Error(t, err)

	var failure *extract.Failure
	require.ErrorAs(t, err, &failure)
	assert.ErrorIs(t, err, extract.ErrMissingName)
	assert.NotEmpty(t, failure.Notice)
}

func TestExtract_MissingPrice(t *testing.T) {
	_, err := extractOne(t, `<button class="buy-btn" data-name="Filter">+</button>`)
	assert.ErrorIs(t, err, extract.ErrMissingPrice)
}

func TestExtract_UnnormalizablePrice(t *testing.T) {
	_, err := extractOne(t, `<button class="buy-btn" data-name="Filter" data-price="по запросу">+</button>`)
	require.Error(t, err)

	var failure *extract.Failure
	require.ErrorAs(t, err, &failure)
	assert.ErrorIs(t, err, money.ErrInvalidPrice)
	assert.Contains(t, failure.Notice, "Filter")
}

func TestExtract_NilTrigger(t *testing.T) {
	_, err := extract.New(extract.DefaultVocabulary()).Extract(nil)
	var failure *extract.Failure
	assert.ErrorAs(t, err, &failure)
}

func TestExtract_CustomVocabulary(t *testing.T) {
	vocab := extract.DefaultVocabulary()
	vocab.NameAttrs = []string{"data-product"}
	vocab.PriceAttrs = []string{"data-cost"}

	tr := triggers(t, `<button class="buy-btn" data-product="Axle" data-cost="10">+</button>`)
	require.Len(t, tr, 1)
	d, err := extract.New(vocab).Extract(tr[0])
	require.NoError(t, err)
	assert.Equal(t, "Axle", d.Name)
}
