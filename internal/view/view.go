// Package view projects the cart into a visible summary.
//
// Render is a pure function of the cart: calling it again without a state
// change yields an identical View, so it is safe to run after every mutation.
package view

import (
	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/markup"
	"github.com/roach88/ambercart/internal/money"
)

// Labels are the fixed strings of the cart view.
type Labels struct {
	Empty   string `json:"empty"`
	Article string `json:"article"`
	Remove  string `json:"remove"`
	Added   string `json:"added"`
}

// DefaultLabels returns the storefront's Russian labels.
func DefaultLabels() Labels {
	return Labels{
		Empty:   "Корзина пуста. Добавьте товары из таблицы.",
		Article: "арт.",
		Remove:  "Удалить",
		Added:   "Добавлено",
	}
}

// Control is a mutation affordance keyed by item id.
type Control struct {
	Action markup.Action `json:"action"`
	ItemID string        `json:"item_id"`
}

// Row is one rendered line item.
type Row struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Qty       int       `json:"qty"`
	UnitPrice string    `json:"unit_price"`
	Subtotal  string    `json:"subtotal"`
	ShowID    bool      `json:"show_id"`
	Controls  []Control `json:"controls"`
}

// View is the rendered cart.
type View struct {
	Count int    `json:"count"`
	Empty bool   `json:"empty"`
	Rows  []Row  `json:"rows,omitempty"`
	Total string `json:"total"`
}

// Renderer turns carts into views.
type Renderer struct {
	money  money.Formatter
	labels Labels
}

// NewRenderer creates a renderer.
func NewRenderer(f money.Formatter, labels Labels) *Renderer {
	return &Renderer{money: f, labels: labels}
}

// Labels returns the renderer's labels.
func (r *Renderer) Labels() Labels {
	return r.labels
}

// Render builds the view for c.
func (r *Renderer) Render(c cart.Cart) View {
	v := View{
		Count: c.ItemCount(),
		Empty: c.IsEmpty(),
		Total: r.money.FormatAmount(c.Total()),
	}
	for _, item := range c.Items {
		v.Rows = append(v.Rows, Row{
			ID:        item.ID,
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: r.money.FormatAmount(item.Price),
			Subtotal:  r.money.FormatAmount(item.Subtotal()),
			ShowID:    !cart.IsDerivedID(item.ID),
			Controls: []Control{
				{Action: markup.ActionDec, ItemID: item.ID},
				{Action: markup.ActionInc, ItemID: item.ID},
				{Action: markup.ActionRemove, ItemID: item.ID},
			},
		})
	}
	return v
}
