package view

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/roach88/ambercart/internal/markup"
)

// Page element ids the renderer writes into.
const (
	IDItems = "cartItems"
	IDTotal = "cartTotal"
)

var itemsTemplate = template.Must(template.New("items").Parse(
	`{{if .View.Empty}}<div class="cart__empty">{{.Labels.Empty}}</div>` +
		`{{else}}{{range .View.Rows}}<div class="cart__item">` +
		`<div class="cart__item-main"><div class="cart__item-name">{{.Name}}</div>` +
		`<div class="cart__item-meta">{{if .ShowID}}{{$.Labels.Article}} {{.ID}} · {{end}}{{.UnitPrice}}</div></div>` +
		`<div class="cart__item-controls">` +
		`<button class="cart__qty" data-cart-act="dec" data-cart-id="{{.ID}}" type="button">−</button>` +
		`<div class="cart__qtyval">{{.Qty}}</div>` +
		`<button class="cart__qty" data-cart-act="inc" data-cart-id="{{.ID}}" type="button">+</button>` +
		`<button class="cart__remove" data-cart-act="remove" data-cart-id="{{.ID}}" type="button">{{$.Labels.Remove}}</button>` +
		`</div><div class="cart__item-sum">{{.Subtotal}}</div></div>{{end}}{{end}}`,
))

// HTML renders the items list, or the empty state, as an HTML fragment.
func (r *Renderer) HTML(v View) (string, error) {
	var buf bytes.Buffer
	err := itemsTemplate.Execute(&buf, struct {
		View   View
		Labels Labels
	}{v, r.labels})
	if err != nil {
		return "", fmt.Errorf("render items: %w", err)
	}
	return buf.String(), nil
}

// MirrorCount writes count into every counter element on the page and
// returns how many were updated. Pages without a counter are fine.
func MirrorCount(doc *markup.Document, count int) int {
	counters := doc.Counters()
	for _, c := range counters {
		c.SetText(strconv.Itoa(count))
	}
	return len(counters)
}

// Apply writes v into the page: badge counters, the items container and the
// total. Missing containers are skipped.
func (r *Renderer) Apply(doc *markup.Document, v View) error {
	MirrorCount(doc, v.Count)

	if total, ok := doc.ByID(IDTotal); ok {
		total.SetText(v.Total)
	}

	items, ok := doc.ByID(IDItems)
	if !ok {
		return nil
	}
	fragment, err := r.HTML(v)
	if err != nil {
		return err
	}
	container := items.Node()
	nodes, err := html.ParseFragment(bytes.NewBufferString(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return fmt.Errorf("parse items fragment: %w", err)
	}
	for c := container.FirstChild; c != nil; {
		next := c.NextSibling
		container.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return nil
}
