package storefront

import (
	"github.com/roach88/ambercart/internal/config"
	"github.com/roach88/ambercart/internal/extract"
	"github.com/roach88/ambercart/internal/money"
	"github.com/roach88/ambercart/internal/order"
	"github.com/roach88/ambercart/internal/view"
)

// NewFromConfig creates a controller whose extractor, renderer, composer,
// links and notice TTL come from cfg. Fields already set on d win.
func NewFromConfig(cfg config.Config, d Deps) (*Controller, error) {
	formatter := money.NewFormatter(cfg.Locale, cfg.Currency)
	if d.Extractor == nil {
		d.Extractor = extract.New(cfg.Vocabulary)
	}
	if d.Renderer == nil {
		d.Renderer = view.NewRenderer(formatter, cfg.Labels)
	}
	if d.Composer == nil {
		d.Composer = order.NewComposer(formatter, cfg.Messages)
	}
	if d.Links == (order.Links{}) {
		d.Links = cfg.Links
	}
	if d.NoticeTTL == 0 {
		d.NoticeTTL = cfg.NoticeTTL()
	}
	return New(d)
}
