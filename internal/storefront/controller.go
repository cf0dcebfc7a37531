package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/extract"
	"github.com/roach88/ambercart/internal/markup"
	"github.com/roach88/ambercart/internal/order"
	"github.com/roach88/ambercart/internal/storage"
	"github.com/roach88/ambercart/internal/view"
)

// ErrNoTrigger is returned for an add event without a control to extract from.
var ErrNoTrigger = errors.New("add event has no trigger element")

// ErrNoPage is returned by Click when the controller has no page.
var ErrNoPage = errors.New("controller has no page")

// OrderLog records dispatched checkouts. Implemented by storage.SQLite.
type OrderLog interface {
	RecordOrder(ctx context.Context, rec storage.OrderRecord) (int64, error)
}

// Deps are the collaborators of a Controller.
// Store, Extractor, Renderer and Composer are required.
type Deps struct {
	Store     *cart.Store
	Extractor *extract.Extractor
	Renderer  *view.Renderer
	Composer  *order.Composer
	Links     order.Links

	// Launcher opens checkout links. Nil skips launching.
	Launcher order.Launcher
	// Orders records checkouts. Nil skips recording.
	Orders OrderLog
	// IDs generates order ids. Defaults to UUIDv7Generator.
	IDs IDGenerator
	// Clock drives notice expiry. Defaults to SystemClock.
	Clock Clock
	// NoticeTTL defaults to DefaultNoticeTTL.
	NoticeTTL time.Duration
	// Page receives the rendered view after every change. Optional.
	Page   *markup.Document
	Logger *slog.Logger
}

// Outcome reports what an event did.
type Outcome struct {
	Action markup.Action `json:"action"`
	ItemID string        `json:"item_id,omitempty"`
	// Changed is false for ignored clicks and unknown ids.
	Changed bool `json:"changed"`
	// Item is the resulting line after an add.
	Item   *cart.LineItem `json:"item,omitempty"`
	Notice Notice         `json:"notice"`
}

// Controller serializes cart events and keeps the view in step with the
// persisted cart.
//
// Thread-safety: all methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	store     *cart.Store
	extractor *extract.Extractor
	renderer  *view.Renderer
	composer  *order.Composer
	links     order.Links
	launcher  order.Launcher
	orders    OrderLog
	ids       IDGenerator
	page      *markup.Document
	logger    *slog.Logger
	notices   noticeBoard

	current view.View
}

// New creates a controller and renders the current cart.
func New(d Deps) (*Controller, error) {
	switch {
	case d.Store == nil:
		return nil, errors.New("storefront: store is required")
	case d.Extractor == nil:
		return nil, errors.New("storefront: extractor is required")
	case d.Renderer == nil:
		return nil, errors.New("storefront: renderer is required")
	case d.Composer == nil:
		return nil, errors.New("storefront: composer is required")
	}

	c := &Controller{
		store:     d.Store,
		extractor: d.Extractor,
		renderer:  d.Renderer,
		composer:  d.Composer,
		links:     d.Links,
		launcher:  d.Launcher,
		orders:    d.Orders,
		ids:       d.IDs,
		page:      d.Page,
		logger:    d.Logger,
		notices: noticeBoard{
			clock: d.Clock,
			ttl:   d.NoticeTTL,
		},
	}
	if c.ids == nil {
		c.ids = UUIDv7Generator{}
	}
	if c.notices.clock == nil {
		c.notices.clock = SystemClock{}
	}
	if c.notices.ttl <= 0 {
		c.notices.ttl = DefaultNoticeTTL
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	// Listeners only fire after a successful persist, so the view never
	// shows state that storage does not hold.
	c.store.Subscribe(c.render)
	c.render(c.store.Snapshot())
	return c, nil
}

// render replaces the current view and mirrors it into the page.
// Called with mu held or during construction.
func (c *Controller) render(ct cart.Cart) {
	c.current = c.renderer.Render(ct)
	if c.page == nil {
		return
	}
	if err := c.renderer.Apply(c.page, c.current); err != nil {
		c.logger.Error("apply view to page", "error", err)
	}
}

// View returns the rendered cart.
func (c *Controller) View() view.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Cart returns a snapshot of the cart.
func (c *Controller) Cart() cart.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Snapshot()
}

// Notice returns the visible notice, if any has not yet expired.
func (c *Controller) Notice() (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notices.active()
}

// Reload re-reads the persisted cart and re-renders. Used when another
// context wrote the same storage key.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Reload(ctx); err != nil {
		return err
	}
	c.render(c.store.Snapshot())
	return nil
}

// Click routes a click on target through event delegation. Clicks outside
// any cart control are ignored. The page is only read and written under the
// controller's lock.
func (c *Controller) Click(ctx context.Context, target *html.Node) (Outcome, error) {
	if c.page == nil {
		return Outcome{}, ErrNoPage
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	ev, ok := markup.Delegate(target)
	if !ok {
		return Outcome{}, nil
	}
	return c.dispatch(ctx, ev)
}

// Dispatch applies one event to the cart.
//
// Shopper-facing failures (unreadable product, invalid input) set a notice
// on the outcome and are also returned as errors. Unknown ids are a no-op.
func (c *Controller) Dispatch(ctx context.Context, ev markup.Event) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(ctx, ev)
}

func (c *Controller) dispatch(ctx context.Context, ev markup.Event) (Outcome, error) {
	out := Outcome{Action: ev.Action, ItemID: ev.ItemID}
	switch ev.Action {
	case markup.ActionAdd:
		if ev.Control == nil {
			return out, ErrNoTrigger
		}
		d, err := c.extractor.Extract(ev.Control)
		if err != nil {
			var f *extract.Failure
			if errors.As(err, &f) {
				out.Notice = c.notices.post(NoticeError, f.Notice)
			}
			c.logger.Warn("extract product", "error", err)
			return out, err
		}
		return c.add(ctx, out, d, 1)

	case markup.ActionInc:
		return c.changeQty(ctx, out, 1)
	case markup.ActionDec:
		return c.changeQty(ctx, out, -1)

	case markup.ActionRemove:
		changed, err := c.store.Remove(ctx, ev.ItemID)
		out.Changed = changed
		return out, err

	case markup.ActionClear:
		if err := c.store.Clear(ctx); err != nil {
			return out, err
		}
		out.Changed = true
		return out, nil

	default:
		return out, fmt.Errorf("storefront: unknown action %q", ev.Action)
	}
}

// AddDescriptor adds qty units of an already extracted product.
func (c *Controller) AddDescriptor(ctx context.Context, d cart.Descriptor, qty int) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.add(ctx, Outcome{Action: markup.ActionAdd}, d, qty)
}

func (c *Controller) add(ctx context.Context, out Outcome, d cart.Descriptor, qty int) (Outcome, error) {
	item, err := c.store.Add(ctx, d, qty)
	if err != nil {
		return out, err
	}
	out.ItemID = item.ID
	out.Item = &item
	out.Changed = true
	out.Notice = c.notices.post(NoticeInfo, c.renderer.Labels().Added)
	return out, nil
}

func (c *Controller) changeQty(ctx context.Context, out Outcome, delta int) (Outcome, error) {
	changed, err := c.store.ChangeQty(ctx, out.ItemID, delta)
	out.Changed = changed
	return out, err
}
