package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/config"
	"github.com/roach88/ambercart/internal/markup"
	"github.com/roach88/ambercart/internal/money"
	"github.com/roach88/ambercart/internal/order"
	"github.com/roach88/ambercart/internal/storage"
	"github.com/roach88/ambercart/internal/storefront"
	"github.com/roach88/ambercart/internal/testutil"
)

// Epoch is the manual clock's start time.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Harness executes flow steps against one controller.
type Harness struct {
	mem    *storage.Memory
	store  *cart.Store
	ctrl   *storefront.Controller
	page   *markup.Document
	key    string
	clock  *testutil.ManualClock
	logger *slog.Logger
	links  []string
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against fresh in-memory storage. Errors are returned
// only when the scenario cannot be set up; step and assertion failures are
// reported on the result.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	cfg, err := config.Load(scenario.Config)
	if err != nil {
		return nil, err
	}
	if scenario.Locale != nil {
		cfg.Locale = *scenario.Locale
	}
	if scenario.Currency != nil {
		cfg.Currency = *scenario.Currency
	}

	h := &Harness{
		mem:    storage.NewMemory(),
		key:    cfg.StorageKey,
		clock:  testutil.NewManualClock(Epoch),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	if scenario.Seed != nil {
		h.mem.Seed(h.key, *scenario.Seed)
	}
	if scenario.Page != "" {
		h.page, err = markup.ParseString(scenario.Page)
		if err != nil {
			return nil, err
		}
	}

	h.store, err = cart.Open(ctx, h.mem, cart.WithKey(h.key), cart.WithLogger(h.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open cart: %w", err)
	}
	h.ctrl, err = storefront.NewFromConfig(cfg, storefront.Deps{
		Store: h.store,
		Launcher: order.LauncherFunc(func(link string) error {
			h.links = append(h.links, link)
			return nil
		}),
		Orders: h.mem,
		IDs:    testutil.NewSequenceIDGenerator("order"),
		Clock:  h.clock,
		Page:   h.page,
		Logger: h.logger,
	})
	if err != nil {
		return nil, err
	}

	result := NewResult()
	for i, step := range scenario.Flow {
		h.execute(ctx, i, step, result)
	}

	result.Cart = h.ctrl.Cart()
	result.Orders, err = h.mem.ListOrders(ctx, 0)
	if err != nil {
		return nil, err
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// execute runs one step, traces it and checks its expect clause.
func (h *Harness) execute(ctx context.Context, i int, step FlowStep, result *Result) {
	ev := TraceEvent{Step: i, Op: step.Op, ItemID: step.Item}
	changed, notice, err := h.apply(ctx, step, &ev, result)

	switch {
	case err != nil:
		ev.Outcome = OutcomeError
		ev.Error = err.Error()
	case changed:
		ev.Outcome = OutcomeOK
	default:
		ev.Outcome = OutcomeNoop
	}
	ev.Notice = notice
	c := h.ctrl.Cart()
	ev.Count = c.ItemCount()
	ev.Total = c.Total().String()
	result.Trace = append(result.Trace, ev)

	h.logger.Info("flow step completed", "step", i, "op", step.Op, "outcome", ev.Outcome)

	// Notices are transient; each step starts with a clean board.
	h.clock.Advance(time.Hour)

	if step.Expect == nil {
		if err != nil {
			result.AddError(fmt.Sprintf("flow[%d] %s: unexpected error: %v", i, step.Op, err))
		}
		return
	}
	if ev.Outcome != step.Expect.Outcome {
		result.AddError(fmt.Sprintf("flow[%d] %s: expected outcome %s, got %s (%s)",
			i, step.Op, step.Expect.Outcome, ev.Outcome, ev.Error))
	}
	if step.Expect.Error != "" && !containsFold(ev.Error, step.Expect.Error) {
		result.AddError(fmt.Sprintf("flow[%d] %s: expected error containing %q, got %q",
			i, step.Op, step.Expect.Error, ev.Error))
	}
	if step.Expect.Notice != "" && ev.Notice != step.Expect.Notice {
		result.AddError(fmt.Sprintf("flow[%d] %s: expected notice %q, got %q",
			i, step.Op, step.Expect.Notice, ev.Notice))
	}
}

// apply performs the step's operation.
func (h *Harness) apply(ctx context.Context, step FlowStep, ev *TraceEvent, result *Result) (bool, string, error) {
	var (
		out storefront.Outcome
		err error
	)

	switch step.Op {
	case OpAdd:
		out, err = h.add(ctx, step)
		if out.ItemID != "" {
			ev.ItemID = out.ItemID
		}

	case OpInc:
		out, err = h.ctrl.Dispatch(ctx, markup.Event{Action: markup.ActionInc, ItemID: step.Item})
	case OpDec:
		out, err = h.ctrl.Dispatch(ctx, markup.Event{Action: markup.ActionDec, ItemID: step.Item})
	case OpRemove:
		out, err = h.ctrl.Dispatch(ctx, markup.Event{Action: markup.ActionRemove, ItemID: step.Item})
	case OpClear:
		out, err = h.ctrl.Dispatch(ctx, markup.Event{Action: markup.ActionClear})

	case OpCheckout:
		r, err := h.ctrl.Checkout(ctx, order.Channel(step.Channel), step.Customer)
		if err != nil {
			n, _ := h.ctrl.Notice()
			return false, n.Text, err
		}
		result.Transcripts = append(result.Transcripts, r.Transcript)
		return true, "", nil

	case OpCorrupt:
		h.mem.Seed(h.key, step.Data)
		return true, "", h.ctrl.Reload(ctx)
	case OpReload:
		return true, "", h.ctrl.Reload(ctx)

	default:
		return false, "", fmt.Errorf("unknown op %q", step.Op)
	}
	return out.Changed, out.Notice.Text, err
}

func (h *Harness) add(ctx context.Context, step FlowStep) (storefront.Outcome, error) {
	qty := 1
	if step.Qty != nil {
		qty = *step.Qty
	}

	if step.Trigger != nil {
		if h.page == nil {
			return storefront.Outcome{}, errors.New("no page loaded")
		}
		triggers := h.page.Triggers()
		if *step.Trigger >= len(triggers) {
			return storefront.Outcome{}, fmt.Errorf("trigger %d out of range (page has %d)", *step.Trigger, len(triggers))
		}
		var out storefront.Outcome
		for n := 0; n < qty; n++ {
			o, err := h.ctrl.Click(ctx, triggers[*step.Trigger].Node())
			if err != nil {
				return o, err
			}
			out = o
		}
		return out, nil
	}

	price, err := money.Parse(step.Price)
	if err != nil {
		return storefront.Outcome{}, err
	}
	return h.ctrl.AddDescriptor(ctx, cart.Descriptor{Name: step.Name, ID: step.ID, Price: price}, qty)
}
