package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/roach88/ambercart/internal/order"
	"github.com/roach88/ambercart/internal/storage"
)

// Receipt describes a dispatched checkout.
type Receipt struct {
	OrderID    string          `json:"order_id"`
	Seq        int64           `json:"seq,omitempty"`
	Channel    order.Channel   `json:"channel"`
	Link       string          `json:"link"`
	Transcript string          `json:"transcript"`
	ItemCount  int             `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
}

// Checkout composes the order, opens the channel link and records the
// dispatch. The cart is left as it is.
//
// Validation failures are *order.ValidationError values and also post an
// error notice.
func (c *Controller) Checkout(ctx context.Context, ch order.Channel, customer order.Customer) (Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.store.Snapshot()
	customer = customer.Trimmed()
	text, err := c.composer.Compose(snapshot, customer)
	if err != nil {
		var ve *order.ValidationError
		if errors.As(err, &ve) {
			c.notices.post(NoticeError, ve.Notice)
		}
		return Receipt{}, err
	}

	link, err := c.links.Link(ch, text)
	if err != nil {
		return Receipt{}, err
	}

	r := Receipt{
		OrderID:    c.ids.Generate(),
		Channel:    ch,
		Link:       link,
		Transcript: text,
		ItemCount:  snapshot.ItemCount(),
		Total:      snapshot.Total(),
	}

	if c.launcher != nil {
		if err := c.launcher.Open(link); err != nil {
			return Receipt{}, fmt.Errorf("open %s link: %w", ch, err)
		}
	}

	if c.orders != nil {
		seq, err := c.orders.RecordOrder(ctx, storage.OrderRecord{
			ID:            r.OrderID,
			Channel:       string(ch),
			Link:          link,
			Transcript:    text,
			ItemCount:     r.ItemCount,
			Total:         r.Total.String(),
			CustomerName:  customer.Name,
			CustomerPhone: customer.Phone,
		})
		if err != nil {
			return r, fmt.Errorf("record order: %w", err)
		}
		r.Seq = seq
	}

	c.logger.Info("order dispatched", "id", r.OrderID, "channel", ch, "items", r.ItemCount, "total", r.Total.String())
	return r, nil
}
