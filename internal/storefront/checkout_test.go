package storefront

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/order"
)

var ivan = order.Customer{Name: " Ivan ", Phone: "+7 900 000-00-00", Comment: "after 18:00"}

func TestCheckout_WhatsApp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.click(t, f.trigger(t, 0))
	f.click(t, f.trigger(t, 1))
	f.click(t, f.trigger(t, 1))

	r, err := f.ctrl.Checkout(ctx, order.ChannelWhatsApp, ivan)
	require.NoError(t, err)

	assert.Equal(t, "order-0001", r.OrderID)
	assert.Equal(t, int64(1), r.Seq)
	assert.Equal(t, 3, r.ItemCount)
	assert.Equal(t, "9720", r.Total.String())
	assert.True(t, strings.HasPrefix(r.Link, "https://wa.me/79001112233?text="))
	assert.Contains(t, r.Transcript, "1) Oil filter")
	assert.Contains(t, r.Transcript, "Ivan")
	assert.Equal(t, []string{r.Link}, f.launched)

	orders, err := f.mem.ListOrders(ctx, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-0001", orders[0].ID)
	assert.Equal(t, "whatsapp", orders[0].Channel)
	assert.Equal(t, "Ivan", orders[0].CustomerName)
	assert.Equal(t, r.Transcript, orders[0].Transcript)

	assert.Equal(t, 3, f.ctrl.View().Count, "checkout leaves the cart")
}

func TestCheckout_TelegramIDsAdvance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.click(t, f.trigger(t, 0))

	_, err := f.ctrl.Checkout(ctx, order.ChannelWhatsApp, ivan)
	require.NoError(t, err)
	r, err := f.ctrl.Checkout(ctx, order.ChannelTelegram, ivan)
	require.NoError(t, err)

	assert.Equal(t, "order-0002", r.OrderID)
	assert.True(t, strings.HasPrefix(r.Link, "https://t.me/share/url?text="))
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.ctrl.Checkout(context.Background(), order.ChannelWhatsApp, ivan)

	var ve *order.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ErrorIs(t, err, order.ErrEmptyCart)
	n, ok := f.ctrl.Notice()
	require.True(t, ok)
	assert.Equal(t, NoticeError, n.Kind)
	assert.Equal(t, order.DefaultMessages().EmptyCart, n.Text)
	assert.Empty(t, f.launched)
}

func TestCheckout_MissingCustomer(t *testing.T) {
	f := newFixture(t)
	f.click(t, f.trigger(t, 0))

	_, err := f.ctrl.Checkout(context.Background(), order.ChannelWhatsApp, order.Customer{Name: "Ivan", Phone: "  "})

	assert.ErrorIs(t, err, order.ErrMissingCustomer)
	assert.Empty(t, f.launched)
	orders, _ := f.mem.ListOrders(context.Background(), 0)
	assert.Empty(t, orders)
}

func TestCheckout_UnknownChannel(t *testing.T) {
	f := newFixture(t)
	f.click(t, f.trigger(t, 0))

	_, err := f.ctrl.Checkout(context.Background(), order.Channel("fax"), ivan)
	assert.ErrorIs(t, err, order.ErrUnknownChannel)
}

func TestCheckout_LaunchFailureRecordsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.click(t, f.trigger(t, 0))
	f.ctrl.launcher = order.LauncherFunc(func(string) error { return errors.New("no browser") })

	_, err := f.ctrl.Checkout(ctx, order.ChannelTelegram, ivan)
	require.Error(t, err)

	orders, err := f.mem.ListOrders(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Len(t, f.ctrl.Cart().Items, 1)
	assert.Contains(t, f.mem.Raw(cart.DefaultKey), "JM93-001")
}
