package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ambercart/internal/order"
)

// CheckoutOptions holds flags for the checkout command.
type CheckoutOptions struct {
	*RootOptions
	Name    string
	Phone   string
	Comment string
	Open    bool
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkout <whatsapp|telegram>",
		Short: "Compose the order and hand it to a messaging channel",
		Long: `Compose the order transcript and build the channel deep link.

The order is recorded in the database. The cart is left as it is.
With --open the link is opened in the default browser.

Exit codes:
  0 - Order dispatched
  1 - Empty cart, missing name or phone, unknown channel
  2 - Command error (database, config, browser)

Examples:
  ambercart checkout whatsapp --name Ivan --phone "+7 900 123-45-67"
  ambercart checkout telegram --name Ivan --phone 89001234567 --open`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "customer phone")
	cmd.Flags().StringVar(&opts.Comment, "comment", "", "order comment")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "open the link in a browser")

	return cmd
}

func runCheckout(opts *CheckoutOptions, channel string, cmd *cobra.Command) error {
	ch, err := order.ParseChannel(channel)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid channel", err)
	}

	var so sessionOptions
	if opts.Open {
		so.launcher = order.BrowserLauncher{}
	}
	s, err := openSession(cmd.Context(), opts.RootOptions, so)
	if err != nil {
		return err
	}
	defer s.Close()

	receipt, err := s.ctrl.Checkout(cmd.Context(), ch, order.Customer{
		Name:    opts.Name,
		Phone:   opts.Phone,
		Comment: opts.Comment,
	})
	if err != nil {
		var ve *order.ValidationError
		if errors.As(err, &ve) {
			return WrapExitError(ExitFailure, ve.Notice, err)
		}
		return eventError("checkout failed", err)
	}

	f := opts.formatter(cmd)
	if opts.Format == "json" {
		return f.Success(receipt)
	}
	fmt.Fprintln(f.Writer, receipt.Transcript)
	fmt.Fprintln(f.Writer)
	fmt.Fprintf(f.Writer, "Order %s (#%d) via %s:\n%s\n", receipt.OrderID, receipt.Seq, receipt.Channel, receipt.Link)
	return nil
}
