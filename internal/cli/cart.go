package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ambercart/internal/cart"
	"github.com/roach88/ambercart/internal/markup"
	"github.com/roach88/ambercart/internal/money"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Name  string
	ID    string
	Price string
	Qty   int
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the cart",
		Long: `Add a product to the cart by name and price.

Adding a product already in the cart increases its quantity. Products
without an article number are identified by name and price.

Examples:
  ambercart add --name "Oil filter" --id JM93-001 --price "6 720 ₽"
  ambercart add --name "Bolt" --price 0,35 --qty 40`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "article number")
	cmd.Flags().StringVar(&opts.Price, "price", "", "unit price (required)")
	cmd.Flags().IntVar(&opts.Qty, "qty", 1, "quantity to add")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	price, err := money.Parse(opts.Price)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid --price", err)
	}

	s, err := openSession(cmd.Context(), opts.RootOptions, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.ctrl.AddDescriptor(cmd.Context(), cart.Descriptor{Name: opts.Name, ID: opts.ID, Price: price}, opts.Qty)
	if err != nil {
		return eventError("failed to add product", err)
	}

	f := opts.formatter(cmd)
	if opts.Format == "json" {
		return f.Success(out)
	}
	fmt.Fprintf(f.Writer, "%s: %s (%s) × %d\n", out.Notice.Text, out.Item.Name, out.Item.ID, out.Item.Qty)
	fmt.Fprintf(f.Writer, "Items: %d\n", s.ctrl.View().Count)
	return nil
}

// NewQtyCommand creates a command that changes an item's quantity by delta.
func NewQtyCommand(rootOpts *RootOptions, name string, delta int) *cobra.Command {
	short := "Increase an item's quantity by one"
	if delta < 0 {
		short = "Decrease an item's quantity by one (removes it at zero)"
	}
	action := markup.ActionInc
	if delta < 0 {
		action = markup.ActionDec
	}

	return &cobra.Command{
		Use:           name + " <item-id>",
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemEvent(rootOpts, cmd, markup.Event{Action: action, ItemID: args[0]})
		},
	}
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <item-id>",
		Short:         "Remove an item from the cart",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemEvent(rootOpts, cmd, markup.Event{Action: markup.ActionRemove, ItemID: args[0]})
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Empty the cart",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemEvent(rootOpts, cmd, markup.Event{Action: markup.ActionClear})
		},
	}
}

// runItemEvent dispatches an id-keyed event and prints the resulting cart.
// Unknown ids exit 1 without touching the cart.
func runItemEvent(opts *RootOptions, cmd *cobra.Command, ev markup.Event) error {
	s, err := openSession(cmd.Context(), opts, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.ctrl.Dispatch(cmd.Context(), ev)
	if err != nil {
		return eventError(fmt.Sprintf("failed to %s", ev.Action), err)
	}
	if !out.Changed {
		return WrapExitError(ExitFailure, fmt.Sprintf("cannot %s %q", ev.Action, ev.ItemID), errNotInCart)
	}
	return printView(opts, cmd, s)
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Long: `Show the cart contents, item count and total.

Examples:
  ambercart show
  ambercart show --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), rootOpts, sessionOptions{})
			if err != nil {
				return err
			}
			defer s.Close()
			return printView(rootOpts, cmd, s)
		},
	}
}

func printView(opts *RootOptions, cmd *cobra.Command, s *session) error {
	v := s.ctrl.View()
	f := opts.formatter(cmd)
	if opts.Format == "json" {
		return f.Success(v)
	}
	fmt.Fprint(f.Writer, s.renderer.Text(v))
	return nil
}
