package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ambercart/internal/storage"
)

// OrdersOptions holds flags for the orders command.
type OrdersOptions struct {
	*RootOptions
	Limit       int
	Transcripts bool
}

// NewOrdersCommand creates the orders command.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrdersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List dispatched orders",
		Long: `List dispatched orders oldest first.

Examples:
  ambercart orders
  ambercart orders --limit 5 --transcripts
  ambercart orders --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrders(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show only the most recent N orders (0 = all)")
	cmd.Flags().BoolVar(&opts.Transcripts, "transcripts", false, "print each order's transcript")

	return cmd
}

func runOrders(opts *OrdersOptions, cmd *cobra.Command) error {
	db, err := storage.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer db.Close()

	orders, err := db.ListOrders(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list orders", err)
	}

	f := opts.formatter(cmd)
	if opts.Format == "json" {
		if orders == nil {
			orders = []storage.OrderRecord{}
		}
		return f.Success(orders)
	}
	if len(orders) == 0 {
		fmt.Fprintln(f.Writer, "No orders.")
		return nil
	}
	for _, o := range orders {
		fmt.Fprintf(f.Writer, "#%d %s  %s  %d items  %s  %s\n",
			o.Seq, o.ID, o.Channel, o.ItemCount, o.Total, o.CustomerName)
		if opts.Transcripts {
			fmt.Fprintf(f.Writer, "%s\n\n", o.Transcript)
		}
	}
	return nil
}
