package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/ambercart/internal/extract"
	"github.com/roach88/ambercart/internal/markup"
)

// ScanOptions holds flags for the scan command.
type ScanOptions struct {
	*RootOptions
	Add   []int
	Write string
}

// ScannedProduct is one add control found on a page.
type ScannedProduct struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	ID    string `json:"id,omitempty"`
	Price string `json:"price,omitempty"`
	Error string `json:"error,omitempty"`
}

// ScanResult is the output of the scan command.
type ScanResult struct {
	Products []ScannedProduct `json:"products"`
	Added    []string         `json:"added,omitempty"`
	Count    int              `json:"count"`
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scan <page.html>",
		Short: "List products on a catalog page and add them to the cart",
		Long: `Scan a storefront page for add-to-cart controls.

Every control is listed with the product it resolves to. --add clicks
controls by index, in order; --write saves the page with the cart view
rendered into it.

Examples:
  ambercart scan catalog.html
  ambercart scan catalog.html --add 0 --add 3
  ambercart scan catalog.html --add 1 --write rendered.html`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntSliceVar(&opts.Add, "add", nil, "index of an add control to click (repeatable)")
	cmd.Flags().StringVar(&opts.Write, "write", "", "write the rendered page to this path")

	return cmd
}

func runScan(opts *ScanOptions, path string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open page", err)
	}
	page, err := markup.Parse(f)
	f.Close()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse page", err)
	}

	s, err := openSession(ctx, opts.RootOptions, sessionOptions{page: page})
	if err != nil {
		return err
	}
	defer s.Close()

	triggers := page.Triggers()
	extractor := extract.New(s.cfg.Vocabulary)
	result := ScanResult{Products: make([]ScannedProduct, 0, len(triggers))}
	for i, t := range triggers {
		p := ScannedProduct{Index: i}
		d, err := extractor.Extract(t)
		if err != nil {
			p.Error = err.Error()
		} else {
			p.Name, p.ID, p.Price = d.Name, d.Identity(), d.Price.String()
		}
		result.Products = append(result.Products, p)
	}

	for _, idx := range opts.Add {
		if idx < 0 || idx >= len(triggers) {
			return NewExitError(ExitCommandError, fmt.Sprintf("--add %d: page has %d add controls", idx, len(triggers)))
		}
		out, err := s.ctrl.Click(ctx, triggers[idx].Node())
		if err != nil {
			return eventError(fmt.Sprintf("failed to add product %d", idx), err)
		}
		result.Added = append(result.Added, out.ItemID)
	}
	result.Count = s.ctrl.View().Count

	if opts.Write != "" {
		if err := os.WriteFile(opts.Write, []byte(page.String()), 0644); err != nil {
			return WrapExitError(ExitCommandError, "failed to write page", err)
		}
	}

	fm := opts.formatter(cmd)
	if opts.Format == "json" {
		return fm.Success(result)
	}
	for _, p := range result.Products {
		if p.Error != "" {
			fmt.Fprintf(fm.Writer, "[%d] ✗ %s\n", p.Index, p.Error)
			continue
		}
		fmt.Fprintf(fm.Writer, "[%d] %s  %s  [%s]\n", p.Index, p.Name, p.Price, p.ID)
	}
	if len(result.Added) > 0 {
		fmt.Fprintf(fm.Writer, "Added %d, items in cart: %d\n", len(result.Added), result.Count)
	}
	fm.Debugf("page controls: %d", len(triggers))
	return nil
}
