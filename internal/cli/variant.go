package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"product-feed/internal/models"
	"product-feed/internal/variant"
)

func NewVariantCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		productID  string
		selections []string
		maxPages   int
	)

	cmd := &cobra.Command{
		Use:   "variant",
		Short: "Resolve a product variant from option selections",
		Long: `Looks the product up in the first feed pages, binds its default variant and
applies each --select option=value in order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVariant(rootOpts, cmd, productID, selections, maxPages)
		},
	}

	cmd.Flags().StringVar(&productID, "product", "", "product id")
	cmd.Flags().StringSliceVar(&selections, "select", nil, "option selection as option_id=value (repeatable)")
	cmd.Flags().IntVar(&maxPages, "pages", 5, "how many feed pages to search for the product")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func runVariant(opts *RootOptions, cmd *cobra.Command, productID string, rawSelections []string, maxPages int) error {
	out := opts.formatter(cmd)

	selections, err := parseSelections(rawSelections)
	if err != nil {
		out.Error(err)
		return err
	}

	stack, cfg, err := opts.buildStack(cmd.Context())
	if err != nil {
		out.Error(err)
		return err
	}
	defer stack.Close()

	var product *models.Product
	for page := 0; page < maxPages && product == nil; page++ {
		items := stack.Aggregator.FetchPage(cmd.Context(), page, cfg.PageSize)
		if len(items) == 0 {
			break
		}
		for _, it := range items {
			if it.Product != nil && it.Product.ID == productID {
				product = it.Product
				break
			}
		}
	}
	if product == nil {
		notFound := NewExitError(ExitFailure, fmt.Sprintf("product %q not found in the first %d pages", productID, maxPages))
		out.Error(notFound)
		return notFound
	}

	r := variant.Bind(product)
	for _, sel := range selections {
		if err := r.SelectOption(sel[0], sel[1]); err != nil {
			wrapped := WrapExitError(ExitCommandError, fmt.Sprintf("option %q", sel[0]), err)
			out.Error(wrapped)
			return wrapped
		}
		out.VerboseLog("selected %s=%s", sel[0], sel[1])
	}

	view := r.View()
	return out.Result(view, func(w io.Writer) {
		fmt.Fprintf(w, "%s\n", product.Title)
		fmt.Fprintf(w, "  %s\n", variant.ProductDescription(product))
		if view.Variant == nil {
			fmt.Fprintf(w, "  no variants (%s)\n", variant.ProductPrice(product))
			return
		}

		keys := make([]string, 0, len(view.SelectedOptions))
		for k := range view.SelectedOptions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, view.SelectedOptions[k])
		}

		stock := "in stock"
		switch {
		case view.OutOfStock:
			stock = "out of stock"
		case view.LowStock:
			stock = "low stock"
		}
		fmt.Fprintf(w, "  variant %s  %s  %s\n", view.Variant.ID, view.FormattedPrice, stock)
	})
}
