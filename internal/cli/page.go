package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"product-feed/internal/models"
)

type PageResult struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.FeedItem `json:"items"`
}

func NewPageCommand(rootOpts *RootOptions) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:           "page",
		Short:         "Fetch one aggregated feed page",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(rootOpts, cmd, page, size)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page index, starting at 0")
	cmd.Flags().IntVar(&size, "size", 0, "page size (defaults to FEED_PAGE_SIZE)")
	return cmd
}

func runPage(opts *RootOptions, cmd *cobra.Command, page, size int) error {
	out := opts.formatter(cmd)

	stack, cfg, err := opts.buildStack(cmd.Context())
	if err != nil {
		out.Error(err)
		return err
	}
	defer stack.Close()

	if size <= 0 {
		size = cfg.PageSize
	}
	out.VerboseLog("fetching page %d (size %d) from catalog=%s media=%s", page, size, cfg.CatalogSource, cfg.MediaSource)

	items, err := stack.Aggregator.FetchPageE(cmd.Context(), page, size)
	if err != nil {
		wrapped := WrapExitError(ExitFailure, fmt.Sprintf("page %d unavailable", page), err)
		out.Error(wrapped)
		return wrapped
	}

	result := PageResult{Page: page, PageSize: size, Items: items}
	return out.Result(result, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintln(w, "no items")
			return
		}
		for i, it := range items {
			fmt.Fprintf(w, "%3d  %-28s %-12s %-6s %s\n", i, it.ID, it.Kind, it.MediaType, it.MediaURL)
		}
	})
}
