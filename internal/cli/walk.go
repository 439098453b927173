package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"product-feed/internal/window"
)

type WalkStep struct {
	Index     int   `json:"index"`
	Window    []int `json:"window"`
	Triggered []int `json:"triggered,omitempty"`
	Loaded    int   `json:"loaded"`
}

type WalkResult struct {
	Steps        []WalkStep         `json:"steps"`
	Final        window.WindowState `json:"final"`
	ErrorMessage string             `json:"error_message,omitempty"`
}

func NewWalkCommand(rootOpts *RootOptions) *cobra.Command {
	var steps, size, threshold int

	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Scroll a feed window forward one item at a time",
		Long: `Loads page 0 into a scroll window and advances the current index one item per
step, waiting for each triggered page before the next step.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalk(rootOpts, cmd, steps, size, threshold)
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 10, "number of forward steps")
	cmd.Flags().IntVar(&size, "size", 0, "page size (defaults to FEED_PAGE_SIZE)")
	cmd.Flags().IntVar(&threshold, "threshold", -1, "end-reached threshold (defaults to END_REACHED_THRESHOLD)")
	return cmd
}

func runWalk(opts *RootOptions, cmd *cobra.Command, steps, size, threshold int) error {
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
	if threshold < 0 {
		threshold = cfg.EndReachedThreshold
	}

	first := stack.Aggregator.FetchPage(cmd.Context(), 0, size)
	ctrl := window.New(first, stack.Aggregator.PageFetcher(size),
		window.WithContext(cmd.Context()),
		window.WithEndReachedThreshold(threshold),
	)
	defer ctrl.Dispose()

	var triggered []int
	ctrl.OnEndReached(func(page int) {
		triggered = append(triggered, page)
		out.VerboseLog("end reached, loading page %d", page)
	})

	result := WalkResult{}
	for i := 1; i <= steps; i++ {
		triggered = nil
		if !ctrl.SetCurrentIndex(i) {
			out.VerboseLog("stopped at index %d: nothing more to show", ctrl.CurrentIndex())
			break
		}
		ctrl.Wait()
		result.Steps = append(result.Steps, WalkStep{
			Index:     i,
			Window:    ctrl.Window(),
			Triggered: triggered,
			Loaded:    ctrl.State().LoadedItemCount,
		})
	}

	result.Final = ctrl.State()
	result.ErrorMessage = result.Final.ErrorMessage()

	return out.Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "start: %d items\n", len(first))
		for _, s := range result.Steps {
			fmt.Fprintf(w, "step %-3d window=%v loaded=%d", s.Index, s.Window, s.Loaded)
			if len(s.Triggered) > 0 {
				fmt.Fprintf(w, " fetched=%v", s.Triggered)
			}
			fmt.Fprintln(w)
		}
		f := result.Final
		fmt.Fprintf(w, "final: index=%d direction=%s loaded=%d has_more=%t next_page=%d\n",
			f.CurrentIndex, f.Direction, f.LoadedItemCount, f.HasMore, f.Page)
		if result.ErrorMessage != "" {
			fmt.Fprintln(w, result.ErrorMessage)
		}
	})
}
