package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/floorslice/floorslice/pkg/pipeline"
)

// layoutCommand creates the layout command for measuring and placing plans.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout <input|plan.json>",
		Short: "Measure and place a plan, writing annotated JSON",
		Long: `Measure and place a slicing plan.

The layout command accepts either a token file or a plan.json produced by
'parse'. It computes every cut node's enclosing rectangle bottom-up, then
assigns every block's absolute bottom-left coordinate top-down from origin
(0,0). The output is annotated plan JSON that 'render' consumes directly.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			root, err := loadPlan(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			prog := newProgress(logger)
			root, hit, err := runner.LayoutWithCacheInfo(ctx, root, pipeline.Options{
				Refresh: refresh,
				Logger:  logger,
			})
			if err != nil {
				return fmt.Errorf("compute layout: %w", err)
			}

			w, h := root.Size()
			msg := fmt.Sprintf("Placed floorplan (%dx%d enclosing rectangle)", w, h)
			if hit {
				msg += " [cached]"
			}
			prog.done(msg)

			return writePlan(root, true, output, logger)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")

	return cmd
}
