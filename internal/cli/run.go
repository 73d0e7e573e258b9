package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/floorslice/floorslice/pkg/errors"
	"github.com/floorslice/floorslice/pkg/pipeline"
	"github.com/floorslice/floorslice/pkg/plan"
)

// runCommand creates the run command: the single-shot batch pipeline.
func (c *CLI) runCommand() *cobra.Command {
	var (
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "run <input> <structure-out> <dimensions-out> <coordinates-out>",
		Short: "Rebuild a floorplan and write the three traversal reports",
		Long: `Rebuild a slicing floorplan from its post-order token encoding and write
the three traversal reports:

  structure-out    pre-order structure dump (input echo)
  dimensions-out   post-order dimensions, including derived cut rectangles
  coordinates-out  pre-order block placements

The input carries one token per line: a leaf descriptor label(width,height)
or a cut operator H or V. Any parse or structural error aborts the whole
run; partially written outputs are not cleaned up.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 4 {
				return errors.New(errors.ErrCodeUsage,
					"expected 4 arguments (input and three output paths), got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd, args, noCache, refresh)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")

	return cmd
}

// runBatch executes the full pipeline and writes the three report files.
// Output files are created before any processing so path problems surface
// immediately, mirroring the batch contract.
func (c *CLI) runBatch(cmd *cobra.Command, args []string, noCache, refresh bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	input, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "open input %s", args[0])
	}

	outs := make([]*os.File, 3)
	for i, path := range args[1:] {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "create output %s", path)
		}
		defer f.Close()
		outs[i] = f
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, input, pipeline.Options{
		Refresh: refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Processed %d nodes (%d blocks)",
		result.Stats.NodeCount, result.Stats.LeafCount))

	for i, kind := range plan.Reports {
		if _, err := outs[i].Write(result.Reports[kind]); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write %s report to %s", kind, args[i+1])
		}
	}

	printSuccess("Wrote %d reports", len(plan.Reports))
	for _, path := range args[1:] {
		printFile(path)
	}
	return nil
}
