package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/floorslice/floorslice/pkg/errors"
	"github.com/floorslice/floorslice/pkg/plan"
)

// parseCommand creates the parse command: token input → plan JSON.
func (c *CLI) parseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Rebuild a slicing tree from tokens and write it as plan JSON",
		Long: `Rebuild the slicing tree from a post-order token file and write the
unmeasured tree as plan JSON (one nested node object).

The JSON output can be fed to 'layout' or 'render' for staged processing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			prog := newProgress(logger)
			root, err := buildFromFile(args[0])
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Built %d nodes (%d blocks)",
				plan.Count(root), len(plan.Leaves(root, nil))))

			return writePlan(root, false, output, logger)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// buildFromFile reads a token file and reconstructs the slicing tree.
func buildFromFile(path string) (plan.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open input %s", path)
	}
	defer f.Close()
	return plan.Build(f)
}

// loadPlan loads either a token file or a plan JSON file, detected by
// extension. JSON plans round-trip through the parse command; token files
// are built directly.
func loadPlan(path string) (plan.Node, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		root, err := plan.ImportJSON(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "load plan %s", path)
		}
		return root, nil
	}
	return buildFromFile(path)
}

// writePlan serializes the tree as JSON to the specified path (or stdout if
// empty). The logger is notified on success with the output path.
func writePlan(root plan.Node, placed bool, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create output %s", path)
	}
	defer out.Close()

	if err := plan.WriteJSON(root, placed, out); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote plan to %s", path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
