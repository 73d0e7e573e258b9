package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/floorslice/floorslice/pkg/errors"
	"github.com/floorslice/floorslice/pkg/pipeline"
)

// formatExt maps render formats to output file extensions.
var formatExt = map[string]string{
	pipeline.FormatSVG:      ".svg",
	pipeline.FormatJSON:     ".json",
	pipeline.FormatDOT:      ".dot",
	pipeline.FormatGraphSVG: ".graph.svg",
	pipeline.FormatGraphPNG: ".graph.png",
}

// renderCommand creates the render command producing visual artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats string
		output  string
		scale   int
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "render <input|layout.json>",
		Short: "Render a floorplan as SVG, DOT, or Graphviz artifacts",
		Long: `Render a placed floorplan.

Accepts a token file or a plan JSON (from 'parse' or 'layout'); the geometry
passes run automatically if needed. Formats:

  svg        floorplan drawing with one labelled rectangle per block
  json       annotated plan JSON
  dot        slicing tree in Graphviz DOT text
  graph-svg  slicing tree rasterized via graphviz
  graph-png  slicing tree rasterized via graphviz

Multiple formats can be requested comma-separated; each is written next to
the input (or to --output when a single format is requested).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], parseFormats(formats, c.Config.Render.Format),
				output, scale, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&formats, "formats", "f", "", "comma-separated output formats (default from config, usually svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format only)")
	cmd.Flags().IntVar(&scale, "scale", 0, "SVG user units per plan unit")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, formats []string, output string, scale int, noCache, refresh bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if output != "" && len(formats) > 1 {
		return errors.New(errors.ErrCodeUsage, "--output supports a single format, got %d", len(formats))
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "render formats")
	}

	root, err := loadPlan(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Scale:   scale,
		Refresh: refresh,
		Logger:  logger,
	}
	// Normalizing here keeps artifact cache keys consistent with batch runs.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	// Geometry passes are idempotent, so re-running them on an already
	// annotated plan is harmless.
	root, err = runner.Layout(ctx, root, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
	spinner.Start()

	written := make([]string, 0, len(formats))
	for _, format := range formats {
		data, err := runner.RenderArtifact(ctx, root, format, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render %s: %w", format, err)
		}

		path := output
		if path == "" {
			path = outputPath(input, format)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			spinner.StopWithError("Render failed")
			return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
		}
		written = append(written, path)
	}

	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d artifacts", len(written)))
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// outputPath derives the artifact path next to the input file.
func outputPath(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + formatExt[format]
}

// parseFormats parses a comma-separated format string into a slice,
// falling back to the configured default.
func parseFormats(s, fallback string) []string {
	if s == "" {
		if fallback == "" {
			fallback = pipeline.FormatSVG
		}
		return []string{fallback}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
