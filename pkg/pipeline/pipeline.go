// Package pipeline provides the core processing pipeline for floorslice.
//
// This package implements the complete build → layout → report/render flow
// used by every CLI command. Centralizing it keeps staged invocations
// (parse, layout, render) and the single-shot batch run consistent.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: reconstruct the slicing tree from its post-order token encoding
//  2. Layout: measure enclosing rectangles bottom-up, then place blocks top-down
//  3. Emit: produce the three traversal reports, or render visual artifacts
//
// Each stage can be run independently or as part of the complete pipeline,
// and the first two are cached by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	structure := result.Reports[plan.ReportStructure]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/floorslice/floorslice/pkg/plan"
)

// Format constants for render outputs.
const (
	FormatSVG      = "svg"       // floorplan drawing
	FormatJSON     = "json"      // annotated plan JSON
	FormatDOT      = "dot"       // slicing tree in DOT text
	FormatGraphSVG = "graph-svg" // slicing tree rasterized via graphviz
	FormatGraphPNG = "graph-png" // slicing tree rasterized via graphviz
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatGraphSVG: true,
	FormatGraphPNG: true,
}

// DefaultScale is the default SVG scale in user units per plan unit.
const DefaultScale = 10

// Options contains all configuration for the pipeline.
type Options struct {
	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   int      `json:"scale,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this pipeline execution in logs.
	RunID string

	// Root is the fully measured and placed slicing tree.
	Root plan.Node

	// PlanHash is the content hash of the built (unannotated) plan.
	PlanHash string

	// Reports contains the three traversal reports keyed by kind.
	Reports map[plan.Report][]byte

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	EmitTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the built plan came from cache
	LayoutHit bool // Whether the annotated layout came from cache
}

// ValidateFormat checks that a render format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, json, dot, graph-svg, graph-png)", format)
	}
	return nil
}

// ValidateFormats checks that all render formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return fmt.Errorf("scale must be positive, got %d", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
