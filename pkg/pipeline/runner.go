package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/floorslice/floorslice/pkg/cache"
	"github.com/floorslice/floorslice/pkg/plan"
	"github.com/floorslice/floorslice/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → layout → report pipeline with caching.
//
// The structure report is produced between Build and Layout, matching the
// batch flow: it echoes input geometry and does not depend on the passes.
// Render artifacts are produced only for the formats listed in opts.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Reports:   make(map[plan.Report][]byte),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID)

	// Stage 1: Build
	buildStart := time.Now()
	root, buildHit, err := r.BuildWithCacheInfo(ctx, input, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = plan.Count(root)
	result.Stats.LeafCount = len(plan.Leaves(root, nil))
	result.CacheInfo.BuildHit = buildHit

	if data, err := plan.MarshalPlan(root); err == nil {
		result.PlanHash = cache.Hash(data)
	} else {
		logger.Debug("plan hash unavailable", "err", err)
	}

	logger.Info("built plan",
		"nodes", result.Stats.NodeCount,
		"leaves", result.Stats.LeafCount,
		"duration", result.Stats.BuildTime)

	// Structure report reads only intrinsic leaf geometry
	structStart := time.Now()
	data, err := plan.RenderReport(root, plan.ReportStructure)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", plan.ReportStructure, err)
	}
	result.Reports[plan.ReportStructure] = data
	structTime := time.Since(structStart)

	// Stage 2: Layout
	layoutStart := time.Now()
	root, layoutHit, err := r.LayoutWithCacheInfo(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Root = root
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	w, h := root.Size()
	logger.Info("computed layout",
		"width", w,
		"height", h,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Emit
	emitStart := time.Now()
	for _, kind := range []plan.Report{plan.ReportDimensions, plan.ReportCoordinates} {
		data, err := plan.RenderReport(root, kind)
		if err != nil {
			return nil, fmt.Errorf("report %s: %w", kind, err)
		}
		result.Reports[kind] = data
	}

	for _, format := range opts.Formats {
		data, err := r.RenderArtifact(ctx, root, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	result.Stats.EmitTime = structTime + time.Since(emitStart)

	logger.Info("emitted outputs",
		"reports", len(result.Reports),
		"artifacts", len(result.Artifacts),
		"duration", result.Stats.EmitTime)

	return result, nil
}

// BuildWithCacheInfo reconstructs the slicing tree with caching and returns
// cache hit info. The cache key is the hash of the raw token input.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, input []byte, opts Options) (plan.Node, bool, error) {
	cacheKey := r.Keyer.PlanKey(cache.Hash(input))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if root, err := plan.UnmarshalPlan(data); err == nil {
				return root, true, nil
			}
		}
	}

	root, err := plan.Build(bytes.NewReader(input))
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		if data, err := plan.MarshalPlan(root); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan)
		}
	}

	return root, false, nil
}

// Build is a convenience wrapper that discards the cache hit info.
func (r *Runner) Build(ctx context.Context, input []byte, opts Options) (plan.Node, error) {
	root, _, err := r.BuildWithCacheInfo(ctx, input, opts)
	return root, err
}

// LayoutWithCacheInfo measures and places the tree with caching and returns
// cache hit info. On a cache hit the returned tree is the cached annotated
// plan; otherwise the passes run in place on root and root is returned.
//
// Measure completes for the whole tree before Place starts: placing a cut's
// children reads the computed dimensions of sibling subtrees.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, root plan.Node, opts Options) (plan.Node, bool, error) {
	planData, err := plan.MarshalPlan(root)
	if err != nil {
		return nil, false, fmt.Errorf("serialize plan for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(planData))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := plan.UnmarshalPlan(data); err == nil {
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}

	plan.Measure(root)
	plan.Place(root)

	if !opts.Refresh {
		if data, err := plan.MarshalPlan(root); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		}
	}

	return root, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, root plan.Node, opts Options) (plan.Node, error) {
	root, _, err := r.LayoutWithCacheInfo(ctx, root, opts)
	return root, err
}

// RenderArtifact produces a single render artifact from a measured and
// placed tree, with caching keyed by the annotated plan hash plus the
// render options.
func (r *Runner) RenderArtifact(ctx context.Context, root plan.Node, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	layoutData, err := plan.MarshalPlan(root)
	if err != nil {
		return nil, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	keyOpts := cache.ArtifactKeyOpts{Format: format, Scale: opts.Scale}
	cacheKey := r.Keyer.ArtifactKey(cache.Hash(layoutData), keyOpts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			return data, nil
		}
	}

	var data []byte
	switch format {
	case FormatSVG:
		data = render.FloorplanSVG(root, render.WithScale(opts.Scale))
	case FormatJSON:
		data, err = plan.MarshalPlan(root)
	case FormatDOT:
		data = []byte(render.ToDOT(root))
	case FormatGraphSVG:
		data, err = render.GraphSVG(ctx, render.ToDOT(root))
	case FormatGraphPNG:
		data, err = render.GraphPNG(ctx, render.ToDOT(root))
	}
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
