package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mazegen/pkg/cache"
	mazeio "github.com/matzehuels/mazegen/pkg/io"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely use the same Runner with different options. Each
// run builds its own Maze.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// MazeTTL overrides cache.TTLMaze when positive.
	MazeTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, nothing is logged.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs generate → render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	genStart := time.Now()
	snap, m, hit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result := &Result{
		Maze:     m,
		Snapshot: snap,
		MazeHash: hashSnapshot(snap),
		Seed:     opts.Seed,
	}
	result.Stats.Stats = maze.Analyze(m)
	result.Stats.GenerateTime = time.Since(genStart)
	result.CacheInfo.MazeHit = hit

	r.Logger.Info("generated maze",
		"algorithm", opts.Algorithm,
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"seed", opts.Seed,
		"cached", hit,
		"duration", result.Stats.GenerateTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo restores the maze from cache or generates it and
// reports whether the cache was hit. With a cache that implements
// cache.Locker, concurrent callers for the same key wait for the first one
// instead of generating twice.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*mazeio.Snapshot, *maze.Maze, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}
	key := r.Keyer.MazeKey(opts.MazeKeyOpts())

	if !opts.Refresh {
		if snap, m, ok := r.lookupMaze(ctx, key); ok {
			return snap, m, true, nil
		}
	}

	if locker, ok := r.Cache.(cache.Locker); ok {
		unlock, err := locker.Lock(ctx, key)
		if err != nil {
			r.Logger.Warn("cache lock unavailable, generating anyway", "err", err)
		} else {
			defer func() {
				if err := unlock(); err != nil {
					r.Logger.Debug("release cache lock", "err", err)
				}
			}()
			if !opts.Refresh {
				if snap, m, ok := r.lookupMaze(ctx, key); ok {
					return snap, m, true, nil
				}
			}
		}
	}

	hooks := observability.Generation()
	hooks.OnGenerateStart(ctx, opts.Algorithm, opts.Width, opts.Height)
	start := time.Now()
	m, err := Generate(opts)
	hooks.OnGenerateComplete(ctx, opts.Algorithm, opts.Width, opts.Height, time.Since(start), err)
	if err != nil {
		return nil, nil, false, err
	}

	snap := mazeio.NewSnapshot(m, opts.Seed)
	var buf bytes.Buffer
	if err := mazeio.WriteJSON(snap, &buf); err == nil {
		r.store(ctx, "maze", key, buf.Bytes(), r.mazeTTL())
	}
	return snap, m, false, nil
}

func (r *Runner) lookupMaze(ctx context.Context, key string) (*mazeio.Snapshot, *maze.Maze, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache get failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "maze")
		return nil, nil, false
	}
	snap, err := mazeio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "maze")
		return nil, nil, false
	}
	m, err := snap.Maze()
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "maze")
		return nil, nil, false
	}
	observability.Cache().OnCacheHit(ctx, "maze")
	return snap, m, true
}

// RenderWithCacheInfo renders every requested format, reusing cached
// artifacts when all of them are present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.artifactKey(res, opts, format)
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}

	hooks := observability.Generation()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, res.Maze, res.Snapshot, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.artifactKey(res, opts, format)
		r.store(ctx, "artifact", key, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
	if err != nil {
		r.Logger.Debug("cache set failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// artifactKey addresses a rendering by wall layout. The json format embeds
// the snapshot's ID and seed, so it is keyed by snapshot instead.
func (r *Runner) artifactKey(res *Result, opts Options, format string) string {
	hash := res.MazeHash
	if format == FormatJSON {
		hash += ":" + res.Snapshot.ID.String()
	}
	return r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
}

func (r *Runner) mazeTTL() time.Duration {
	if r.MazeTTL > 0 {
		return r.MazeTTL
	}
	return cache.TTLMaze
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// hashSnapshot hashes the dimensions and wall states, which together
// determine every rendering.
func hashSnapshot(s *mazeio.Snapshot) string {
	return cache.Hash(fmt.Appendf(nil, "%dx%d:%s", s.Width, s.Height, mazeio.EncodeWalls(s.Walls)))
}
