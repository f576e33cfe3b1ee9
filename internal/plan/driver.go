package plan

import (
	"context"
	"runtime"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"intellenum-generator/internal/analyze"
	"intellenum-generator/internal/config"
	"intellenum-generator/internal/discover"
	"intellenum-generator/internal/errs"
	"intellenum-generator/internal/logger"
	"intellenum-generator/internal/validate"
)

// Options configures a Driver.
type Options struct {
	// Jobs bounds the number of candidates built at once. Zero means
	// GOMAXPROCS.
	Jobs int
	// DefaultsFile is appended to the source declarations when set.
	DefaultsFile *config.DefaultsFile
	Logger       *zap.Logger
}

// Driver runs generation passes. Between passes it keeps the extracted
// candidates and the work items of the previous pass, so that unchanged
// candidates are not rebuilt. A Driver must not run two passes at once.
type Driver struct {
	opts Options
	log  *zap.Logger
	memo *discover.Memo

	mu       sync.Mutex
	previous map[analyze.DeclID]*WorkItem
}

// NewDriver creates a driver.
func NewDriver(opts Options) *Driver {
	return &Driver{
		opts:     opts,
		log:      logger.OrNop(opts.Logger),
		memo:     discover.NewMemo(),
		previous: make(map[analyze.DeclID]*WorkItem),
	}
}

// Run performs one generation pass over oracle. When ctx is cancelled,
// candidates that have not started are abandoned; the returned result holds
// the items finished so far together with the context error.
func (d *Driver) Run(ctx context.Context, oracle analyze.Oracle) (*Result, error) {
	decls := config.WithDefaultsFile(oracle.Decls(), d.opts.DefaultsFile)

	res := &Result{}
	res.Defaults, res.Diagnostics = config.ResolveDefaults(decls, oracle)

	var candidates []*discover.Candidate
	for _, decl := range decls {
		if c, ok := d.memo.Extract(decl, oracle); ok {
			candidates = append(candidates, c)
		}
	}

	d.log.Debug("candidates extracted",
		zap.Int("declarations", len(decls)),
		zap.Int("candidates", len(candidates)),
		zap.Bool("defaults", res.Defaults != nil),
	)

	pass := validate.NewPass(candidates)

	jobs := d.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	d.mu.Lock()
	previous := d.previous
	d.mu.Unlock()

	type outcome struct {
		item   *WorkItem
		fault  error
		reused bool
	}

	outcomes := make([]outcome, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(candidates))))

	for i, c := range candidates {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = outcome{fault: errs.FromPanic(r, c.ID())}
				}
			}()

			if prev, ok := previous[c.ID()]; ok {
				hash, herr := InputHash(c, res.Defaults, oracle, pass)
				if herr == nil && hash == prev.Hash {
					outcomes[i] = outcome{item: prev, reused: true}
					return nil
				}
			}

			item, ferr := BuildWorkItem(c, res.Defaults, oracle, pass)
			outcomes[i] = outcome{item: item, fault: ferr}

			return nil
		})
	}

	runErr := g.Wait()

	next := make(map[analyze.DeclID]*WorkItem, len(candidates))
	for i, o := range outcomes {
		key := candidates[i].ID()

		switch {
		case o.fault != nil:
			d.log.Warn("candidate build failed", zap.Stringer("candidate", key), zap.Error(o.fault))
			res.Faults = append(res.Faults, Fault{Key: key, Err: o.fault})
		case o.item != nil:
			res.Items = append(res.Items, o.item)
			next[key] = o.item

			if o.reused {
				res.Reused++
			}
		}
	}

	slices.SortFunc(res.Items, func(a, b *WorkItem) int { return strings.Compare(string(a.Key), string(b.Key)) })
	slices.SortFunc(res.Faults, func(a, b Fault) int { return strings.Compare(string(a.Key), string(b.Key)) })

	// Keep the items of candidates abandoned by a cancelled pass.
	if runErr != nil {
		for key, item := range previous {
			if _, ok := next[key]; !ok {
				next[key] = item
			}
		}
	}

	d.mu.Lock()
	d.previous = next
	d.mu.Unlock()

	d.log.Info("generation pass finished",
		zap.Int("items", len(res.Items)),
		zap.Int("reused", res.Reused),
		zap.Int("faults", len(res.Faults)),
		zap.Int("diagnostics", len(res.AllDiagnostics())),
	)

	return res, runErr
}
