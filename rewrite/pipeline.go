package rewrite

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pipeline applies an ordered list of recipes to source files.
type Pipeline struct {
	concurrency int
	metrics     *Metrics
}

type PipelineOption func(*Pipeline)

// WithConcurrency bounds the number of units processed at once by RunAll.
func WithConcurrency(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

func WithMetrics(m *Metrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{concurrency: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Unit is one input to RunAll. Units whose Err is set failed to parse and
// are reported without running any recipe.
type Unit struct {
	Path   string
	Source SourceFile
	Err    error
}

// Run applies recipes to unit in order. Composite recipes are expanded.
// Invalid recipes are skipped and reported; an internal error leaves the
// unit unchanged.
func (p *Pipeline) Run(unit SourceFile, recipes ...Recipe) *Result {
	result := &Result{Path: unit.SourcePath(), Original: unit, Fixed: unit}
	file := unit
	for _, r := range Flatten(recipes...) {
		outcome, next, warnings, err := p.apply(file, r)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Warnings = append(result.Warnings, warnings...)
		if err != nil {
			log.Error("recipe failed", "path", result.Path, "error", err.Error())
			result.Err = err
			result.Fixed = unit
			return result
		}
		file = next
	}
	result.Fixed = file
	return result
}

func (p *Pipeline) apply(file SourceFile, r Recipe) (outcome Outcome, next SourceFile, warnings []error, err error) {
	start := time.Now()
	outcome = Outcome{Recipe: r.Name()}
	defer func() {
		outcome.Duration = time.Since(start)
		p.metrics.observe(outcome)
	}()

	if v := r.Validate(); !v.IsValid() {
		outcome.Status = StatusInvalid
		outcome.Failures = v.Failures()
		log.Warning("skipping invalid recipe", "path", file.SourcePath(), "recipe", r.Name(), "error", v.Err().Error())
		return outcome, file, nil, nil
	}

	ctx := NewContext(r.Name(), file.SourcePath())
	defer func() {
		if rec := recover(); rec != nil {
			outcome.Status = StatusFailed
			next = file
			err = newInternalError(file.SourcePath(), r.Name(), rec)
		}
	}()

	next, err = r.Visitor().Visit(file, ctx)
	if err == nil {
		next, err = ctx.drain(next)
	}
	warnings = ctx.Warnings()
	if err != nil {
		outcome.Status = StatusFailed
		var ie *InternalError
		if !errors.As(err, &ie) {
			err = newInternalError(file.SourcePath(), r.Name(), err)
		}
		return outcome, file, warnings, err
	}

	outcome.Found = ctx.FoundIDs()
	outcome.Touched = ctx.TouchedIDs()
	outcome.Status = StatusUnchanged
	if next != file && next.Print() != file.Print() {
		outcome.Status = StatusApplied
	}
	log.Debug("recipe finished", "path", file.SourcePath(), "recipe", r.Name(), "status", string(outcome.Status), "touched", len(outcome.Touched))
	return outcome, next, warnings, nil
}

// RunAll processes units concurrently. Results are returned in input order.
// Cancelling ctx stops units that have not started yet.
func (p *Pipeline) RunAll(ctx context.Context, units []Unit, recipes ...Recipe) ([]*Result, error) {
	results := make([]*Result, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, u := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if u.Err != nil || u.Source == nil {
				results[i] = &Result{Path: u.Path, Err: u.Err}
				return nil
			}
			results[i] = p.Run(u.Source, recipes...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
