package batch

import (
	"context"
	"log/slog"
	"time"

	"movex/internal/executor"
	"movex/internal/plan"
)

// Request is one batch run: the sources to process and the shared settings
// applied to each.
type Request struct {
	Sources   []string
	Target    Target
	Move      bool
	Backup    bool
	Overwrite bool
	Options   plan.Options
}

// Failure records one source that could not be processed.
type Failure struct {
	Source string
	Err    error
}

// Result summarizes a batch run. Failures preserve source order.
type Result struct {
	Total     int
	Succeeded int
	Failed    int
	Failures  []Failure
}

// Runner executes batch requests one source at a time. Per-source errors are
// collected into the result; only context cancellation stops the run early.
type Runner struct {
	exec      *executor.Executor
	log       *slog.Logger
	afterEach func(p *plan.Plan, source string, err error, elapsed time.Duration)
}

// NewRunner creates a runner executing through exec.
func NewRunner(exec *executor.Executor, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{exec: exec, log: log}
}

// OnResult registers a hook called after every source, successful or not.
// The plan is nil when planning itself failed.
func (r *Runner) OnResult(fn func(p *plan.Plan, source string, err error, elapsed time.Duration)) {
	r.afterEach = fn
}

// Run processes req.Sources in order.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{Total: len(req.Sources)}

	for _, source := range req.Sources {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		start := time.Now()
		p, err := r.runOne(ctx, source, req)
		if r.afterEach != nil {
			r.afterEach(p, source, err, time.Since(start))
		}
		if err != nil {
			res.Failed++
			res.Failures = append(res.Failures, Failure{Source: source, Err: err})
			r.log.Warn("batch item failed", "source", source, "err", err)
			continue
		}
		res.Succeeded++
	}
	return res, nil
}

func (r *Runner) runOne(ctx context.Context, source string, req Request) (*plan.Plan, error) {
	dest := req.Target.DestForSource(source)
	p, err := plan.Build(source, dest, req.Move, req.Backup, req.Options)
	if err != nil {
		return nil, err
	}
	return p, r.exec.Execute(ctx, p, req.Overwrite)
}
