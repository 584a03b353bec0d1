// Package driver runs the semantic passes over program units: one in-memory
// program, or many dumps checked concurrently.
package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"eidos/internal/ast"
	"eidos/internal/diag"
	"eidos/internal/dsl"
	"eidos/internal/observ"
	"eidos/internal/sema"
	"eidos/internal/stdlib"
	"eidos/internal/trace"
)

// Options configure a driver run. The zero value checks with the built-in
// catalog, the default extension registry, GOMAXPROCS jobs and no limit on
// diagnostics.
type Options struct {
	Catalog        *stdlib.Catalog
	Extensions     *dsl.Registry
	Tracer         trace.Tracer
	Timer          *observ.Timer
	Progress       ProgressSink
	Jobs           int
	MaxDiagnostics int
	NoWarnings     bool
	// EmitDir receives annotated dumps when Emit is set; "" writes next to
	// each unit.
	Emit    bool
	EmitDir string
}

func (o Options) withDefaults() Options {
	if o.Catalog == nil {
		o.Catalog = stdlib.Builtin()
	}
	if o.Extensions == nil {
		o.Extensions = dsl.Default
	}
	if o.Tracer == nil {
		o.Tracer = trace.Nop
	}
	if o.Progress == nil {
		o.Progress = nopSink{}
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	return o
}

func (o Options) sema(parent uint64) sema.Options {
	return sema.Options{
		Catalog:    o.Catalog,
		Extensions: o.Extensions,
		Tracer:     o.Tracer,
		ParentSpan: parent,
		NoWarnings: o.NoWarnings,
	}
}

// UnitResult is the outcome of checking one unit.
type UnitResult struct {
	Path     string
	Analysis *sema.AnalyzeResult
	Check    *sema.CheckResult
	// Bag holds the failure (if any) followed by the analyzer warnings.
	Bag *diag.Bag
	// Err is the error that stopped the unit: load, analysis, check or emit.
	Err     error
	Emitted string
}

// Annotated returns the checked program, or nil when checking failed.
func (r *UnitResult) Annotated() *ast.Program {
	if r == nil || r.Check == nil {
		return nil
	}
	return r.Check.Program
}

func (r *UnitResult) status() string {
	if r.Err != nil {
		return "error"
	}
	return "ok"
}

// CheckProgram runs analysis and type checking on prog. prog is not
// modified. Failures are reported in the result, never as a panic.
func CheckProgram(ctx context.Context, path string, prog *ast.Program, opts Options) *UnitResult {
	opts = opts.withDefaults()
	return checkProgram(ctx, path, prog, opts)
}

func checkProgram(ctx context.Context, path string, prog *ast.Program, opts Options) *UnitResult {
	res := &UnitResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	span := trace.Begin(opts.Tracer, trace.ScopeModule, "unit:"+path, trace.CurrentSpan(ctx))
	defer func() { span.End(res.status()) }()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	semaOpts := opts.sema(span.ID())

	start := time.Now()
	emitStage(opts.Progress, path, StageAnalyze, StatusWorking, nil, 0)
	done := opts.Timer.Track("analyze")
	analysis, err := sema.Analyze(prog, semaOpts)
	done("")
	if err != nil {
		return res.fail(opts.Progress, StageAnalyze, err, time.Since(start))
	}
	res.Analysis = analysis

	emitStage(opts.Progress, path, StageCheck, StatusWorking, nil, time.Since(start))
	done = opts.Timer.Track("check")
	checked, err := sema.Check(analysis.Program, semaOpts)
	done("")
	if err != nil {
		res.addWarnings()
		return res.fail(opts.Progress, StageCheck, err, time.Since(start))
	}
	res.Check = checked
	res.addWarnings()
	span.WithExtra("warnings", fmt.Sprint(len(analysis.Warnings)))

	emitStage(opts.Progress, path, StageCheck, StatusDone, nil, time.Since(start))
	return res
}

func (r *UnitResult) fail(sink ProgressSink, stage Stage, err error, elapsed time.Duration) *UnitResult {
	r.Err = err
	// the error goes first so a bag limit never drops it in favor of warnings
	items := append([]diag.Diagnostic(nil), r.Bag.Items()...)
	r.Bag = diag.NewBag(r.Bag.Cap())
	r.Bag.AddError(err)
	for _, d := range items {
		r.Bag.Add(d)
	}
	emitStage(sink, r.Path, stage, StatusError, err, elapsed)
	return r
}

func (r *UnitResult) addWarnings() {
	if r.Analysis == nil {
		return
	}
	for _, w := range r.Analysis.Warnings {
		if !r.Bag.Add(w) {
			return
		}
	}
}

// CheckUnits loads and checks every dump in paths with at most opts.Jobs
// units in flight. Results are in the order of paths. The returned error is
// only set when ctx is cancelled; per-unit failures live in the results.
func CheckUnits(ctx context.Context, paths []string, opts Options) ([]*UnitResult, error) {
	opts = opts.withDefaults()
	span := trace.Begin(opts.Tracer, trace.ScopeDriver, "check", trace.CurrentSpan(ctx))
	span.WithExtra("units", fmt.Sprint(len(paths)))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	results := make([]*UnitResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	for _, p := range paths {
		emitStage(opts.Progress, p, StageLoad, StatusQueued, nil, 0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func checkFile(ctx context.Context, path string, opts Options) *UnitResult {
	start := time.Now()
	emitStage(opts.Progress, path, StageLoad, StatusWorking, nil, 0)
	done := opts.Timer.Track("load")
	prog, err := LoadProgram(path)
	done("")
	if err != nil {
		res := &UnitResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
		return res.fail(opts.Progress, StageLoad, diag.Internal(diag.InternalBadInput, err, "load failed"), time.Since(start))
	}

	res := checkProgram(ctx, path, prog, opts)
	if res.Err != nil || !opts.Emit {
		return res
	}

	emitStage(opts.Progress, path, StageEmit, StatusWorking, nil, time.Since(start))
	done = opts.Timer.Track("emit")
	out := EmitPath(path, opts.EmitDir)
	err = writeAnnotated(out, res)
	done("")
	if err != nil {
		return res.fail(opts.Progress, StageEmit, diag.Internal(diag.InternalInfo, err, "emit failed"), time.Since(start))
	}
	res.Emitted = out
	emitStage(opts.Progress, path, StageEmit, StatusDone, nil, time.Since(start))
	return res
}

// Encode writes the annotated program of res as a dump with type labels.
func Encode(w io.Writer, res *UnitResult) error {
	prog := res.Annotated()
	if prog == nil {
		return fmt.Errorf("%s: nothing to emit, check failed", res.Path)
	}
	return ast.Encode(w, prog, res.Check.Env)
}

func writeAnnotated(path string, res *UnitResult) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	w := bufio.NewWriter(f)
	if err := Encode(w, res); err != nil {
		return err
	}
	return w.Flush()
}
