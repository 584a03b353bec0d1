package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"eidos/internal/diag"
	"eidos/internal/diagfmt"
	"eidos/internal/driver"
	"eidos/internal/observ"
	"eidos/internal/trace"
)

type checkFlags struct {
	catalogs         []string
	jobs             int
	emit             bool
	emitDir          string
	format           string
	ui               string
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	fullPath         bool
}

func newCheckCmd() *cobra.Command {
	var f checkFlags
	cmd := &cobra.Command{
		Use:   "check [flags] [dump|directory]...",
		Short: "Analyze and type-check program dumps",
		Long: `Run name resolution and type checking on program dumps (*` + driver.DumpExt + `).
Directories are searched recursively. Without arguments the units listed in
[check].units of the nearest ` + driver.ManifestName + ` are checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, f)
		},
	}
	cmd.Flags().StringSliceVar(&f.catalogs, "catalog", nil, "extra library catalog (.toml|.yaml), repeatable")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "max units checked in parallel (0=auto)")
	cmd.Flags().BoolVar(&f.emit, "emit", false, "write annotated dumps (*.checked"+driver.DumpExt+")")
	cmd.Flags().StringVar(&f.emitDir, "emit-dir", "", "directory for annotated dumps (default: next to each unit)")
	cmd.Flags().StringVar(&f.format, "format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().StringVar(&f.ui, "ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().BoolVar(&f.noWarnings, "no-warnings", false, "skip unused and unreachable warnings")
	cmd.Flags().BoolVar(&f.warningsAsErrors, "warnings-as-errors", false, "fail when any warning is reported")
	cmd.Flags().BoolVar(&f.withNotes, "with-notes", false, "include diagnostic notes in output")
	cmd.Flags().BoolVar(&f.fullPath, "fullpath", false, "emit absolute file paths in output")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string, f checkFlags) error {
	switch f.format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format %q (must be pretty, short or json)", f.format)
	}
	if f.noWarnings && f.warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	mode, err := readUIMode(f.ui)
	if err != nil {
		return err
	}
	root := cmd.Root().PersistentFlags()
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := root.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := root.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	out := cmd.OutOrStdout()
	color, err := useColor(colorFlag, out)
	if err != nil {
		return err
	}

	manifest, _, err := driver.LoadManifest(".")
	if err != nil {
		return err
	}
	catalogs := f.catalogs
	if manifest != nil {
		cfg := manifest.Config.Check
		catalogs = append(manifest.CatalogPaths(), catalogs...)
		if !root.Changed("max-diagnostics") && cfg.MaxDiagnostics > 0 {
			maxDiagnostics = cfg.MaxDiagnostics
		}
		if !cmd.Flags().Changed("jobs") && cfg.Jobs > 0 {
			f.jobs = cfg.Jobs
		}
		if !cmd.Flags().Changed("no-warnings") && cfg.Warnings != nil {
			f.noWarnings = !*cfg.Warnings
		}
		if len(args) == 0 {
			args = manifest.UnitPaths()
		}
	}
	if len(args) == 0 {
		return fmt.Errorf("no units to check\nplease pass dumps or directories, e.g.:\n  eidos check build/ast")
	}

	catalog, err := driver.LoadCatalog(catalogs)
	if err != nil {
		return err
	}
	units, err := driver.CollectUnits(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	tracer := trace.FromContext(ctx)
	timer := observ.NewTimer()
	opts := driver.Options{
		Catalog:        catalog,
		Tracer:         tracer,
		Timer:          timer,
		Jobs:           f.jobs,
		MaxDiagnostics: maxDiagnostics,
		NoWarnings:     f.noWarnings,
		Emit:           f.emit,
		EmitDir:        f.emitDir,
	}

	var results []*driver.UnitResult
	if shouldUseTUI(mode, out, f.format) && len(units) > 0 {
		results, err = runCheckWithUI(ctx, "checking", units, opts)
	} else {
		results, err = driver.CheckUnits(ctx, units, opts)
	}
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if f.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	base, _ := os.Getwd()
	if err := report(out, results, f, color, pathMode, base); err != nil {
		return err
	}

	var counts diagfmt.Counts
	failed := 0
	for _, res := range results {
		counts.Add(res.Bag)
		if res.Err != nil {
			failed++
		}
	}
	if f.format != "json" {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d unit(s): %s\n", len(results), counts)
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if failed > 0 || (f.warningsAsErrors && counts.Warnings > 0) {
		dumpRing(cmd, tracer)
		return errCheckFailed
	}
	return nil
}

func report(out io.Writer, results []*driver.UnitResult, f checkFlags, color bool, pathMode diagfmt.PathMode, base string) error {
	switch f.format {
	case "json":
		units := make([]diagfmt.Unit, 0, len(results))
		for _, res := range results {
			units = append(units, diagfmt.Unit{Path: res.Path, OK: res.Err == nil, Bag: res.Bag})
		}
		return diagfmt.JSON(out, units, diagfmt.JSONOpts{PathMode: pathMode, BaseDir: base, IncludeNotes: f.withNotes})
	case "short":
		var all []diag.Diagnostic
		for _, res := range results {
			all = append(all, res.Bag.Items()...)
		}
		if text := diag.FormatShortDiagnostics(all, f.withNotes); text != "" {
			_, err := fmt.Fprintln(out, text)
			return err
		}
		return nil
	default:
		for _, res := range results {
			res.Bag.Sort()
			header := res.Path
			if res.Emitted != "" {
				header += " -> " + res.Emitted
			}
			if res.Bag.Len() == 0 {
				continue
			}
			err := diagfmt.Pretty(out, res.Bag, diagfmt.PrettyOpts{
				Color:     color,
				PathMode:  pathMode,
				BaseDir:   base,
				ShowNotes: f.withNotes,
				Header:    strings.TrimSpace(header),
			})
			if err != nil {
				return err
			}
		}
		return nil
	}
}
