package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"eidos/internal/driver"
	"eidos/internal/stdlib"
	"eidos/internal/ui"
)

type catalogFunctionJSON struct {
	Name      string `json:"name"`
	Module    string `json:"module"`
	Signature string `json:"signature"`
	Purity    string `json:"purity"`
	Doc       string `json:"doc,omitempty"`
}

type catalogTypeJSON struct {
	Name   string `json:"name"`
	Module string `json:"module"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

type catalogPayload struct {
	Functions []catalogFunctionJSON `json:"functions"`
	Types     []catalogTypeJSON     `json:"types"`
}

func newCatalogCmd() *cobra.Command {
	var (
		files   []string
		modules []string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "catalog [flags]",
		Short: "List library functions and types known to the checker",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q (must be text or json)", format)
			}
			if manifest, _, err := driver.LoadManifest("."); err != nil {
				return err
			} else if manifest != nil {
				files = append(manifest.CatalogPaths(), files...)
			}
			cat, err := driver.LoadCatalog(files)
			if err != nil {
				return err
			}
			payload, err := buildCatalogPayload(cat, modules)
			if err != nil {
				return err
			}
			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}
			styled, err := styledOutput(cmd)
			if err != nil {
				return err
			}
			return renderCatalog(cmd.OutOrStdout(), payload, styled)
		},
	}
	cmd.Flags().StringSliceVar(&files, "catalog", nil, "extra library catalog (.toml|.yaml), repeatable")
	cmd.Flags().StringSliceVar(&modules, "module", nil, "only list these modules")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json)")
	return cmd
}

func buildCatalogPayload(cat *stdlib.Catalog, modules []string) (catalogPayload, error) {
	known := cat.Modules()
	for _, m := range modules {
		if !slices.Contains(known, m) {
			return catalogPayload{}, fmt.Errorf("unknown module %q (known: %s)", m, strings.Join(known, ", "))
		}
	}
	keep := func(module string) bool {
		return len(modules) == 0 || slices.Contains(modules, module)
	}

	payload := catalogPayload{Functions: []catalogFunctionJSON{}, Types: []catalogTypeJSON{}}
	for _, fn := range cat.Functions() {
		if !keep(fn.Module) {
			continue
		}
		payload.Functions = append(payload.Functions, catalogFunctionJSON{
			Name:      fn.Name,
			Module:    fn.Module,
			Signature: fn.Signature(),
			Purity:    fn.Purity.String(),
			Doc:       fn.Doc,
		})
	}
	for _, t := range cat.Types() {
		if !keep(t.Module) {
			continue
		}
		entry := catalogTypeJSON{Name: t.Name, Module: t.Module, Kind: t.Kind.String()}
		switch t.Kind {
		case stdlib.TypeStruct:
			fields := make([]string, 0, len(t.Fields))
			for _, f := range t.Fields {
				fields = append(fields, f.Name+": "+f.Type.String())
			}
			entry.Detail = "{" + strings.Join(fields, ", ") + "}"
		case stdlib.TypeAlias:
			if t.Target != nil {
				entry.Detail = "= " + t.Target.String()
			}
		}
		payload.Types = append(payload.Types, entry)
	}
	return payload, nil
}

func renderCatalog(out io.Writer, payload catalogPayload, styled bool) error {
	width := 0
	if styled {
		width = terminalWidth(out)
	}
	rows := make([][]string, 0, len(payload.Functions))
	for _, fn := range payload.Functions {
		rows = append(rows, []string{fn.Signature, fn.Purity, fn.Doc})
	}
	if _, err := io.WriteString(out, ui.Table([]string{"FUNCTION", "PURITY", "DOC"}, rows, width, styled)); err != nil {
		return err
	}
	if len(payload.Types) == 0 {
		return nil
	}
	rows = rows[:0]
	for _, t := range payload.Types {
		name := t.Name
		if t.Module != "" {
			name = t.Module + "::" + t.Name
		}
		rows = append(rows, []string{name, t.Kind, t.Detail})
	}
	if _, err := io.WriteString(out, "\n"); err != nil {
		return err
	}
	_, err := io.WriteString(out, ui.Table([]string{"TYPE", "KIND", "DETAIL"}, rows, width, styled))
	return err
}
