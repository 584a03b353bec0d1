package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"eidos/internal/dsl"
	"eidos/internal/ui"
)

type extensionJSON struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Types       []string `json:"types,omitempty"`
	Builtins    []string `json:"builtins,omitempty"`
}

func newExtensionsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "extensions",
		Short: "List embedded block extensions",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q (must be text or json)", format)
			}
			entries := describeExtensions(dsl.Default)
			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			styled, err := styledOutput(cmd)
			if err != nil {
				return err
			}
			width := 0
			if styled {
				width = terminalWidth(cmd.OutOrStdout())
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Name, strings.Join(e.Types, ", "), e.Description})
			}
			_, err = io.WriteString(cmd.OutOrStdout(), ui.Table([]string{"NAME", "TYPES", "DESCRIPTION"}, rows, width, styled))
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json)")
	return cmd
}

// describeExtensions lists reg in name order.
func describeExtensions(reg *dsl.Registry) []extensionJSON {
	out := make([]extensionJSON, 0)
	for _, name := range reg.List() {
		ext, ok := reg.Get(name)
		if !ok {
			continue
		}
		entry := extensionJSON{Name: ext.Name(), Description: ext.Description(), Types: ext.Types()}
		for _, b := range ext.Builtins() {
			params := make([]string, 0, len(b.Params))
			for _, p := range b.Params {
				params = append(params, p.String())
			}
			result := "()"
			if b.Result != nil {
				result = b.Result.String()
			}
			entry.Builtins = append(entry.Builtins, fmt.Sprintf("%s(%s) -> %s", b.Name, strings.Join(params, ", "), result))
		}
		out = append(out, entry)
	}
	return out
}

func styledOutput(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	return useColor(colorFlag, cmd.OutOrStdout())
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
