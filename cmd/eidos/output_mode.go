package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI decides on the progress view. Auto needs a terminal and
// pretty output: JSON on stdout must stay parseable.
func shouldUseTUI(mode uiMode, out io.Writer, format string) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return format == "pretty" && writerIsTerminal(out)
	}
}

// useColor resolves --color for out.
func useColor(flag string, out io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return writerIsTerminal(out), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", flag)
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
