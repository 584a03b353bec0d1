package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Build metadata, overridable through -ldflags "-X eidos/internal/version.Version=...".
var (
	Version    = "0.3.0-dev"
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component highlighted.
// Pre-release suffixes stay uncolored. color.NoColor disables the escapes.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Banner is the multi-line text printed by `eidos version`.
func Banner() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "eidos %s\n", Colored())
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&sb, "commit: %s", commit)
		if GitMessage != "" {
			fmt.Fprintf(&sb, " (%s)", firstLine(GitMessage))
		}
		sb.WriteByte('\n')
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, "built:  %s\n", BuildDate)
	}
	return sb.String()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
