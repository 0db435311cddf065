package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"decay/internal/diag"
	"decay/internal/diagfmt"
	"decay/internal/source"
)

// commonFlags are the persistent flags every command reads.
type commonFlags struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
}

func readCommonFlags(cmd *cobra.Command) (commonFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var out commonFlags

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return out, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		out.color = true
	case "off":
		out.color = false
	case "auto":
		out.color = isTerminal(os.Stderr)
	default:
		return out, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if out.quiet, err = flags.GetBool("quiet"); err != nil {
		return out, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if out.timings, err = flags.GetBool("timings"); err != nil {
		return out, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if out.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return out, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if out.diagFormat, err = flags.GetString("diag-format"); err != nil {
		return out, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	out.diagFormat = strings.ToLower(out.diagFormat)
	switch out.diagFormat {
	case "pretty", "short", "json":
	default:
		return out, fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", out.diagFormat)
	}
	return out, nil
}

// printDiagnostics renders bag to w. With --quiet only errors are shown.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, flags commonFlags) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	if flags.quiet && !bag.HasErrors() {
		return nil
	}
	switch flags.diagFormat {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	case "short":
		_, err := io.WriteString(w, diag.Compact(bag.Items(), fs, true)+"\n")
		return err
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     flags.color,
			Context:   2,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
		})
		return nil
	}
}
