package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"decay/internal/version"
)

const versionTagline = "every component fades, the tree remains"

// versionShow selects the optional build fields; an empty requested field
// prints as "unknown".
type versionShow struct {
	hash, message, date bool
}

func (s versionShow) any() bool { return s.hash || s.message || s.date }

// pick blanks fields that were not requested.
func (s versionShow) pick(info version.Info) version.Info {
	field := func(on bool, v string) string {
		switch {
		case !on:
			return ""
		case v == "":
			return "unknown"
		}
		return v
	}
	info.Commit = field(s.hash, info.Commit)
	info.Message = field(s.message, info.Message)
	info.Built = field(s.date, info.Built)
	return info
}

var versionCmd = newVersionCmd()

func newVersionCmd() *cobra.Command {
	var (
		format string
		show   versionShow
		full   bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show decay build fingerprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if full {
				show = versionShow{hash: true, message: true, date: true}
			}
			info := show.pick(version.Current())
			switch strings.ToLower(format) {
			case "json":
				return renderVersionJSON(cmd.OutOrStdout(), info)
			case "pretty":
				colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
				colored := colorFlag == "on" || colorFlag == "auto" && isTerminal(os.Stdout)
				renderVersionPretty(cmd.OutOrStdout(), info, show, colored)
				return nil
			}
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		},
	}
	f := cmd.Flags()
	f.StringVar(&format, "format", "pretty", "output format (pretty|json)")
	f.BoolVar(&show.hash, "hash", false, "include git commit hash")
	f.BoolVar(&show.message, "message", false, "include git commit message")
	f.BoolVar(&show.date, "date", false, "include build timestamp")
	f.BoolVar(&full, "full", false, "show every recorded bit of build metadata")
	return cmd
}

func renderVersionPretty(w io.Writer, info version.Info, show versionShow, colored bool) {
	v := info.Version
	if colored {
		v = info.Colored()
	}
	fmt.Fprintf(w, "decay %s: %s\n", v, versionTagline)
	rows := []struct {
		on    bool
		label string
		value string
	}{
		{show.hash, "commit: ", info.Commit},
		{show.message, "message:", info.Message},
		{show.date, "built:  ", info.Built},
	}
	for _, r := range rows {
		if r.on {
			fmt.Fprintf(w, "%s %s\n", r.label, r.value)
		}
	}
	if !show.any() {
		fmt.Fprintln(w, "set --hash, --message, --date, or --full for more build trivia")
	}
}

type versionPayload struct {
	Tool    string `json:"tool"`
	Tagline string `json:"tagline"`
	version.Info
}

func renderVersionJSON(w io.Writer, info version.Info) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{Tool: "decay", Tagline: versionTagline, Info: info})
}
