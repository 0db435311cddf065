package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"decay/internal/driver"
	"decay/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Format decay source files",
	Long:  `Fmt rewrites decay files in canonical layout. Without arguments it formats [project].sources from decay.toml`,
	RunE:  runFmt,
}

func init() {
	registerFmtFlags(fmtCmd)
}

func registerFmtFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "check if files are properly formatted")
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	cmd.Flags().Int("indent", 4, "spaces per indentation level")
	cmd.Flags().Bool("tabs", false, "indent with tabs")
}

type fmtSettings struct {
	check   bool
	output  string
	stdout  bool
	options format.Options
	paths   []string
}

func resolveFmtSettings(cmd *cobra.Command, args []string, manifest *projectManifest) (fmtSettings, error) {
	var s fmtSettings
	var err error

	if s.check, err = cmd.Flags().GetBool("check"); err != nil {
		return s, err
	}
	if s.output, err = cmd.Flags().GetString("format"); err != nil {
		return s, err
	}
	if s.stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return s, err
	}
	if s.stdout && s.check {
		return s, errors.New("fmt: --stdout cannot be used with --check")
	}
	if s.stdout && s.output != "text" {
		return s, errors.New("fmt: --stdout is only supported with text output")
	}
	if s.output != "text" && s.output != "json" {
		return s, fmt.Errorf("fmt: unsupported output format %q", s.output)
	}

	if s.options.IndentWidth, err = cmd.Flags().GetInt("indent"); err != nil {
		return s, err
	}
	if !cmd.Flags().Changed("indent") && manifest.defines("fmt", "indent_width") {
		s.options.IndentWidth = manifest.Config.Fmt.IndentWidth
	}
	if s.options.UseTabs, err = cmd.Flags().GetBool("tabs"); err != nil {
		return s, err
	}
	if !cmd.Flags().Changed("tabs") && manifest.defines("fmt", "use_tabs") {
		s.options.UseTabs = manifest.Config.Fmt.UseTabs
	}

	switch {
	case len(args) > 0:
		s.paths = args
	case manifest != nil:
		dir, err := manifest.sourcesDir()
		if err != nil {
			return s, err
		}
		s.paths = []string{dir}
	default:
		return s, errors.New(noManifestMessage)
	}
	return s, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	flags, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	s, err := resolveFmtSettings(cmd, args, manifest)
	if err != nil {
		return err
	}

	results, err := driver.FormatPaths(cmd.Context(), s.paths, driver.FormatOptions{
		Check:          s.check,
		MaxDiagnostics: flags.maxDiagnostics,
		Options:        s.options,
		Stdout:         s.stdout,
	})
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			if res.Bag != nil && res.Bag.Len() > 0 {
				if err := printDiagnostics(os.Stderr, res.Bag, res.FileSet, flags); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(os.Stderr, "fmt: %v\n", res.Err)
			}
		}
		hasChanges = hasChanges || res.Changed
	}

	switch {
	case s.stdout:
		for _, res := range results {
			if res.Err == nil {
				_, _ = os.Stdout.Write(res.Formatted)
			}
		}
	case s.output == "json":
		if err := renderFmtJSON(os.Stdout, results, s.check); err != nil {
			return err
		}
	default:
		renderFmtText(os.Stdout, results, s.check, flags.quiet)
	}

	if hasErrors {
		return errReported
	}
	if s.check && hasChanges {
		return errors.New("fmt: formatting changes required")
	}
	return nil
}

func renderFmtText(w io.Writer, results []driver.FormatResult, check, quiet bool) {
	if quiet {
		return
	}
	for _, res := range results {
		if res.Err != nil || !res.Changed {
			continue
		}
		if check {
			fmt.Fprintln(w, res.Path)
		} else {
			fmt.Fprintf(w, "reformatted %s\n", res.Path)
		}
	}
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
