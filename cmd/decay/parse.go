package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"decay/internal/ast"
	"decay/internal/buildpipeline"
	"decay/internal/diagfmt"
	"decay/internal/driver"
	"decay/internal/observ"
	"decay/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [file.decay|directory]",
	Short: "Parse a decay source file or directory and output the AST",
	Long: `Parse analyzes a decay source file or every *.decay file in a directory and prints
the resulting component declarations. Without an argument the sources of the
nearest decay.toml are parsed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	registerParseFlags(parseCmd)
}

func registerParseFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "json", "output format (json|yaml|tree)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse parsed ASTs from the on-disk cache")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

// parseSettings are the effective options after merging flags and decay.toml.
type parseSettings struct {
	target         string
	format         diagfmt.ASTFormat
	jobs           int
	cache          bool
	maxDiagnostics int
	ui             bool
}

func resolveParseSettings(cmd *cobra.Command, args []string, manifest *projectManifest, flags commonFlags) (parseSettings, error) {
	var s parseSettings

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	if !cmd.Flags().Changed("format") && manifest.defines("build", "format") {
		formatStr = manifest.Config.Build.Format
	}
	if s.format, err = diagfmt.ParseASTFormat(formatStr); err != nil {
		return s, err
	}

	if s.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") && manifest.defines("build", "jobs") {
		s.jobs = manifest.Config.Build.Jobs
	}

	if s.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return s, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if !cmd.Flags().Changed("cache") && manifest.defines("build", "cache") {
		s.cache = manifest.Config.Build.Cache
	}

	s.maxDiagnostics = flags.maxDiagnostics
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && manifest.defines("build", "max_diagnostics") {
		s.maxDiagnostics = manifest.Config.Build.MaxDiagnostics
	}

	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = uiWanted(uiStr); err != nil {
		return s, err
	}

	switch {
	case len(args) == 1:
		s.target = args[0]
	case manifest != nil:
		if s.target, err = manifest.sourcesDir(); err != nil {
			return s, err
		}
	default:
		return s, errors.New(noManifestMessage)
	}
	return s, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	flags, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	settings, err := resolveParseSettings(cmd, args, manifest, flags)
	if err != nil {
		return err
	}

	opts := driver.ParseOptions{
		MaxDiagnostics: settings.maxDiagnostics,
		Jobs:           settings.jobs,
		Heartbeat:      heartbeatInterval(),
	}
	if flags.timings {
		opts.Timer = observ.NewTimer()
	}
	if settings.cache {
		cache, cacheErr := driver.OpenASTCache("decay")
		if cacheErr != nil {
			return cacheErr
		}
		opts.Cache = cache
	}

	// Проверяем, файл это или директория
	st, err := os.Stat(settings.target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return parseSingleFile(cmd, settings, opts, flags)
	}
	return parseDirectory(cmd, settings, opts, flags)
}

func parseSingleFile(cmd *cobra.Command, settings parseSettings, opts driver.ParseOptions, flags commonFlags) error {
	result, err := driver.Parse(cmd.Context(), settings.target, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := printDiagnostics(os.Stderr, result.Bag, result.FileSet, flags); err != nil {
		return err
	}
	if flags.timings {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}
	if result.Err != nil {
		return errReported
	}
	return diagfmt.FormatAST(os.Stdout, result.Program, settings.format)
}

func parseDirectory(cmd *cobra.Command, settings parseSettings, opts driver.ParseOptions, flags commonFlags) error {
	files, err := driver.ListSourceFiles(settings.target)
	if err != nil {
		return err
	}

	var recorder *buildpipeline.RecordingSink
	if flags.timings {
		recorder = &buildpipeline.RecordingSink{}
		opts.Progress = recorder
	}

	var (
		fs      *source.FileSet
		results []*driver.ParseResult
	)
	if len(files) > 0 && settings.ui && !flags.quiet {
		fs, results, err = runParseWithUI(cmd.Context(), "parsing "+settings.target, settings.target, files, opts)
	} else {
		fs, results, err = driver.ParseFiles(cmd.Context(), settings.target, files, opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	// Результаты уже отсортированы по пути
	failed := false
	paths := make([]string, 0, len(results))
	progs := make(map[string]*ast.Program, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		if err := printDiagnostics(os.Stderr, r.Bag, fs, flags); err != nil {
			return err
		}
		if r.Err != nil || r.Program == nil {
			failed = true
			continue
		}
		paths = append(paths, r.Path)
		progs[r.Path] = r.Program
	}

	if flags.timings {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
		printStageTimings(os.Stderr, recorder.Timings())
	}
	if err := diagfmt.FormatASTs(os.Stdout, paths, progs, settings.format); err != nil {
		return err
	}
	if failed {
		return errReported
	}
	return nil
}
