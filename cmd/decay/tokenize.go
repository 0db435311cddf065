package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"decay/internal/diagfmt"
	"decay/internal/driver"
	"decay/internal/observ"
	"decay/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.decay",
	Short: "Tokenize a decay source file",
	Long:  `Tokenize breaks a decay source file into tokens and prints kind, text and position of each`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

var tokenPrinters = map[string]func(io.Writer, []token.Token) error{
	"pretty": diagfmt.FormatTokensPretty,
	"json":   diagfmt.FormatTokensJSON,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	printTokens, ok := tokenPrinters[format]
	if !ok {
		return fmt.Errorf("unknown format: %s", format)
	}
	flags, err := readCommonFlags(cmd)
	if err != nil {
		return err
	}

	var timer *observ.Timer
	if flags.timings {
		timer = observ.NewTimer()
		defer func() { fmt.Fprint(os.Stderr, timer.Summary()) }()
	}

	var res *driver.TokenizeResult
	if err := timer.Measure("tokenize", func() (err error) {
		res, err = driver.Tokenize(cmd.Context(), args[0], flags.maxDiagnostics)
		return err
	}); err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// диагностика в stderr, токены в stdout
	if err := printDiagnostics(os.Stderr, res.Bag, res.FileSet, flags); err != nil {
		return err
	}
	if err := printTokens(os.Stdout, res.Tokens); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errReported
	}
	return nil
}
