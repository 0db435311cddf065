package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"decay/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached ASTs",
	Long:  "Remove every entry of the on-disk AST cache used by parse --cache.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := driver.OpenASTCache("decay")
		if err != nil {
			return err
		}
		return runClean(cmd.OutOrStdout(), cache)
	},
}

func runClean(out io.Writer, cache *driver.ASTCache) error {
	if err := cache.Purge(); err != nil {
		return fmt.Errorf("failed to purge %q: %w", cache.Dir(), err)
	}
	_, _ = fmt.Fprintf(out, "removed %s\n", filepath.Join(cache.Dir(), "ast"))
	return nil
}
