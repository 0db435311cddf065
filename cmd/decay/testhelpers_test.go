package main

import (
	"context"
	"testing"

	"decay/internal/driver"
)

func parseForTest(t *testing.T, path string) *driver.ParseResult {
	t.Helper()
	res, err := driver.Parse(context.Background(), path, driver.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return res
}
