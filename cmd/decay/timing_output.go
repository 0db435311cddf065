package main

import (
	"fmt"
	"io"
	"time"

	"decay/internal/buildpipeline"
)

// printStageTimings prints per-stage wall time summed over all files.
func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	stages := []struct {
		stage buildpipeline.Stage
		label string
	}{
		{buildpipeline.StageCache, "cache"},
		{buildpipeline.StageTokenize, "tokenized"},
		{buildpipeline.StageParse, "parsed"},
	}
	for _, s := range stages {
		if !timings.Has(s.stage) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", s.label, toMillis(timings.Duration(s.stage)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
