package fuzztests

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const seedLimit = 64 << 10

// builtinSeeds run even when testdata and docs are missing.
var builtinSeeds = []string{
	"",
	"component main() { Text(\"hi\") }\n",
	"component row(a, b,) { Cell(a,) Cell(b) }",
	"component x(",
	"view main() {}",
}

// addCorpusSeeds feeds testdata/**/*.decay and every ```decay block of
// docs/LANGUAGE.md into f.
func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	for _, src := range testdataSeeds(filepath.Join("..", "..", "testdata")) {
		f.Add(src)
	}
	for _, src := range markdownSeeds(filepath.Join("..", "..", "docs", "LANGUAGE.md")) {
		f.Add(src)
	}
}

func testdataSeeds(root string) [][]byte {
	var out [][]byte
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".decay" {
			return nil
		}
		// #nosec G304 -- walk of the repository testdata tree
		if src, err := os.ReadFile(path); err == nil {
			out = append(out, truncated(src))
		}
		return nil
	})
	return out
}

func markdownSeeds(path string) [][]byte {
	// #nosec G304 -- fixed repository path
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var (
		out   [][]byte
		block bytes.Buffer
		open  bool
	)
	sc := bufio.NewScanner(bytes.NewReader(doc))
	for sc.Scan() {
		fence := strings.TrimSpace(sc.Text())
		switch {
		case !open && strings.HasPrefix(fence, "```decay"):
			open = true
			block.Reset()
		case open && strings.HasPrefix(fence, "```"):
			open = false
			if block.Len() > 0 {
				out = append(out, truncated(bytes.TrimSuffix(block.Bytes(), []byte{'\n'})))
			}
		case open:
			// отступы внутри блока сохраняем
			block.WriteString(sc.Text())
			block.WriteByte('\n')
		}
	}
	return out
}

// truncated copies at most seedLimit bytes of src.
func truncated(src []byte) []byte {
	return bytes.Clone(src[:min(len(src), seedLimit)])
}
