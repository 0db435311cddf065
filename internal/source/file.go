package source

import (
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"
)

type FileID uint32

// FileFlags records what Normalize changed and where the bytes came from.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // не с диска: тест, stdin, fuzz
	FileHadBOM
	FileNormalizedCRLF
	FileNotNFC // содержимое не в NFC; байты не менялись
)

// File is one loaded version of a path. Content is already normalized;
// LineIdx holds the offset of every '\n'.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position. Col counts code points.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Resolve maps a byte offset to LineCol. Offsets past the end clamp to it.
func (f *File) Resolve(off uint32) LineCol {
	off = min(off, uint32(len(f.Content)))
	// число '\n' строго до off
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	lineStart := uint32(0)
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	col := utf8.RuneCount(f.Content[lineStart:off])
	return LineCol{Line: uint32(line) + 1, Col: uint32(col) + 1}
}

// Line returns the text of line n (1-based) without its '\n', or "" when
// there is no such line.
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	from := 0
	if n > 1 {
		from = int(f.LineIdx[n-2]) + 1
	}
	to := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		to = int(f.LineIdx[n-1])
	}
	if from > to {
		return ""
	}
	return string(f.Content[from:to])
}

// FormatPath renders Path for output. mode is one of absolute, relative,
// basename or auto; anything else returns Path unchanged.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		// длинные абсолютные пути режем до имени файла
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
