package source

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize prepares raw bytes for lexing: drops a leading UTF-8 BOM and
// turns CRLF into LF (a lone CR stays). Everything else is lexed as
// written; text that is not in NFC is only flagged.
func Normalize(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	content := raw
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	if !norm.NFC.IsNormal(content) {
		flags |= FileNotNFC
	}
	return content, flags
}
