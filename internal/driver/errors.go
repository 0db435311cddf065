package driver

import (
	"errors"
	"fmt"

	"decay/internal/diag"
	"decay/internal/parser"
	"decay/internal/source"
)

// wrapErr prefixes err with the file name.
func wrapErr(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

// reportErr converts err into a diagnostic in bag. Syntax errors keep their
// code and span; anything else becomes an I/O diagnostic without location.
func reportErr(bag *diag.Bag, err error) {
	if bag == nil || err == nil {
		return
	}
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		bag.Add(se.Diagnostic())
		return
	}
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  err.Error(),
		Primary:  source.Span{},
	})
}

// noteNotNFC adds an info diagnostic when file holds decomposed text.
// Lexemes are kept as written, so "é" and "e\u0301" are different strings.
func noteNotNFC(bag *diag.Bag, file *source.File) {
	if bag == nil || file == nil || file.Flags&source.FileNotNFC == 0 {
		return
	}
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.LexNotNFC,
		Message:  "source is not in Unicode NFC; identifiers and strings are compared as written",
		Primary:  source.Span{File: file.ID},
	})
}

// SyntaxErrorOf extracts the parser error from a driver error.
func SyntaxErrorOf(err error) (*parser.SyntaxError, bool) {
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
