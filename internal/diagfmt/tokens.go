package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"decay/internal/token"
)

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-11s %-20q at %d:%d-%d\n",
			i+1, tok.Kind.String(), tok.Text, tok.Line, tok.StartCol, tok.EndCol); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	if tokens == nil {
		tokens = []token.Token{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokens)
}
