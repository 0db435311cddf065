package lexer

import (
	"fmt"

	"fortio.org/safecast"
)

type charClass uint8

const (
	classSpace charClass = 1 << iota
	classLetter
	classDigit
)

// classes covers ASCII only; identifiers never contain other bytes.
var classes = func() (t [256]charClass) {
	for _, b := range []byte(" \t\n\r\f\v") {
		t[b] = classSpace
	}
	for b := 'a'; b <= 'z'; b++ {
		t[b] = classLetter
		t[b-'a'+'A'] = classLetter
	}
	t['_'] = classLetter
	for b := '0'; b <= '9'; b++ {
		t[b] = classDigit
	}
	return t
}()

func isSpace(b byte) bool             { return classes[b]&classSpace != 0 }
func isIdentStartByte(b byte) bool    { return classes[b]&classLetter != 0 }
func isIdentContinueByte(b byte) bool { return classes[b]&(classLetter|classDigit) != 0 }

// u32 converts a length the lexer produced; overflow means a >4GiB file.
func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("lexer: %d overflows uint32: %w", n, err))
	}
	return v
}
