package lexer

import (
	"decay/internal/diag"
)

type Options struct {
	// Reporter receives LexUnknownChar when Next meets input no rule accepts.
	// может быть nil — тогда ошибка видна только через Unrecognized.
	Reporter diag.Reporter
}
