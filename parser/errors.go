package parser

import (
	"strings"

	err "github.com/go-dsn/dsn/errors"
)

const (
	SyntaxError = iota + err.SyntaxErrors
	UnknownRuleError
)

func syntaxError(pos int, expected []string) *err.Error {
	return err.FormatPos(pos, expected, SyntaxError,
		"syntax error at position %d: expected one of %s", pos, strings.Join(expected, ", "))
}

func unknownRuleError(name string) *err.Error {
	return err.Format(UnknownRuleError, "unknown rule %q", name)
}
