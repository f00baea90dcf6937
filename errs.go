package dsn

import (
	err "github.com/go-dsn/dsn/errors"
)

const (
	BadPortError = iota + err.DsnErrors
	BadPathError
	TrailingInputError
)

func badPortError(text string, e error) *err.Error {
	return err.Format(BadPortError, "invalid port %q: %s", text, e.Error())
}

func badPathError(text string, e error) *err.Error {
	return err.Format(BadPathError, "invalid path %q: %s", text, e.Error())
}

func trailingInputError(pos int) *err.Error {
	return err.FormatPos(pos, []string{"EOI"}, TrailingInputError,
		"unparsed input at position %d", pos)
}
