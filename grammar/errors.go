package grammar

import (
	"strings"

	err "github.com/go-dsn/dsn/errors"
)

const (
	RuleDefinedError = iota + err.GrammarErrors
	UnknownRuleError
	NoRootRuleError
)

func defRuleError(name string) *err.Error {
	return err.Format(RuleDefinedError, "rule %q already defined", name)
}

func unknownRulesError(names []string) *err.Error {
	return err.Format(UnknownRuleError, "undefined rules: "+strings.Join(names, ", "))
}

func noRootRuleError(name string) *err.Error {
	return err.Format(NoRootRuleError, "root rule %q not defined", name)
}
