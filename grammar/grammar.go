// Package grammar defines PEG grammars as data: a named set of rules whose
// bodies are expression trees built from literals, character classes, rule
// references, sequences, ordered choices, and bounded repetitions.
// The expression tree is inert; evaluation lives in the parser package.
package grammar

// Unbounded is used as the Max of a Repeat with no upper limit.
const Unbounded = -1

// Expr is a node of a rule body. The concrete types are Literal, CharClass,
// RuleRef, Sequence, OrderedChoice, Repeat, StartOfInput, and EndOfInput.
type Expr interface {
	expr()
}

// Literal matches an exact text.
type Literal struct {
	Text string
}

// CharClass matches a single byte satisfying Match. Name identifies the
// class in diagnostics.
type CharClass struct {
	Name  string
	Match func(byte) bool
}

// RuleRef invokes another rule of the same grammar by name.
type RuleRef struct {
	Name string
}

// Sequence matches all items consecutively.
type Sequence struct {
	Items []Expr
}

// OrderedChoice tries alternatives in listed order; the first that matches
// wins and later alternatives are never considered.
type OrderedChoice struct {
	Alts []Expr
}

// Repeat greedily matches Expr between Min and Max times.
type Repeat struct {
	Expr     Expr
	Min, Max int
}

// StartOfInput matches only at offset 0 and consumes nothing.
type StartOfInput struct{}

// EndOfInput matches only at the end of input and consumes nothing.
type EndOfInput struct{}

func (*Literal) expr()       {}
func (*CharClass) expr()     {}
func (*RuleRef) expr()       {}
func (*Sequence) expr()      {}
func (*OrderedChoice) expr() {}
func (*Repeat) expr()        {}
func (*StartOfInput) expr()  {}
func (*EndOfInput) expr()    {}

// SOI and EOI are the input anchors.
var (
	SOI Expr = &StartOfInput{}
	EOI Expr = &EndOfInput{}
)

// Lit returns a literal expression.
func Lit(text string) Expr {
	return &Literal{text}
}

// Class returns a single-byte character class expression.
func Class(name string, match func(byte) bool) Expr {
	return &CharClass{name, match}
}

// Ref returns a reference to the named rule.
func Ref(name string) Expr {
	return &RuleRef{name}
}

// Seq returns a sequence of items.
func Seq(items ...Expr) Expr {
	return &Sequence{items}
}

// Choice returns an ordered choice over alts.
func Choice(alts ...Expr) Expr {
	return &OrderedChoice{alts}
}

// Rep returns a repetition of x between min and max times.
// Pass Unbounded as max for no upper limit.
func Rep(x Expr, min, max int) Expr {
	return &Repeat{x, min, max}
}

// Star returns a zero-or-more repetition of x.
func Star(x Expr) Expr {
	return Rep(x, 0, Unbounded)
}

// Plus returns a one-or-more repetition of x.
func Plus(x Expr) Expr {
	return Rep(x, 1, Unbounded)
}

// Opt returns a zero-or-one repetition of x.
func Opt(x Expr) Expr {
	return Rep(x, 0, 1)
}

// Rule is a named grammar production.
type Rule struct {
	Name string
	Body Expr
}

// Grammar is an immutable rule table. A constructed Grammar is read-only
// and may be shared by any number of concurrent parses.
type Grammar struct {
	rules map[string]Expr
	root  string
}

// New creates a grammar with the given root rule. Every RuleRef in every
// rule body must resolve to a declared rule, the root included; otherwise
// an error listing all unresolved names is returned.
func New(root string, rules []Rule) (*Grammar, error) {
	table := make(map[string]Expr, len(rules))
	for _, r := range rules {
		if _, defined := table[r.Name]; defined {
			return nil, defRuleError(r.Name)
		}

		table[r.Name] = r.Body
	}

	var missing []string
	seen := make(map[string]bool)
	for _, r := range rules {
		missing = collectUnknownRefs(r.Body, table, seen, missing)
	}
	if len(missing) > 0 {
		return nil, unknownRulesError(missing)
	}

	if _, defined := table[root]; !defined {
		return nil, noRootRuleError(root)
	}

	return &Grammar{table, root}, nil
}

// MustNew is like New but panics on error. It is intended for grammars
// declared as package-level data, where a malformed rule set is a bug.
func MustNew(root string, rules []Rule) *Grammar {
	g, e := New(root, rules)
	if e != nil {
		panic(e)
	}
	return g
}

// Root returns the name of the root rule.
func (g *Grammar) Root() string {
	return g.root
}

// Rule returns the body of the named rule.
func (g *Grammar) Rule(name string) (body Expr, found bool) {
	body, found = g.rules[name]
	return
}

func collectUnknownRefs(x Expr, table map[string]Expr, seen map[string]bool, missing []string) []string {
	switch x := x.(type) {
	case *RuleRef:
		if _, defined := table[x.Name]; !defined && !seen[x.Name] {
			seen[x.Name] = true
			missing = append(missing, x.Name)
		}

	case *Sequence:
		for _, item := range x.Items {
			missing = collectUnknownRefs(item, table, seen, missing)
		}

	case *OrderedChoice:
		for _, alt := range x.Alts {
			missing = collectUnknownRefs(alt, table, seen, missing)
		}

	case *Repeat:
		missing = collectUnknownRefs(x.Expr, table, seen, missing)
	}

	return missing
}
