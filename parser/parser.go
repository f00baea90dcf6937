// Package parser evaluates a PEG grammar against an input string and
// produces a tree of rule matches or a syntax error pointing at the
// furthest offset any match attempt reached.
package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-dsn/dsn/grammar"
)

// Parser applies one grammar to any number of inputs. It holds no mutable
// state and is safe for concurrent use.
type Parser struct {
	g *grammar.Grammar
}

// New creates a parser for g.
func New(g *grammar.Grammar) *Parser {
	return &Parser{g}
}

// Parse matches the entire grammar root against input. On success the
// returned node is named after the root rule; whether it must span the
// whole input is up to the grammar (the root rule anchors itself with
// SOI/EOI if it wants to). On failure the returned error carries the
// furthest byte offset reached and the names attempted there.
func (p *Parser) Parse(input string) (*Node, error) {
	return p.ParseRule(p.g.Root(), input)
}

// ParseRule matches the named rule against input starting at offset 0.
// The rule does not have to consume the whole input.
func (p *Parser) ParseRule(name string, input string) (*Node, error) {
	if _, found := p.g.Rule(name); !found {
		return nil, unknownRuleError(name)
	}

	pc := &parseContext{g: p.g, input: input, seen: make(map[string]bool)}
	_, nodes, ok := pc.eval(grammar.Ref(name), 0)
	if !ok {
		sort.Strings(pc.expected)
		return nil, syntaxError(pc.failPos, pc.expected)
	}

	return nodes[0], nil
}

// parseContext carries the per-call state: the input, and the furthest
// failure tracker used for diagnostics. The cursor itself is threaded
// through eval as an argument.
type parseContext struct {
	g        *grammar.Grammar
	input    string
	failPos  int
	expected []string
	seen     map[string]bool
}

// fail records a match attempt of name failing at pos. Only attempts at
// the furthest offset reached so far are kept; a failure beyond it
// discards the names collected for shallower offsets.
func (pc *parseContext) fail(pos int, name string) {
	if pos < pc.failPos {
		return
	}

	if pos > pc.failPos {
		pc.failPos = pos
		pc.expected = pc.expected[:0]
		pc.seen = make(map[string]bool)
	}
	if !pc.seen[name] {
		pc.seen[name] = true
		pc.expected = append(pc.expected, name)
	}
}

// eval matches x at pos. On success it returns the offset after the match
// and the named nodes produced by rule references inside x; on failure the
// cursor is abandoned by the caller, so no partial progress escapes.
func (pc *parseContext) eval(x grammar.Expr, pos int) (end int, nodes []*Node, ok bool) {
	switch x := x.(type) {
	case *grammar.Literal:
		if strings.HasPrefix(pc.input[pos:], x.Text) {
			return pos + len(x.Text), nil, true
		}

		pc.fail(pos, strconv.Quote(x.Text))
		return pos, nil, false

	case *grammar.CharClass:
		if pos < len(pc.input) && x.Match(pc.input[pos]) {
			return pos + 1, nil, true
		}

		pc.fail(pos, x.Name)
		return pos, nil, false

	case *grammar.RuleRef:
		body, _ := pc.g.Rule(x.Name)
		end, kids, ok := pc.eval(body, pos)
		if !ok {
			pc.fail(pos, x.Name)
			return pos, nil, false
		}

		n := &Node{Rule: x.Name, Pos: pos, End: end, Text: pc.input[pos:end], Children: kids}
		return end, []*Node{n}, true

	case *grammar.Sequence:
		cur := pos
		for _, item := range x.Items {
			next, kids, ok := pc.eval(item, cur)
			if !ok {
				return pos, nil, false
			}

			cur = next
			nodes = append(nodes, kids...)
		}
		return cur, nodes, true

	case *grammar.OrderedChoice:
		for _, alt := range x.Alts {
			end, kids, ok := pc.eval(alt, pos)
			if ok {
				return end, kids, true
			}
		}
		return pos, nil, false

	case *grammar.Repeat:
		cur := pos
		count := 0
		for x.Max == grammar.Unbounded || count < x.Max {
			next, kids, ok := pc.eval(x.Expr, cur)
			if !ok {
				break
			}
			if next == cur {
				// zero-width match, repeating it would never terminate
				break
			}

			cur = next
			count++
			nodes = append(nodes, kids...)
		}
		if count < x.Min {
			return pos, nil, false
		}
		return cur, nodes, true

	case *grammar.StartOfInput:
		if pos == 0 {
			return pos, nil, true
		}

		pc.fail(pos, "SOI")
		return pos, nil, false

	case *grammar.EndOfInput:
		if pos == len(pc.input) {
			return pos, nil, true
		}

		pc.fail(pos, "EOI")
		return pos, nil, false
	}

	return pos, nil, false
}
