package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/go-dsn/dsn/errors"
	g "github.com/go-dsn/dsn/grammar"
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func digit() g.Expr {
	return g.Class("digit", isDigit)
}

func letter() g.Expr {
	return g.Class("letter", isLetter)
}

func mustParse(t *testing.T, gr *g.Grammar, input string) *Node {
	t.Helper()
	n, e := New(gr).Parse(input)
	require.NoError(t, e)
	require.NotNil(t, n)
	return n
}

func mustFail(t *testing.T, gr *g.Grammar, input string) *errs.Error {
	t.Helper()
	n, e := New(gr).Parse(input)
	require.Nil(t, n)
	require.Error(t, e)
	le, ok := e.(*errs.Error)
	require.True(t, ok, "expecting coded error, got %T", e)
	return le
}

func TestLiteralSequence(t *testing.T) {
	gr := g.MustNew("root", []g.Rule{
		{Name: "root", Body: g.Seq(g.Lit("ab"), g.Lit("c"))},
	})

	n := mustParse(t, gr, "abc")
	assert.Equal(t, &Node{Rule: "root", Pos: 0, End: 3, Text: "abc"}, n)

	le := mustFail(t, gr, "abd")
	assert.Equal(t, 2, le.Pos)
	assert.Equal(t, []string{`"c"`}, le.Expected)
	assert.Equal(t, SyntaxError, le.Code)
	assert.Contains(t, le.Error(), "position 2")
}

func TestOrderedChoice(t *testing.T) {
	gr := g.MustNew("root", []g.Rule{
		{Name: "root", Body: g.Choice(g.Lit("aa"), g.Lit("a"))},
	})

	// first alternative wins when both could match
	n := mustParse(t, gr, "aa")
	assert.Equal(t, 2, n.End)

	n = mustParse(t, gr, "ab")
	assert.Equal(t, 1, n.End)
}

func TestChoiceFailureUnion(t *testing.T) {
	gr := g.MustNew("root", []g.Rule{
		{Name: "root", Body: g.Choice(g.Lit("x"), g.Lit("y"))},
	})

	le := mustFail(t, gr, "z")
	assert.Equal(t, 0, le.Pos)
	assert.Equal(t, []string{`"x"`, `"y"`, "root"}, le.Expected)
}

func TestChoiceResetsAfterPartialSequence(t *testing.T) {
	gr := g.MustNew("root", []g.Rule{
		{Name: "root", Body: g.Choice(
			g.Seq(g.Lit("ab"), g.Lit("x")),
			g.Lit("a"),
		)},
	})

	// the first alternative consumes "ab" before failing; the second must
	// still see the input from the choice's start
	n := mustParse(t, gr, "ab")
	assert.Equal(t, 1, n.End)
	assert.Equal(t, "a", n.Text)
}

func TestRepeatIsGreedy(t *testing.T) {
	gr := g.MustNew("root", []g.Rule{
		{Name: "root", Body: g.Seq(g.Star(digit()), g.Lit("3"))},
	})

	// the star eats the trailing "3" and never gives it back
	le := mustFail(t, gr, "123")
	assert.Equal(t, 3, le.Pos)
	assert.Equal(t, []string{`"3"`, "digit"}, le.Expected)
}

func TestRepeatBounds(t *testing.T) {
	gr := g.MustNew("root", []g.Rule{
		{Name: "root", Body: g.Rep(digit(), 2, 3)},
	})

	le := mustFail(t, gr, "1")
	assert.Equal(t, 1, le.Pos)
	assert.Equal(t, []string{"digit"}, le.Expected)

	n := mustParse(t, gr, "1234")
	assert.Equal(t, "123", n.Text)
}

func TestAnchors(t *testing.T) {
	gr := g.MustNew("root", []g.Rule{
		{Name: "root", Body: g.Seq(g.SOI, g.Lit("a"), g.EOI)},
	})

	n := mustParse(t, gr, "a")
	assert.Equal(t, 1, n.End)

	le := mustFail(t, gr, "ab")
	assert.Equal(t, 1, le.Pos)
	assert.Equal(t, []string{"EOI"}, le.Expected)

	gr = g.MustNew("root", []g.Rule{
		{Name: "root", Body: g.Seq(g.Lit("a"), g.SOI)},
	})
	le = mustFail(t, gr, "a")
	assert.Equal(t, 1, le.Pos)
	assert.Equal(t, []string{"SOI"}, le.Expected)
}

func wordNumGrammar() *g.Grammar {
	return g.MustNew("root", []g.Rule{
		{Name: "root", Body: g.Seq(
			g.Ref("word"),
			g.Opt(g.Seq(g.Lit("-"), g.Ref("num"))),
		)},
		{Name: "word", Body: g.Plus(letter())},
		{Name: "num", Body: g.Plus(digit())},
	})
}

func TestRuleNodes(t *testing.T) {
	n := mustParse(t, wordNumGrammar(), "ab-12")
	assert.Equal(t, "root", n.Rule)
	assert.Equal(t, 5, n.End)
	require.Len(t, n.Children, 2)

	word := n.Find("word")
	require.NotNil(t, word)
	assert.Equal(t, &Node{Rule: "word", Pos: 0, End: 2, Text: "ab"}, word)

	num := n.Find("num")
	require.NotNil(t, num)
	assert.Equal(t, &Node{Rule: "num", Pos: 3, End: 5, Text: "12"}, num)

	assert.Nil(t, n.Find("missing"))
	assert.Len(t, n.FindAll("word"), 1)
}

func TestOptionalPartSkipped(t *testing.T) {
	n := mustParse(t, wordNumGrammar(), "ab")
	assert.Equal(t, 2, n.End)
	require.Len(t, n.Children, 1)
	assert.Nil(t, n.Find("num"))
}

func TestRuleRecordedAtEntryOnly(t *testing.T) {
	gr := g.MustNew("num", []g.Rule{
		{Name: "num", Body: g.Plus(digit())},
	})

	le := mustFail(t, gr, "x")
	assert.Equal(t, 0, le.Pos)
	assert.Equal(t, []string{"digit", "num"}, le.Expected)
}

func TestFurthestFailureWins(t *testing.T) {
	gr := g.MustNew("root", []g.Rule{
		{Name: "root", Body: g.Choice(
			g.Seq(g.Lit("ab"), g.Lit("c")),
			g.Lit("x"),
		)},
	})

	// the decisive failure is the exhausted choice at offset 0, but the
	// deepest attempt reached offset 2
	le := mustFail(t, gr, "abd")
	assert.Equal(t, 2, le.Pos)
	assert.Equal(t, []string{`"c"`}, le.Expected)
}

func TestParseRule(t *testing.T) {
	gr := wordNumGrammar()
	p := New(gr)

	n, e := p.ParseRule("num", "42")
	require.NoError(t, e)
	assert.Equal(t, "42", n.Text)

	_, e = p.ParseRule("nope", "42")
	require.Error(t, e)
	le, ok := e.(*errs.Error)
	require.True(t, ok)
	assert.Equal(t, UnknownRuleError, le.Code)
}

func TestConcurrentUse(t *testing.T) {
	p := New(wordNumGrammar())
	samples := []string{"a", "ab-1", "abc-123", "z-9", "word"}

	for _, src := range samples {
		src := src
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			for i := 0; i < 100; i++ {
				n, e := p.Parse(src)
				require.NoError(t, e)
				assert.Equal(t, len(src), n.End)
			}
		})
	}
}
