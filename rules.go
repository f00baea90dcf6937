package dsn

import (
	g "github.com/go-dsn/dsn/grammar"
	"github.com/go-dsn/dsn/parser"
)

// Single-byte classes used by the grammar. All classes are ASCII-only;
// any other byte simply fails to match.

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isChar(c byte) bool {
	return isAlnum(c) || c == '.' || c == '_' || c == '-'
}

func isEncodedChar(c byte) bool {
	return isAlnum(c) || c == '%'
}

func isNondot(c byte) bool {
	return isAlnum(c) || c == '-' || c == '|'
}

func isVarchar(c byte) bool {
	return isAlnum(c) || c == '.' || c == '_' || c == '-' || c == '%' || c == ',' || c == ' ' || c == '*'
}

func r(name string, body g.Expr) g.Rule {
	return g.Rule{Name: name, Body: body}
}

// dsnGrammar is the DSN rule table. Rules are data shared by every parse;
// the table is built once and never mutated.
//
// Notes on quirks kept on purpose:
//   - username_with_password repeats zero or MORE times in the dsn root,
//     so inputs like "taos://@@@" are accepted; later repetitions win.
//   - paths, with_password, and encoded_char are not reachable from dsn.
//     They stay declared for entry through ParseRule.
var dsnGrammar = g.MustNew("dsn", []g.Rule{
	r("char", g.Class("char", isChar)),
	r("encoded_char", g.Class("encoded_char", isEncodedChar)),

	r("driver", g.Star(g.Ref("char"))),
	r("protocol", g.Plus(g.Ref("char"))),
	r("SCHEME_IDENT", g.Lit("://")),
	r("scheme", g.Seq(
		g.Ref("driver"),
		g.Opt(g.Seq(g.Lit("+"), g.Ref("protocol"))),
	)),

	r("username", g.Plus(g.Ref("char"))),
	r("password", g.Plus(g.Ref("char"))),
	r("with_password", g.Seq(g.Lit(":"), g.Opt(g.Ref("password")))),
	r("username_with_password", g.Seq(
		g.Opt(g.Ref("username")),
		g.Opt(g.Seq(g.Lit(":"), g.Ref("password"))),
		g.Lit("@"),
	)),

	r("nondot", g.Class("nondot", isNondot)),
	r("host", g.Seq(
		g.Plus(g.Ref("nondot")),
		g.Star(g.Seq(g.Lit("."), g.Plus(g.Ref("nondot")))),
	)),
	r("port", g.Plus(g.Class("digit", isDigit))),
	r("path", g.Seq(
		g.Lit("%"),
		g.Plus(g.Choice(g.Ref("char"), g.Lit("%"), g.Lit("+"))),
	)),

	// A url-encoded path is unambiguous (starts with "%"); a bare host and
	// the colon-only forms overlap, so the listed order decides.
	r("address", g.Choice(
		g.Ref("path"),
		g.Seq(g.Ref("host"), g.Opt(g.Seq(g.Lit(":"), g.Opt(g.Ref("port"))))),
		g.Seq(g.Lit(":"), g.Ref("port")),
		g.Lit(":"),
	)),
	r("addresses", g.Seq(
		g.Opt(g.Ref("address")),
		g.Star(g.Seq(g.Lit(","), g.Ref("address"))),
	)),
	r("paths", g.Choice(
		g.Ref("path"),
		g.Seq(g.Lit(","), g.Ref("path")),
	)),

	r("fchar", g.Choice(g.Ref("char"), g.Lit(":"))),
	r("fragment", g.Choice(
		g.Seq(
			g.Lit("./"),
			g.Plus(g.Ref("fchar")),
			g.Opt(g.Seq(g.Lit("/"), g.Plus(g.Ref("fchar")))),
		),
		g.Rep(g.Seq(g.Lit("/"), g.Plus(g.Ref("fchar"))), 2, g.Unbounded),
	)),

	r("protocol_with_addresses", g.Choice(
		g.Seq(g.Ref("protocol"), g.Lit("("), g.Ref("addresses"), g.Lit(")")),
		g.Ref("addresses"),
	)),

	r("name", g.Plus(g.Ref("char"))),
	r("varchar", g.Class("varchar", isVarchar)),
	r("value", g.Star(g.Ref("varchar"))),
	r("param", g.Seq(g.Ref("name"), g.Lit("="), g.Ref("value"))),

	r("database_char", g.Choice(g.Ref("nondot"), g.Lit(","), g.Lit("_"))),
	r("database", g.Plus(g.Ref("database_char"))),

	r("dsn", g.Seq(
		g.SOI,
		g.Ref("scheme"),
		g.Choice(
			g.Seq(
				g.Ref("SCHEME_IDENT"),
				g.Star(g.Ref("username_with_password")),
				g.Ref("protocol_with_addresses"),
				g.Opt(g.Choice(
					g.Ref("fragment"),
					g.Seq(g.Lit("/"), g.Opt(g.Ref("database"))),
				)),
			),
			g.Seq(g.Lit(":"), g.Ref("fragment")),
		),
		g.Opt(g.Seq(
			g.Lit("?"),
			g.Ref("param"),
			g.Star(g.Seq(g.Lit("&"), g.Ref("param"))),
		)),
		g.EOI,
	)),
})

var dsnParser = parser.New(dsnGrammar)

// Grammar returns the DSN grammar table.
func Grammar() *g.Grammar {
	return dsnGrammar
}

// ParseTree matches a full DSN string and returns the raw parse tree
// rooted at the dsn rule, spanning the entire input.
func ParseTree(input string) (*parser.Node, error) {
	return dsnParser.Parse(input)
}

// ParseRule matches input against a single named rule of the DSN grammar,
// starting at offset 0 and without requiring full consumption. It is the
// entry point for independently invocable rules such as host or param.
func ParseRule(rule, input string) (*parser.Node, error) {
	return dsnParser.ParseRule(rule, input)
}
