package lexpr

import (
	"bytes"
	"math"
	"testing"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{name: "()", v: Null(), want: "()"},
		{name: "(abc)", v: List(sym("abc")), want: "(abc)"},
		{name: "(abc def)", v: List(sym("abc"), sym("def")), want: "(abc def)"},
		{
			name: "(abc def (g z/a *))",
			v:    List(sym("abc"), sym("def"), List(sym("g"), sym("z/a"), sym("*"))),
			want: "(abc def (g z/a *))",
		},
		{name: "(a . b)", v: Pair(sym("a"), sym("b")), want: "(a . b)"},
		{name: "(a b . c)", v: ImproperList([]*Value{sym("a"), sym("b")}, sym("c")), want: "(a b . c)"},
		{name: "(a (b . c) . #nil)", v: ImproperList([]*Value{sym("a"), Pair(sym("b"), sym("c"))}, Nil()), want: "(a (b . c) . #nil)"},
		{name: "nil *Value", v: nil, want: "#nil"},
		{name: "cons without a cell", v: List(&Value{Kind: KindCons}), want: "(())"},
		{
			name: "atoms",
			v:    List(Int(1), Int(-2), Uint(math.MaxUint64), Float(2.5), Float(1), Float(1e21), String("s\n"), Char('x'), Bool(true), Bool(false), Nil()),
			want: `(1 -2 18446744073709551615 2.5 1.0 1e+21 "s\n" #\x #t #f #nil)`,
		},
		{name: "infinities", v: List(Float(math.Inf(1)), Float(math.Inf(-1)), Float(math.NaN())), want: "(+inf.0 -inf.0 +nan.0)"},
		{name: "vector", v: Vector(Int(1), Vector()), want: "#(1 #())"},
		{name: "bytes", v: Bytes([]byte{0, 255}), want: "#vu8(0 255)"},
		{name: "keyword", v: Keyword("k"), want: "#:k"},
		{name: "keyword with space", v: Keyword("a b"), want: `#:a\x20;b`},
		{name: "string escapes", v: String("q\"b\\\x01"), want: `"q\"b\\\x1;"`},
		{name: "chars", v: List(Char(' '), Char('\n'), Char(0), Char('\a'), Char('λ'), Char(0x200b)), want: `(#\space #\newline #\nul #\alarm #\λ #\x200B)`},
		{name: "symbol needing escapes", v: sym("foo bar"), want: `\x66;oo\x20;bar`},
		{name: "numeric symbol", v: sym("1"), want: `\x31;`},
		{name: "dot symbol", v: sym("."), want: `\x2E;`},
		{name: "empty symbol", v: sym(""), want: "||"},
		{name: "hash symbol", v: sym("#x"), want: `\x23;x`},
		{name: "plain symbols", v: List(sym("nil"), sym("t"), sym(":k"), sym("-"), sym("..."), sym("λ")), want: "(nil t :k - ... λ)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToString(t *testing.T) {
	elisp := DialectElisp.PrintOptions()
	r7rs := DialectR7RS.PrintOptions()

	tests := []struct {
		name string
		v    *Value
		opts PrintOptions
		want string
	}{
		{name: "elisp list", v: List(Keyword("k"), Bool(true), Bool(false), Nil(), Null(), Vector(Int(1), Int(2))), opts: elisp, want: "(:k t nil nil () [1 2])"},
		{name: "elisp infinities", v: List(Float(math.Inf(1)), Float(math.Inf(-1)), Float(math.NaN())), opts: elisp, want: "(1.0e+INF -1.0e+INF 0.0e+NaN)"},
		{name: "elisp string", v: String("tab\there\x1b\x7f\x01é"), opts: elisp, want: `"tab\there\e\d\001é"`},
		{name: "elisp unibyte", v: Bytes([]byte("a\x00\"\xff")), opts: elisp, want: `"a\000\"\377"`},
		{name: "elisp chars", v: List(Char('a'), Char(' '), Char('('), Char('\n'), Char(0), Char('?')), opts: elisp, want: `(?a ?\s ?\( ?\n ?\^@ ??)`},
		{name: "elisp symbols", v: List(sym("foo bar"), sym("1"), sym("nil"), sym(":k"), sym("a|b"), sym("")), opts: elisp, want: `(\foo\ bar \1 \nil \:k a|b ##)`},
		{name: "elisp keyword with space", v: Keyword("a b"), opts: elisp, want: `:a\ b`},

		{name: "r7rs bytes", v: Bytes([]byte{1, 2}), opts: r7rs, want: "#u8(1 2)"},
		{name: "r7rs symbol", v: sym("a|b c"), opts: r7rs, want: `|a\|b c|`},
		{name: "r7rs string", v: String("v\vf\fa\a"), opts: r7rs, want: `"v\xB;f\xC;a\a"`},
		{name: "r7rs quoted symbol", v: sym("a\vb"), opts: r7rs, want: `|a\xB;b|`},
		{name: "r6rs keyword", v: Keyword("k"), opts: DialectR6RS.PrintOptions(), want: "#:k"},
		{name: "r6rs string", v: String("v\vf\f"), opts: DialectR6RS.PrintOptions(), want: `"v\vf\f"`},
		{name: "r7rs chars", v: List(Char(0), Char(27), Char('\v')), opts: r7rs, want: `(#\null #\escape #\xB)`},

		{name: "colon postfix keyword", v: Keyword("k"), opts: PrintOptions{KeywordStyle: KeywordStyleColonPostfix}, want: "k:"},
		{name: "colon postfix symbol", v: sym("k:"), opts: PrintOptions{KeywordStyle: KeywordStyleColonPostfix}, want: `\x6B;:`},
		{name: "long booleans", v: List(Bool(true), Bool(false)), opts: PrintOptions{BoolStyle: BoolStyleLongToken}, want: "(#true #false)"},
		{name: "nil as empty list", v: Nil(), opts: PrintOptions{NilStyle: NilStyleEmptyList}, want: "()"},
		{name: "bracket vectors", v: Vector(Vector()), opts: PrintOptions{VectorStyle: VectorStyleBrackets}, want: "[[]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToString(tt.v, tt.opts); got != tt.want {
				t.Errorf("ToString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, DialectElisp.PrintOptions())
	if err := p.Print(List(sym("a"), Keyword("b"))); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "(a :b)" {
		t.Errorf("Print() wrote %q", got)
	}

	buf.Reset()
	if err := Print(&buf, Vector(Int(1))); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "#(1)" {
		t.Errorf("Print() wrote %q", got)
	}
}

func roundTripValues() []*Value {
	return []*Value{
		Int(0), Int(-5), Uint(math.MaxUint64), Int(math.MinInt64),
		Float(2.5), Float(-0.125), Float(1e300), Float(100), Float(math.Inf(1)),
		String(""), String("plain"), String("quote\" back\\ tab\t nl\n ctl\x01 esc\x1b del\x7f é 😀"),
		Char('a'), Char(' '), Char('\n'), Char(0), Char('('), Char(')'), Char(';'), Char('#'),
		Char('\\'), Char('x'), Char('λ'), Char(0x7f), Char(0x1F600), Char('\v'),
		sym("hello"), sym("foo bar"), sym(""), sym("1"), sym("-1.5"), sym("+inf.0"),
		sym("#x"), sym("a;b"), sym("a'b"), sym("a|b"), sym("."), sym("..."), sym("-"),
		sym("λ"), sym("with\\backslash"), sym("tab\there"),
		Keyword("k"), Keyword("a b"), Keyword("x(y)"),
		Null(), Nil(), Bool(true),
		List(sym("define"), List(sym("f"), sym("x")), List(sym("*"), sym("x"), Int(2))),
		ImproperList([]*Value{Int(1), Int(2)}, Int(3)),
		Pair(Null(), Nil()),
		Vector(), Vector(Int(1), List(String("s")), Vector(Char('c'))),
	}
}

func TestRoundTrip(t *testing.T) {
	for _, d := range []Dialect{DialectDefault, DialectR6RS, DialectR7RS, DialectElisp} {
		values := roundTripValues()
		if d != DialectElisp {
			values = append(values, Bool(false), Bytes([]byte{0, 1, 255}), Bytes(nil))
		}
		for _, v := range values {
			if (d == DialectR6RS || d == DialectR7RS) && v.IsKeyword() {
				continue
			}
			printed := ToString(v, d.PrintOptions())
			got, err := ParseStringWith(printed, d.ParseOptions())
			if err != nil {
				t.Errorf("%v: %q does not read back: %v", d, printed, err)
				continue
			}
			if !Equal(got, v) {
				t.Errorf("%v: %q read back as %v, want %v", d, printed, got, v)
			}
		}
	}
}
