package lexpr

import (
	"fmt"
	"strings"
)

// KeywordSyntax is a set of accepted keyword spellings.
type KeywordSyntax uint8

const (
	KeywordColonPrefix  KeywordSyntax = 1 << iota // :kw
	KeywordColonPostfix                           // kw:
	KeywordOctothorpe                             // #:kw
)

func (k KeywordSyntax) Has(s KeywordSyntax) bool { return k&s != 0 }

// NilSymbol selects how the bare symbol nil is read.
type NilSymbol int

const (
	NilSymbolDefault NilSymbol = iota
	NilSymbolEmptyList
	NilSymbolSpecial
)

// TSymbol selects how the bare symbol t is read.
type TSymbol int

const (
	TSymbolDefault TSymbol = iota
	TSymbolTrue
)

// Brackets selects what [ ... ] denotes.
type Brackets int

const (
	BracketsList Brackets = iota
	BracketsVector
)

type StringSyntax int

const (
	StringSyntaxR6RS StringSyntax = iota
	StringSyntaxR7RS
	StringSyntaxElisp
)

type CharSyntax int

const (
	CharSyntaxR6RS CharSyntax = iota
	CharSyntaxR7RS
	CharSyntaxElisp
)

type NumberSyntax int

const (
	NumberSyntaxScheme NumberSyntax = iota
	NumberSyntaxElisp
)

type ParseOptions struct {
	Keywords     KeywordSyntax
	NilSymbol    NilSymbol
	TSymbol      TSymbol
	Brackets     Brackets
	StringSyntax StringSyntax
	CharSyntax   CharSyntax
	NumberSyntax NumberSyntax
}

func (o ParseOptions) elisp() bool { return o.CharSyntax == CharSyntaxElisp }

type KeywordStyle int

const (
	KeywordStyleOctothorpe KeywordStyle = iota
	KeywordStyleColonPrefix
	KeywordStyleColonPostfix
)

type NilStyle int

const (
	NilStyleToken     NilStyle = iota // #nil
	NilStyleSymbol                    // nil
	NilStyleEmptyList                 // ()
)

type BoolStyle int

const (
	BoolStyleToken     BoolStyle = iota // #t #f
	BoolStyleLongToken                  // #true #false
	BoolStyleSymbol                     // t nil
)

type VectorStyle int

const (
	VectorStyleOctothorpe VectorStyle = iota // #(...)
	VectorStyleBrackets                      // [...]
)

type BytesStyle int

const (
	BytesStyleR6RS  BytesStyle = iota // #vu8(...)
	BytesStyleR7RS                    // #u8(...)
	BytesStyleElisp                   // unibyte string
)

type PrintOptions struct {
	KeywordStyle KeywordStyle
	NilStyle     NilStyle
	BoolStyle    BoolStyle
	VectorStyle  VectorStyle
	BytesStyle   BytesStyle
	StringSyntax StringSyntax
	CharSyntax   CharSyntax
	NumberSyntax NumberSyntax
}

func (o PrintOptions) elisp() bool { return o.CharSyntax == CharSyntaxElisp }

// Dialect names a preset pair of parse and print options.
type Dialect int

const (
	DialectDefault Dialect = iota
	DialectR6RS
	DialectR7RS
	DialectElisp
)

func (d Dialect) String() string {
	switch d {
	case DialectDefault:
		return "default"
	case DialectR6RS:
		return "r6rs"
	case DialectR7RS:
		return "r7rs"
	case DialectElisp:
		return "elisp"
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}

// ParseDialect maps a dialect name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "guile":
		return DialectDefault, nil
	case "r6rs", "scheme":
		return DialectR6RS, nil
	case "r7rs":
		return DialectR7RS, nil
	case "elisp", "emacs-lisp", "emacs":
		return DialectElisp, nil
	}
	return DialectDefault, fmt.Errorf("unknown dialect %q", name)
}

func (d Dialect) ParseOptions() ParseOptions {
	switch d {
	case DialectR6RS:
		return ParseOptions{
			StringSyntax: StringSyntaxR6RS,
			CharSyntax:   CharSyntaxR6RS,
		}
	case DialectR7RS:
		return ParseOptions{
			StringSyntax: StringSyntaxR7RS,
			CharSyntax:   CharSyntaxR7RS,
		}
	case DialectElisp:
		return ParseOptions{
			Keywords:     KeywordColonPrefix,
			NilSymbol:    NilSymbolSpecial,
			TSymbol:      TSymbolTrue,
			Brackets:     BracketsVector,
			StringSyntax: StringSyntaxElisp,
			CharSyntax:   CharSyntaxElisp,
			NumberSyntax: NumberSyntaxElisp,
		}
	}
	return ParseOptions{Keywords: KeywordOctothorpe}
}

// PrintOptions returns the print preset for d. Scheme has no keyword syntax,
// so the R6RS and R7RS presets still print keywords as #:kw, which their parse
// presets reject.
func (d Dialect) PrintOptions() PrintOptions {
	switch d {
	case DialectR6RS:
		return PrintOptions{}
	case DialectR7RS:
		return PrintOptions{
			BytesStyle:   BytesStyleR7RS,
			StringSyntax: StringSyntaxR7RS,
			CharSyntax:   CharSyntaxR7RS,
		}
	case DialectElisp:
		return PrintOptions{
			KeywordStyle: KeywordStyleColonPrefix,
			NilStyle:     NilStyleSymbol,
			BoolStyle:    BoolStyleSymbol,
			VectorStyle:  VectorStyleBrackets,
			BytesStyle:   BytesStyleElisp,
			StringSyntax: StringSyntaxElisp,
			CharSyntax:   CharSyntaxElisp,
			NumberSyntax: NumberSyntaxElisp,
		}
	}
	return PrintOptions{}
}

func DefaultParseOptions() ParseOptions { return DialectDefault.ParseOptions() }
func DefaultPrintOptions() PrintOptions { return DialectDefault.PrintOptions() }
