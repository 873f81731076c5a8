package lexpr

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Parser reads a sequence of datums from a rune stream.
type Parser struct {
	opts ParseOptions
	s    io.RuneScanner

	line, column         int
	prevLine, prevColumn int
}

// NewParser reads from r directly when it is an io.RuneScanner and through a
// bufio.Reader otherwise.
func NewParser(r io.Reader, opts ParseOptions) *Parser {
	s, ok := r.(io.RuneScanner)
	if !ok {
		s = bufio.NewReader(r)
	}
	return &Parser{opts: opts, s: s, line: 1}
}

// Parse reads exactly one datum from s with the default options.
func Parse(s io.RuneScanner) (v *Value, err error) {
	return parseOne(&Parser{opts: DefaultParseOptions(), s: s, line: 1})
}

func ParseString(s string) (*Value, error) {
	return ParseStringWith(s, DefaultParseOptions())
}

func ParseStringWith(s string, opts ParseOptions) (*Value, error) {
	return parseOne(NewParser(strings.NewReader(s), opts))
}

// ParseReader reads exactly one datum from r.
func ParseReader(r io.Reader, opts ParseOptions) (*Value, error) {
	return parseOne(NewParser(r, opts))
}

func parseOne(p *Parser) (v *Value, err error) {
	v, err = p.Next()
	if err == io.EOF {
		err = p.wrap(io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, err
	}
	err = p.ExpectEnd()
	if err != nil {
		return nil, err
	}
	return
}

func (p *Parser) wrap(err error) error {
	if err == nil || err == io.EOF {
		return err
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{
		Category: categorize(err),
		Line:     p.line,
		Column:   p.column,
		Err:      err,
	}
}

// Next returns the next datum. It returns io.EOF, unwrapped, when the input
// holds nothing but whitespace and comments.
func (p *Parser) Next() (v *Value, err error) {
	var d delim
	v, d, err = p.parseNode()
	if err == nil {
		switch d {
		case delimNone:
		case delimDot:
			err = ErrMisplacedDot
		default:
			err = ErrUnexpectedClose
		}
	}
	if err != nil {
		return nil, p.wrap(err)
	}
	return
}

// All reads datums until the input is exhausted.
func (p *Parser) All() ([]*Value, error) {
	values := make([]*Value, 0, 4)
	for {
		v, err := p.Next()
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
}

// ExpectEnd fails with ErrTrailingCharacters unless only whitespace and
// comments remain.
func (p *Parser) ExpectEnd() error {
	_, _, err := p.parseNode()
	switch {
	case err == io.EOF:
		return nil
	case err != nil && categorize(err) == CategoryIO:
		return p.wrap(err)
	}
	return p.wrap(ErrTrailingCharacters)
}

// delim signals that parseNode stopped at structure rather than a datum: a
// dot or one of the closing delimiters.
type delim rune

const (
	delimNone delim = 0
	delimDot  delim = '.'
)

func (p *Parser) parseNode() (n *Value, d delim, err error) {
	var r rune
	for {
		r, err = p.read()
		if err != nil {
			return
		}

		switch {
		case isWhitespace(r):
			continue
		case r == ';':
			err = p.skipLine()
			if err != nil {
				return
			}
			continue
		case r == ')' || r == ']':
			return nil, delim(r), nil
		case r == '(':
			n, err = p.parseList(')')
			return
		case r == '[':
			if p.opts.Brackets == BracketsVector {
				n, err = p.parseVector(']')
			} else {
				n, err = p.parseList(']')
			}
			return
		case r == '\'':
			n, d, err = p.parseAbbreviation("quote")
			return
		case r == '`':
			n, d, err = p.parseAbbreviation("quasiquote")
			return
		case r == ',':
			n, d, err = p.parseUnquote("unquote", "unquote-splicing")
			return
		case r == '"':
			var s string
			s, err = p.parseQuoted('"')
			if err != nil {
				return
			}
			return String(s), delimNone, nil
		case r == '#':
			var skip bool
			n, skip, err = p.parseHash()
			if err != nil {
				return
			}
			if skip {
				continue
			}
			return
		case r == '?' && p.opts.elisp():
			var c rune
			c, err = p.parseElispChar()
			if err != nil {
				return
			}
			return Char(c), delimNone, nil
		case r == '|' && !p.opts.elisp():
			var s string
			s, err = p.parseQuoted('|')
			if err != nil {
				return
			}
			return Symbol(s), delimNone, nil
		}

		err = p.unread()
		if err != nil {
			return
		}
		var t token
		t, err = p.readToken("")
		if err != nil {
			return
		}
		return p.classify(t)
	}
}

// classify turns a bare token into a datum.
func (p *Parser) classify(t token) (n *Value, d delim, err error) {
	if t.escaped {
		if !t.firstEscaped {
			if kw, ok := p.colonPrefixKeyword(t.text); ok {
				return Keyword(kw), delimNone, nil
			}
		}
		if !t.lastEscaped {
			if kw, ok := p.colonPostfixKeyword(t.text); ok {
				return Keyword(kw), delimNone, nil
			}
		}
		return Symbol(t.text), delimNone, nil
	}

	if t.text == "." {
		return nil, delimDot, nil
	}

	num, ok, err := parseNumber(t.text, p.opts.NumberSyntax)
	if err != nil {
		return nil, delimNone, err
	}
	if ok {
		return Num(num), delimNone, nil
	}

	if kw, ok := p.colonPrefixKeyword(t.text); ok {
		return Keyword(kw), delimNone, nil
	}
	if kw, ok := p.colonPostfixKeyword(t.text); ok {
		return Keyword(kw), delimNone, nil
	}

	switch {
	case t.text == "nil" && p.opts.NilSymbol == NilSymbolEmptyList:
		return Null(), delimNone, nil
	case t.text == "nil" && p.opts.NilSymbol == NilSymbolSpecial:
		return Nil(), delimNone, nil
	case t.text == "t" && p.opts.TSymbol == TSymbolTrue:
		return Bool(true), delimNone, nil
	}

	return Symbol(t.text), delimNone, nil
}

func (p *Parser) colonPrefixKeyword(s string) (string, bool) {
	if !p.opts.Keywords.Has(KeywordColonPrefix) || len(s) < 2 || s[0] != ':' {
		return "", false
	}
	return s[1:], true
}

func (p *Parser) colonPostfixKeyword(s string) (string, bool) {
	if !p.opts.Keywords.Has(KeywordColonPostfix) || len(s) < 2 || s[len(s)-1] != ':' {
		return "", false
	}
	return s[:len(s)-1], true
}

// parseDatum reads a datum where one is required, for instance after a quote
// abbreviation.
func (p *Parser) parseDatum() (n *Value, err error) {
	defer func() {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
	}()

	var d delim
	n, d, err = p.parseNode()
	if err != nil {
		return nil, err
	}
	switch d {
	case delimNone:
		return
	case delimDot:
		return nil, ErrMisplacedDot
	}
	return nil, ErrUnexpectedClose
}

func (p *Parser) parseAbbreviation(name string) (n *Value, d delim, err error) {
	var datum *Value
	datum, err = p.parseDatum()
	if err != nil {
		return
	}
	return List(Symbol(name), datum), delimNone, nil
}

// parseUnquote handles , and ,@ (and the #, #,@ syntax forms).
func (p *Parser) parseUnquote(plain, splicing string) (n *Value, d delim, err error) {
	var r rune
	r, err = p.readMore()
	if err != nil {
		return
	}
	if r == '@' {
		return p.parseAbbreviation(splicing)
	}
	err = p.unread()
	if err != nil {
		return
	}
	return p.parseAbbreviation(plain)
}

func (p *Parser) parseList(closer rune) (n *Value, err error) {
	defer func() {
		// convert regular EOF errors to ErrUnexpectedEOF
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
	}()

	items := make([]*Value, 0, 10)
	for {
		var child *Value
		var d delim
		child, d, err = p.parseNode()
		if err != nil {
			return nil, err
		}

		switch d {
		case delimNone:
			items = append(items, child)
			continue
		case delimDot:
			if len(items) == 0 {
				return nil, ErrMisplacedDot
			}
			var tail *Value
			tail, d, err = p.parseNode()
			if err != nil {
				return nil, err
			}
			if d != delimNone {
				return nil, ErrMisplacedDot
			}
			_, d, err = p.parseNode()
			if err != nil {
				return nil, err
			}
			if err = closes(d, closer); err != nil {
				return nil, err
			}
			return ImproperList(items, tail), nil
		}

		if err = closes(d, closer); err != nil {
			return nil, err
		}
		return List(items...), nil
	}
}

func closes(d delim, closer rune) error {
	switch d {
	case delim(closer):
		return nil
	case delimNone, delimDot:
		return ErrMisplacedDot
	}
	return ErrMismatchedClose
}

// parseItems reads datums up to closer; dots are not allowed.
func (p *Parser) parseItems(closer rune) (items []*Value, err error) {
	defer func() {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
	}()

	items = make([]*Value, 0, 10)
	for {
		var child *Value
		var d delim
		child, d, err = p.parseNode()
		if err != nil {
			return nil, err
		}
		switch d {
		case delimNone:
			items = append(items, child)
		case delimDot:
			return nil, ErrMisplacedDot
		case delim(closer):
			return items, nil
		default:
			return nil, ErrMismatchedClose
		}
	}
}

func (p *Parser) parseVector(closer rune) (*Value, error) {
	items, err := p.parseItems(closer)
	if err != nil {
		return nil, err
	}
	return &Value{Kind: KindVector, Vector: items}, nil
}

func (p *Parser) parseBytes() (*Value, error) {
	items, err := p.parseItems(')')
	if err != nil {
		return nil, err
	}
	octets := make([]byte, len(items))
	for i, item := range items {
		u, ok := item.AsUint64()
		if !ok || u > 0xff {
			return nil, ErrInvalidByte
		}
		octets[i] = byte(u)
	}
	return Bytes(octets), nil
}

// parseHash dispatches on the character after '#'. skip is set for comments.
func (p *Parser) parseHash() (n *Value, skip bool, err error) {
	var r rune
	r, err = p.readMore()
	if err != nil {
		return
	}

	switch r {
	case '|':
		return nil, true, p.skipBlockComment()
	case ';':
		_, err = p.parseDatum()
		return nil, true, err
	case '(':
		n, err = p.parseVector(')')
		return
	case '\\':
		var c rune
		c, err = p.parseSchemeChar()
		if err != nil {
			return
		}
		return Char(c), false, nil
	case ':':
		if !p.opts.Keywords.Has(KeywordOctothorpe) {
			return nil, false, ErrKeywordSyntax
		}
		var t token
		t, err = p.readToken("")
		if err != nil {
			return
		}
		if t.text == "" {
			return nil, false, ErrUnexpectedChar
		}
		return Keyword(t.text), false, nil
	case '\'':
		if p.opts.elisp() {
			n, _, err = p.parseAbbreviation("function")
		} else {
			n, _, err = p.parseAbbreviation("syntax")
		}
		return
	case '`':
		n, _, err = p.parseAbbreviation("quasisyntax")
		return
	case ',':
		n, _, err = p.parseUnquote("unsyntax", "unsyntax-splicing")
		return
	case '#':
		if p.opts.elisp() {
			return Symbol(""), false, nil
		}
		return nil, false, ErrUnexpectedChar
	case 'x', 'X':
		n, err = p.parseRadix(16)
		return
	case 'o', 'O':
		n, err = p.parseRadix(8)
		return
	case 'b', 'B':
		n, err = p.parseRadix(2)
		return
	case 'd', 'D':
		n, err = p.parseRadix(10)
		return
	case 'v':
		if err = p.expect("u8("); err != nil {
			return
		}
		n, err = p.parseBytes()
		return
	case 'u':
		if err = p.expect("8("); err != nil {
			return
		}
		n, err = p.parseBytes()
		return
	case 't', 'f', 'n':
		var t token
		t, err = p.readToken(string(r))
		if err != nil {
			return
		}
		switch t.text {
		case "t", "true":
			return Bool(true), false, nil
		case "f", "false":
			return Bool(false), false, nil
		case "nil":
			return Nil(), false, nil
		}
	}

	return nil, false, ErrUnexpectedChar
}

func (p *Parser) parseRadix(radix int) (*Value, error) {
	t, err := p.readToken("")
	if err != nil {
		return nil, err
	}
	if t.escaped {
		return nil, ErrInvalidNumber
	}
	n, err := parseRadixNumber(t.text, radix, p.opts.NumberSyntax)
	if err != nil {
		return nil, err
	}
	return Num(n), nil
}
