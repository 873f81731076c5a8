package lexpr

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// noRune marks an escape that produces no character, such as a line
// continuation.
const noRune rune = -1

// parseQuoted reads a string body up to term with the option's string
// syntax; the opening quote has been consumed. Scheme |...| symbols use the
// same reader with term '|'.
func (p *Parser) parseQuoted(term rune) (s string, err error) {
	var sb strings.Builder
	for {
		var r rune
		r, err = p.readMore()
		if err != nil {
			return
		}
		if r == term {
			break
		}
		if r == '\\' {
			if p.opts.StringSyntax == StringSyntaxElisp {
				r, err = p.readElispEscape(false)
			} else {
				r, err = p.readSchemeEscape(term)
			}
			if err != nil {
				return
			}
			if r == noRune {
				continue
			}
		}
		sb.WriteRune(r)
	}
	s = sb.String()
	return
}

func (p *Parser) readSchemeEscape(term rune) (rune, error) {
	r, err := p.readMore()
	if err != nil {
		return 0, err
	}
	switch r {
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'v':
		return '\v', nil
	case 'f':
		return '\f', nil
	case 'r':
		return '\r', nil
	case '"', '\\':
		return r, nil
	case '|':
		if p.opts.StringSyntax == StringSyntaxR7RS || term == '|' {
			return r, nil
		}
		return 0, ErrInvalidEscape
	case 'x', 'X':
		return p.readHexScalar(';')
	case ' ', '\t', '\r', '\n':
		return noRune, p.skipLineContinuation(r)
	}
	return 0, ErrInvalidEscape
}

// skipLineContinuation consumes \<intraline ws>*<newline><intraline ws>*;
// first is the character that followed the backslash.
func (p *Parser) skipLineContinuation(first rune) error {
	r := first
	for r != '\n' {
		if r != ' ' && r != '\t' && r != '\r' {
			return ErrInvalidEscape
		}
		var err error
		r, err = p.readMore()
		if err != nil {
			return err
		}
	}
	for {
		r, err := p.readMore()
		if err != nil {
			return err
		}
		if r != ' ' && r != '\t' {
			return p.unread()
		}
	}
}

// readElispEscape decodes the sequence after a backslash in an Elisp string
// or character literal. In strings \<newline> and \<space> vanish.
func (p *Parser) readElispEscape(inChar bool) (rune, error) {
	r, err := p.readMore()
	if err != nil {
		return 0, err
	}
	switch r {
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'v':
		return '\v', nil
	case 'f':
		return '\f', nil
	case 'r':
		return '\r', nil
	case 'e':
		return 27, nil
	case 's':
		if !inChar {
			return ' ', nil
		}
		// ?\s- is the super modifier, not a space
		next, err := p.read()
		switch {
		case err == io.EOF:
			return ' ', nil
		case err != nil:
			return 0, err
		case next == '-':
			return 0, ErrInvalidEscape
		}
		return ' ', p.unread()
	case 'M', 'S', 'H', 'A':
		// modifier prefixes such as \M-a have no character value here
		return 0, ErrInvalidEscape
	case 'd':
		return 127, nil
	case '\n', ' ':
		if inChar {
			return r, nil
		}
		return noRune, nil
	case 'x':
		return p.readElispHex()
	case 'u':
		return p.readFixedHex(4)
	case 'U':
		return p.readFixedHex(8)
	case 'N':
		if err := p.expect("{U+"); err != nil {
			return 0, ErrInvalidEscape
		}
		return p.readHexScalar('}')
	case '^':
		c, err := p.readMore()
		if err != nil {
			return 0, err
		}
		return control(c)
	case 'C':
		if err := p.expect("-"); err != nil {
			return 0, ErrInvalidEscape
		}
		c, err := p.readMore()
		if err != nil {
			return 0, err
		}
		return control(c)
	}
	if r >= '0' && r <= '7' {
		return p.readElispOctal(r)
	}
	return r, nil
}

// readElispHex reads \x followed by any number of hex digits.
func (p *Parser) readElispHex() (rune, error) {
	var v rune
	digits := 0
	for {
		r, err := p.readMore()
		if err != nil {
			return 0, err
		}
		if !isHexDigit(r) {
			if err := p.unread(); err != nil {
				return 0, err
			}
			break
		}
		digits++
		if digits > 8 {
			return 0, ErrInvalidUnicode
		}
		v = v<<4 | hexValue(r)
	}
	if digits == 0 {
		return 0, ErrInvalidEscape
	}
	return validScalar(v)
}

// readElispOctal reads up to three octal digits, the first already consumed.
func (p *Parser) readElispOctal(first rune) (rune, error) {
	v := first - '0'
	for i := 1; i < 3; i++ {
		r, err := p.readMore()
		if err != nil {
			return 0, err
		}
		if r < '0' || r > '7' {
			if err := p.unread(); err != nil {
				return 0, err
			}
			break
		}
		v = v<<3 | (r - '0')
	}
	return v, nil
}

func control(c rune) (rune, error) {
	switch {
	case c == '?':
		return 127, nil
	case c >= '@' && c <= '_':
		return c & 0x1f, nil
	case c >= 'a' && c <= 'z':
		return c & 0x1f, nil
	}
	return 0, ErrInvalidEscape
}

var schemeCharNames = map[string]rune{
	"nul":       0,
	"null":      0,
	"alarm":     '\a',
	"backspace": '\b',
	"tab":       '\t',
	"linefeed":  '\n',
	"newline":   '\n',
	"vtab":      '\v',
	"page":      '\f',
	"return":    '\r',
	"esc":       27,
	"escape":    27,
	"space":     ' ',
	"delete":    127,
}

// parseSchemeChar reads the body of a #\ character literal.
func (p *Parser) parseSchemeChar() (rune, error) {
	first, err := p.readMore()
	if err != nil {
		return 0, err
	}
	if p.opts.isDelimiter(first) {
		return first, nil
	}
	t, err := p.readToken(string(first))
	if err != nil {
		return 0, err
	}
	name := t.text
	if utf8.RuneCountInString(name) == 1 {
		return first, nil
	}
	if (name[0] == 'x' || name[0] == 'X') && isInteger(name[1:], 16) && !strings.ContainsAny(name[1:2], "+-") {
		var v rune
		for _, r := range name[1:] {
			v = v<<4 | hexValue(r)
			if v > unicode.MaxRune {
				return 0, ErrInvalidUnicode
			}
		}
		return validScalar(v)
	}
	if r, ok := schemeCharNames[name]; ok {
		return r, nil
	}
	return 0, ErrInvalidChar
}

// parseElispChar reads the body of a ?c character literal.
func (p *Parser) parseElispChar() (rune, error) {
	r, err := p.readMore()
	if err != nil {
		return 0, err
	}
	if r == '\\' {
		return p.readElispEscape(true)
	}
	return r, nil
}

// appendSchemeString writes s between term delimiters. Under R7RS \v and \f
// are written as hex escapes.
func appendSchemeString(sb *strings.Builder, s string, term byte, r7rs bool) {
	sb.WriteByte(term)
	for _, r := range s {
		switch r {
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\v', '\f':
			if r7rs {
				fmt.Fprintf(sb, `\x%X;`, r)
			} else if r == '\v' {
				sb.WriteString(`\v`)
			} else {
				sb.WriteString(`\f`)
			}
		case '\r':
			sb.WriteString(`\r`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			switch {
			case r == rune(term):
				sb.WriteByte('\\')
				sb.WriteRune(r)
			case !unicode.IsPrint(r):
				fmt.Fprintf(sb, `\x%X;`, r)
			default:
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte(term)
}

func appendElispString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			appendElispRune(sb, r)
		}
	}
	sb.WriteByte('"')
}

// appendElispUnibyte prints a byte vector the way Emacs prints unibyte
// strings: printable ASCII verbatim, everything else as octal escapes.
func appendElispUnibyte(sb *strings.Builder, b []byte) {
	sb.WriteByte('"')
	for _, c := range b {
		switch {
		case c == '"' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c >= 0x20 && c < 0x7f:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(sb, `\%03o`, c)
		}
	}
	sb.WriteByte('"')
}

var elispNamedEscapes = map[rune]string{
	'\a': `\a`,
	'\b': `\b`,
	'\t': `\t`,
	'\n': `\n`,
	'\v': `\v`,
	'\f': `\f`,
	'\r': `\r`,
	27:   `\e`,
	127:  `\d`,
}

func appendElispRune(sb *strings.Builder, r rune) {
	if esc, ok := elispNamedEscapes[r]; ok {
		sb.WriteString(esc)
		return
	}
	switch {
	case r < 0x20:
		fmt.Fprintf(sb, `\%03o`, r)
	case r == ' ' || unicode.IsPrint(r):
		sb.WriteRune(r)
	case r <= 0xffff:
		fmt.Fprintf(sb, `\u%04X`, r)
	default:
		fmt.Fprintf(sb, `\U%08X`, r)
	}
}

var schemeCharNamesR6RS = map[rune]string{
	0:    "nul",
	'\a': "alarm",
	'\b': "backspace",
	'\t': "tab",
	'\n': "newline",
	'\v': "vtab",
	'\f': "page",
	'\r': "return",
	27:   "esc",
	' ':  "space",
	127:  "delete",
}

var schemeCharNamesR7RS = map[rune]string{
	0:    "null",
	'\a': "alarm",
	'\b': "backspace",
	'\t': "tab",
	'\n': "newline",
	'\r': "return",
	27:   "escape",
	' ':  "space",
	127:  "delete",
}

func appendChar(sb *strings.Builder, r rune, syntax CharSyntax) {
	switch syntax {
	case CharSyntaxElisp:
		sb.WriteByte('?')
		switch {
		case r == ' ':
			sb.WriteString(`\s`)
		case strings.ContainsRune(`()[]\;"'`+"`#,", r):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r < 0x20 && elispNamedEscapes[r] == "":
			sb.WriteString(`\^`)
			sb.WriteRune(r + '@')
		default:
			appendElispRune(sb, r)
		}
		return
	case CharSyntaxR7RS:
		sb.WriteString(`#\`)
		if name, ok := schemeCharNamesR7RS[r]; ok {
			sb.WriteString(name)
			return
		}
	default:
		sb.WriteString(`#\`)
		if name, ok := schemeCharNamesR6RS[r]; ok {
			sb.WriteString(name)
			return
		}
	}
	if !unicode.IsPrint(r) {
		fmt.Fprintf(sb, "x%X", r)
		return
	}
	sb.WriteRune(r)
}

// symbolReadsBack reports whether name, printed bare, would read back as the
// symbol name under the parse preset matching opts.
func symbolReadsBack(name string, opts PrintOptions) bool {
	if name == "" || name == "." {
		return false
	}
	numbers := NumberSyntaxScheme
	if opts.elisp() {
		numbers = NumberSyntaxElisp
	}
	if _, ok, err := parseNumber(name, numbers); ok || err != nil {
		return false
	}
	switch opts.KeywordStyle {
	case KeywordStyleColonPrefix:
		if strings.HasPrefix(name, ":") {
			return false
		}
	case KeywordStyleColonPostfix:
		if strings.HasSuffix(name, ":") {
			return false
		}
	}
	if opts.elisp() {
		if name == "nil" || name == "t" || strings.HasPrefix(name, "?") {
			return false
		}
	}
	if name[0] == '#' {
		return false
	}
	for _, r := range name {
		if symbolCharNeedsEscape(r, opts) {
			return false
		}
	}
	return true
}

func symbolCharNeedsEscape(r rune, opts PrintOptions) bool {
	if isWhitespace(r) || !unicode.IsPrint(r) {
		return true
	}
	switch r {
	case '(', ')', '[', ']', '"', ';', '\\', '\'', '`', ',':
		return true
	case '|':
		return !opts.elisp()
	}
	return false
}

func appendSymbol(sb *strings.Builder, name string, opts PrintOptions) {
	if symbolReadsBack(name, opts) {
		sb.WriteString(name)
		return
	}
	switch {
	case opts.elisp():
		if name == "" {
			sb.WriteString("##")
			return
		}
		for i, r := range name {
			if i == 0 || symbolCharNeedsEscape(r, opts) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	case opts.CharSyntax == CharSyntaxR7RS || name == "":
		appendSchemeString(sb, name, '|', opts.CharSyntax == CharSyntaxR7RS)
	default:
		// R6RS inline hex escapes; the first character is always escaped so
		// the name cannot read as a number, dot or keyword.
		for i, r := range name {
			if i == 0 || symbolCharNeedsEscape(r, opts) || r == '|' {
				fmt.Fprintf(sb, `\x%X;`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
}
