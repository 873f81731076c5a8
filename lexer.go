package lexpr

import (
	"io"
	"strings"
	"unicode"
)

// read returns the next rune and advances the position. Only one rune may be
// unread at a time, matching io.RuneScanner.
func (p *Parser) read() (r rune, err error) {
	r, _, err = p.s.ReadRune()
	if err != nil {
		return
	}
	p.prevLine, p.prevColumn = p.line, p.column
	if r == '\n' {
		p.line++
		p.column = 0
	} else {
		p.column++
	}
	return
}

func (p *Parser) unread() (err error) {
	err = p.s.UnreadRune()
	if err != nil {
		return
	}
	p.line, p.column = p.prevLine, p.prevColumn
	return
}

// readMore is read for positions where the datum has already started: a
// plain io.EOF becomes io.ErrUnexpectedEOF.
func (p *Parser) readMore() (r rune, err error) {
	r, err = p.read()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

// expect consumes the literal s or fails with ErrUnexpectedChar.
func (p *Parser) expect(s string) error {
	for _, want := range s {
		r, err := p.readMore()
		if err != nil {
			return err
		}
		if r != want {
			return ErrUnexpectedChar
		}
	}
	return nil
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return r > 0x7f && unicode.IsSpace(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigitIn(r, 16)
}

func hexValue(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10
	}
	return -1
}

// isDelimiter reports whether r ends a token.
func (o ParseOptions) isDelimiter(r rune) bool {
	if isWhitespace(r) {
		return true
	}
	switch r {
	case '(', ')', '[', ']', '"', ';':
		return true
	case '|':
		return !o.elisp()
	}
	return false
}

// token is a bare run of non-delimiter characters. Escaped tokens always
// read as symbols; firstEscaped and lastEscaped guard keyword detection.
type token struct {
	text         string
	escaped      bool
	firstEscaped bool
	lastEscaped  bool
}

// readToken reads up to the next delimiter, prepending prefix. EOF ends the
// token without error.
func (p *Parser) readToken(prefix string) (t token, err error) {
	var sb strings.Builder
	sb.WriteString(prefix)

	n := len(prefix)
	for {
		var r rune
		r, err = p.read()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			return
		}

		if p.opts.isDelimiter(r) {
			err = p.unread()
			if err != nil {
				return
			}
			break
		}

		if r == '\\' {
			r, err = p.readTokenEscape()
			if err != nil {
				return
			}
			t.escaped = true
			if n == 0 {
				t.firstEscaped = true
			}
			t.lastEscaped = true
		} else {
			t.lastEscaped = false
		}

		sb.WriteRune(r)
		n++
	}

	t.text = sb.String()
	return
}

// readTokenEscape handles a backslash inside a bare token: Elisp escapes any
// single character, Scheme only allows \xHH; inline hex escapes.
func (p *Parser) readTokenEscape() (rune, error) {
	r, err := p.readMore()
	if err != nil {
		return 0, err
	}
	if p.opts.elisp() {
		return r, nil
	}
	if r != 'x' && r != 'X' {
		return 0, ErrInvalidEscape
	}
	return p.readHexScalar(';')
}

// readHexScalar reads hex digits up to term and returns the scalar value.
func (p *Parser) readHexScalar(term rune) (rune, error) {
	var v rune
	digits := 0
	for {
		r, err := p.readMore()
		if err != nil {
			return 0, err
		}
		if r == term {
			break
		}
		if !isHexDigit(r) {
			return 0, ErrInvalidEscape
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

// readFixedHex reads exactly n hex digits.
func (p *Parser) readFixedHex(n int) (rune, error) {
	var v rune
	for i := 0; i < n; i++ {
		r, err := p.readMore()
		if err != nil {
			return 0, err
		}
		if !isHexDigit(r) {
			return 0, ErrInvalidEscape
		}
		v = v<<4 | hexValue(r)
	}
	return validScalar(v)
}

func validScalar(v rune) (rune, error) {
	if v < 0 || v > unicode.MaxRune || (v >= 0xd800 && v <= 0xdfff) {
		return 0, ErrInvalidUnicode
	}
	return v, nil
}

// skipLine discards a ; comment.
func (p *Parser) skipLine() error {
	for {
		r, err := p.read()
		if err != nil {
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}

// skipBlockComment discards a #| ... |# comment; the opening #| has been
// consumed. Block comments nest.
func (p *Parser) skipBlockComment() error {
	depth := 1
	var prev rune
	for depth > 0 {
		r, err := p.readMore()
		if err != nil {
			return err
		}
		switch {
		case prev == '|' && r == '#':
			depth--
			r = 0
		case prev == '#' && r == '|':
			depth++
			r = 0
		}
		prev = r
	}
	return nil
}
