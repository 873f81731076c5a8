package lexpr

import (
	"io"
	"strconv"
	"strings"
)

// Printer writes values in the syntax selected by its options.
type Printer struct {
	w    io.Writer
	opts PrintOptions
}

func NewPrinter(w io.Writer, opts PrintOptions) *Printer {
	return &Printer{w: w, opts: opts}
}

func (p *Printer) Print(v *Value) error {
	_, err := io.WriteString(p.w, ToString(v, p.opts))
	return err
}

// Print writes v to w with the default options.
func Print(w io.Writer, v *Value) error {
	return NewPrinter(w, DefaultPrintOptions()).Print(v)
}

func ToString(v *Value, opts PrintOptions) string {
	var sb strings.Builder
	appendToBuilder(&sb, v, opts)
	return sb.String()
}

func appendToBuilder(sb *strings.Builder, v *Value, opts PrintOptions) {
	switch v.kind() {
	case KindNil:
		switch opts.NilStyle {
		case NilStyleSymbol:
			sb.WriteString("nil")
		case NilStyleEmptyList:
			sb.WriteString("()")
		default:
			sb.WriteString("#nil")
		}
	case KindNull:
		sb.WriteString("()")
	case KindBool:
		appendBool(sb, v.Bool, opts.BoolStyle)
	case KindNumber:
		sb.WriteString(v.Number.format(opts.NumberSyntax))
	case KindChar:
		appendChar(sb, v.Char, opts.CharSyntax)
	case KindString:
		if opts.StringSyntax == StringSyntaxElisp {
			appendElispString(sb, v.Text)
		} else {
			appendSchemeString(sb, v.Text, '"', opts.StringSyntax == StringSyntaxR7RS)
		}
	case KindSymbol:
		appendSymbol(sb, v.Text, opts)
	case KindKeyword:
		appendKeyword(sb, v.Text, opts)
	case KindBytes:
		appendBytes(sb, v.Octets, opts.BytesStyle)
	case KindVector:
		opener, closer := "#(", ")"
		if opts.VectorStyle == VectorStyleBrackets {
			opener, closer = "[", "]"
		}
		sb.WriteString(opener)
		for i, item := range v.Vector {
			if i > 0 {
				sb.WriteByte(' ')
			}
			appendToBuilder(sb, item, opts)
		}
		sb.WriteString(closer)
	case KindCons:
		sb.WriteByte('(')
		it := v.Cons.Iter()
		for first := true; it.Next(); first = false {
			if !first {
				sb.WriteByte(' ')
			}
			cell := it.Cell()
			appendToBuilder(sb, cell.Car(), opts)
			if tail := cell.Cdr(); tail.kind() != KindCons && tail.kind() != KindNull {
				sb.WriteString(" . ")
				appendToBuilder(sb, tail, opts)
			}
		}
		sb.WriteByte(')')
	}
}

func appendBool(sb *strings.Builder, b bool, style BoolStyle) {
	switch style {
	case BoolStyleSymbol:
		if b {
			sb.WriteString("t")
		} else {
			sb.WriteString("nil")
		}
	case BoolStyleLongToken:
		if b {
			sb.WriteString("#true")
		} else {
			sb.WriteString("#false")
		}
	default:
		if b {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	}
}

func appendKeyword(sb *strings.Builder, name string, opts PrintOptions) {
	var body strings.Builder
	for _, r := range name {
		if symbolCharNeedsEscape(r, opts) {
			body.WriteByte('\\')
			if !opts.elisp() {
				body.WriteString("x" + strconv.FormatInt(int64(r), 16) + ";")
				continue
			}
		}
		body.WriteRune(r)
	}

	switch opts.KeywordStyle {
	case KeywordStyleColonPrefix:
		sb.WriteByte(':')
		sb.WriteString(body.String())
	case KeywordStyleColonPostfix:
		sb.WriteString(body.String())
		sb.WriteByte(':')
	default:
		sb.WriteString("#:")
		sb.WriteString(body.String())
	}
}

func appendBytes(sb *strings.Builder, b []byte, style BytesStyle) {
	switch style {
	case BytesStyleElisp:
		appendElispUnibyte(sb, b)
		return
	case BytesStyleR7RS:
		sb.WriteString("#u8(")
	default:
		sb.WriteString("#vu8(")
	}
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(c)))
	}
	sb.WriteByte(')')
}
