package lexpr

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/nukata/goarith"
)

type numberKind uint8

const (
	numPosInt numberKind = iota
	numNegInt
	numFloat
)

// Number is an integer or floating point number. Integers that fit a uint64
// are always stored unsigned; only negative integers use the int64 form.
type Number struct {
	n numberKind
	u uint64
	i int64
	f float64
}

func Uint64Number(u uint64) Number {
	return Number{n: numPosInt, u: u}
}

func Int64Number(i int64) Number {
	if i >= 0 {
		return Number{n: numPosInt, u: uint64(i)}
	}
	return Number{n: numNegInt, i: i}
}

func Float64Number(f float64) Number {
	return Number{n: numFloat, f: f}
}

func (n Number) IsUint64() bool { return n.n == numPosInt }

func (n Number) IsInt64() bool {
	switch n.n {
	case numPosInt:
		return n.u <= math.MaxInt64
	case numNegInt:
		return true
	}
	return false
}

func (n Number) IsFloat64() bool { return n.n == numFloat }

func (n Number) AsUint64() (uint64, bool) {
	if n.n != numPosInt {
		return 0, false
	}
	return n.u, true
}

func (n Number) AsInt64() (int64, bool) {
	switch n.n {
	case numPosInt:
		if n.u > math.MaxInt64 {
			return 0, false
		}
		return int64(n.u), true
	case numNegInt:
		return n.i, true
	}
	return 0, false
}

// AsFloat64 returns the number as a float64, converting integers.
func (n Number) AsFloat64() (float64, bool) {
	switch n.n {
	case numPosInt:
		return float64(n.u), true
	case numNegInt:
		return float64(n.i), true
	}
	return n.f, true
}

// Equal compares representation and value: 1 and 1.0 are not equal.
func (n Number) Equal(m Number) bool {
	if n.n != m.n {
		return false
	}
	switch n.n {
	case numPosInt:
		return n.u == m.u
	case numNegInt:
		return n.i == m.i
	}
	return n.f == m.f
}

func (n Number) arith() goarith.Number {
	switch n.n {
	case numPosInt:
		return goarith.AsNumber(new(big.Int).SetUint64(n.u))
	case numNegInt:
		return goarith.AsNumber(big.NewInt(n.i))
	}
	return goarith.AsNumber(n.f)
}

// Cmp compares the numeric values of n and m regardless of representation,
// returning -1, 0 or +1. NaN equals NaN and sorts before every other number.
func (n Number) Cmp(m Number) int {
	nNaN := n.n == numFloat && math.IsNaN(n.f)
	mNaN := m.n == numFloat && math.IsNaN(m.f)
	switch {
	case nNaN && mNaN:
		return 0
	case nNaN:
		return -1
	case mNaN:
		return 1
	}
	switch {
	case n.n != numFloat && m.n == numFloat && !math.IsInf(m.f, 0):
		return -cmpFloatInt(m.f, n)
	case n.n == numFloat && m.n != numFloat && !math.IsInf(n.f, 0):
		return cmpFloatInt(n.f, m)
	}
	return sign(n.arith().Cmp(m.arith()))
}

// cmpFloatInt compares a finite float with an integer without rounding the
// integer to float64.
func cmpFloatInt(f float64, i Number) int {
	fl := math.Floor(f)
	whole, _ := big.NewFloat(fl).Int(nil)
	c := sign(goarith.AsNumber(whole).Cmp(i.arith()))
	if c != 0 || fl == f {
		return c
	}
	return 1
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}

func (n Number) String() string {
	return n.format(NumberSyntaxScheme)
}

func (n Number) format(syntax NumberSyntax) string {
	switch n.n {
	case numPosInt:
		return strconv.FormatUint(n.u, 10)
	case numNegInt:
		return strconv.FormatInt(n.i, 10)
	}
	return formatFloat(n.f, syntax)
}

func formatFloat(f float64, syntax NumberSyntax) string {
	switch {
	case math.IsNaN(f):
		if syntax == NumberSyntaxElisp {
			return "0.0e+NaN"
		}
		return "+nan.0"
	case math.IsInf(f, 1):
		if syntax == NumberSyntaxElisp {
			return "1.0e+INF"
		}
		return "+inf.0"
	case math.IsInf(f, -1):
		if syntax == NumberSyntaxElisp {
			return "-1.0e+INF"
		}
		return "-inf.0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func isDigitIn(r rune, radix int) bool {
	switch {
	case r >= '0' && r <= '9':
		return int(r-'0') < radix
	case r >= 'a' && r <= 'z':
		return int(r-'a')+10 < radix
	case r >= 'A' && r <= 'Z':
		return int(r-'A')+10 < radix
	}
	return false
}

// isDecimalFloat reports whether s is [+-]digits[.digits][e[+-]digits] with at
// least one mantissa digit. strconv.ParseFloat alone also accepts "inf",
// hexadecimal mantissas and underscores.
func isDecimalFloat(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(rune(s[i])) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(rune(s[i])) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(rune(s[i])) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isInteger(s string, radix int) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if i == len(s) {
		return false
	}
	for _, r := range s[i:] {
		if !isDigitIn(r, radix) {
			return false
		}
	}
	return true
}

// parseInteger parses a signed integer in the given radix. Out-of-range
// decimal integers become floats when fallback is set.
func parseInteger(s string, radix int, fallback bool) (Number, error) {
	digits := strings.TrimPrefix(s, "+")
	if strings.HasPrefix(digits, "-") {
		i, err := strconv.ParseInt(digits, radix, 64)
		if err == nil {
			return Int64Number(i), nil
		}
		if fallback {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr == nil {
				return Float64Number(f), nil
			}
		}
		return Number{}, ErrNumberOutOfRange
	}
	u, err := strconv.ParseUint(digits, radix, 64)
	if err == nil {
		return Uint64Number(u), nil
	}
	if fallback {
		f, ferr := strconv.ParseFloat(digits, 64)
		if ferr == nil {
			return Float64Number(f), nil
		}
	}
	return Number{}, ErrNumberOutOfRange
}

// parseNumber classifies a token as a number. ok is false when the token is
// not numeric at all (it is then a symbol); err is set for numeric tokens
// that cannot be represented.
func parseNumber(tok string, syntax NumberSyntax) (n Number, ok bool, err error) {
	switch syntax {
	case NumberSyntaxElisp:
		switch {
		case strings.HasSuffix(tok, "e+INF") && isDecimalFloat(strings.TrimSuffix(tok, "e+INF")):
			if strings.HasPrefix(tok, "-") {
				return Float64Number(math.Inf(-1)), true, nil
			}
			return Float64Number(math.Inf(1)), true, nil
		case strings.HasSuffix(tok, "e+NaN") && isDecimalFloat(strings.TrimSuffix(tok, "e+NaN")):
			return Float64Number(math.NaN()), true, nil
		}
		// 1. is an integer in Elisp
		if trimmed := strings.TrimSuffix(tok, "."); trimmed != tok && isInteger(trimmed, 10) {
			n, err = parseInteger(trimmed, 10, true)
			return n, true, err
		}
	default:
		switch tok {
		case "+inf.0":
			return Float64Number(math.Inf(1)), true, nil
		case "-inf.0":
			return Float64Number(math.Inf(-1)), true, nil
		case "+nan.0", "-nan.0":
			return Float64Number(math.NaN()), true, nil
		}
	}

	if isInteger(tok, 10) {
		n, err = parseInteger(tok, 10, true)
		return n, true, err
	}
	if isDecimalFloat(tok) {
		// out of range literals come back as ±Inf
		f, _ := strconv.ParseFloat(tok, 64)
		return Float64Number(f), true, nil
	}
	return Number{}, false, nil
}

// parseRadixNumber parses the token following a #x, #o, #b or #d prefix.
func parseRadixNumber(tok string, radix int, syntax NumberSyntax) (Number, error) {
	if radix == 10 {
		n, ok, err := parseNumber(tok, syntax)
		if err != nil {
			return Number{}, err
		}
		if !ok {
			return Number{}, ErrInvalidNumber
		}
		return n, nil
	}
	if !isInteger(tok, radix) {
		return Number{}, ErrInvalidNumber
	}
	return parseInteger(tok, radix, false)
}
