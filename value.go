package lexpr

type Kind int

const (
	KindNil Kind = iota
	KindNull
	KindBool
	KindNumber
	KindChar
	KindString
	KindSymbol
	KindKeyword
	KindBytes
	KindCons
	KindVector
)

var kindNames = [...]string{
	KindNil:     "nil",
	KindNull:    "null",
	KindBool:    "bool",
	KindNumber:  "number",
	KindChar:    "char",
	KindString:  "string",
	KindSymbol:  "symbol",
	KindKeyword: "keyword",
	KindBytes:   "bytes",
	KindCons:    "cons",
	KindVector:  "vector",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a single S-expression datum. Only the field matching Kind is
// meaningful; Text holds the name of strings, symbols and keywords.
//
// The zero Value, and a nil *Value, are the special nil value (Elisp's nil,
// Guile's #nil), which is distinct from the empty list Null.
type Value struct {
	Kind
	Bool   bool
	Number Number
	Char   rune
	Text   string
	Octets []byte
	Cons   *Cons
	Vector []*Value
}

func orNil(v *Value) *Value {
	if v == nil {
		return &Value{Kind: KindNil}
	}
	return v
}

func Nil() *Value  { return &Value{Kind: KindNil} }
func Null() *Value { return &Value{Kind: KindNull} }

func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

func Int(i int64) *Value     { return &Value{Kind: KindNumber, Number: Int64Number(i)} }
func Uint(u uint64) *Value   { return &Value{Kind: KindNumber, Number: Uint64Number(u)} }
func Float(f float64) *Value { return &Value{Kind: KindNumber, Number: Float64Number(f)} }
func Num(n Number) *Value    { return &Value{Kind: KindNumber, Number: n} }

func Char(r rune) *Value { return &Value{Kind: KindChar, Char: r} }

func String(s string) *Value  { return &Value{Kind: KindString, Text: s} }
func Symbol(s string) *Value  { return &Value{Kind: KindSymbol, Text: s} }
func Keyword(s string) *Value { return &Value{Kind: KindKeyword, Text: s} }

func Bytes(b []byte) *Value {
	if b == nil {
		b = make([]byte, 0)
	}
	return &Value{Kind: KindBytes, Octets: b}
}

// Pair returns a single cons cell holding car and cdr.
func Pair(car, cdr *Value) *Value {
	return &Value{Kind: KindCons, Cons: NewCons(car, cdr)}
}

func Vector(items ...*Value) *Value {
	elems := make([]*Value, len(items))
	for i, item := range items {
		elems[i] = orNil(item)
	}
	return &Value{Kind: KindVector, Vector: elems}
}

// List builds a proper list. With no items it returns Null.
func List(items ...*Value) *Value {
	return ImproperList(items, Null())
}

// ImproperList chains items in cons cells terminated by tail. A Null tail
// gives a proper list; with no items the tail itself is returned.
func ImproperList(items []*Value, tail *Value) *Value {
	result := orNil(tail)
	for i := len(items) - 1; i >= 0; i-- {
		result = Pair(items[i], result)
	}
	return result
}

// kind treats a KindCons value without a cell as the empty list.
func (v *Value) kind() Kind {
	switch {
	case v == nil:
		return KindNil
	case v.Kind == KindCons && v.Cons == nil:
		return KindNull
	}
	return v.Kind
}

func (v *Value) IsNil() bool     { return v.kind() == KindNil }
func (v *Value) IsNull() bool    { return v.kind() == KindNull }
func (v *Value) IsBool() bool    { return v.kind() == KindBool }
func (v *Value) IsNumber() bool  { return v.kind() == KindNumber }
func (v *Value) IsChar() bool    { return v.kind() == KindChar }
func (v *Value) IsString() bool  { return v.kind() == KindString }
func (v *Value) IsSymbol() bool  { return v.kind() == KindSymbol }
func (v *Value) IsKeyword() bool { return v.kind() == KindKeyword }
func (v *Value) IsBytes() bool   { return v.kind() == KindBytes }
func (v *Value) IsCons() bool    { return v.kind() == KindCons }
func (v *Value) IsVector() bool  { return v.kind() == KindVector }

// IsList reports whether v is Null or a cons chain terminated by Null.
func (v *Value) IsList() bool {
	switch v.kind() {
	case KindNull:
		return true
	case KindCons:
		_, tail := v.Cons.ToSlice()
		return tail.IsNull()
	}
	return false
}

// IsDottedList reports whether v is a cons chain terminated by anything other
// than Null.
func (v *Value) IsDottedList() bool {
	if v.kind() != KindCons {
		return false
	}
	_, tail := v.Cons.ToSlice()
	return !tail.IsNull()
}

func (v *Value) AsBool() (bool, bool) {
	if v.kind() != KindBool {
		return false, false
	}
	return v.Bool, true
}

func (v *Value) AsNumber() (Number, bool) {
	if v.kind() != KindNumber {
		return Number{}, false
	}
	return v.Number, true
}

func (v *Value) AsInt64() (int64, bool) {
	if v.kind() != KindNumber {
		return 0, false
	}
	return v.Number.AsInt64()
}

func (v *Value) AsUint64() (uint64, bool) {
	if v.kind() != KindNumber {
		return 0, false
	}
	return v.Number.AsUint64()
}

func (v *Value) AsFloat64() (float64, bool) {
	if v.kind() != KindNumber {
		return 0, false
	}
	return v.Number.AsFloat64()
}

func (v *Value) AsChar() (rune, bool) {
	if v.kind() != KindChar {
		return 0, false
	}
	return v.Char, true
}

func (v *Value) AsStr() (string, bool) {
	if v.kind() != KindString {
		return "", false
	}
	return v.Text, true
}

func (v *Value) AsSymbol() (string, bool) {
	if v.kind() != KindSymbol {
		return "", false
	}
	return v.Text, true
}

func (v *Value) AsKeyword() (string, bool) {
	if v.kind() != KindKeyword {
		return "", false
	}
	return v.Text, true
}

func (v *Value) AsBytes() ([]byte, bool) {
	if v.kind() != KindBytes {
		return nil, false
	}
	return v.Octets, true
}

func (v *Value) AsCons() *Cons {
	if v.kind() != KindCons {
		return nil
	}
	return v.Cons
}

func (v *Value) AsVector() []*Value {
	if v.kind() != KindVector {
		return nil
	}
	return v.Vector
}

// AsSlice returns the elements of a proper list. Null yields an empty slice.
func (v *Value) AsSlice() ([]*Value, bool) {
	switch v.kind() {
	case KindNull:
		return []*Value{}, true
	case KindCons:
		items, tail := v.Cons.ToSlice()
		if !tail.IsNull() {
			return nil, false
		}
		return items, true
	}
	return nil, false
}

// Len returns the number of elements of a list, vector or byte vector.
// Dotted lists count their cells.
func (v *Value) Len() int {
	switch v.kind() {
	case KindCons:
		return v.Cons.Len()
	case KindVector:
		return len(v.Vector)
	case KindBytes:
		return len(v.Octets)
	}
	return 0
}

// Index returns the i-th element of a list or vector, or nil.
func (v *Value) Index(i int) *Value {
	if i < 0 {
		return nil
	}
	switch v.kind() {
	case KindVector:
		if i >= len(v.Vector) {
			return nil
		}
		return v.Vector[i]
	case KindCons:
		it := v.Cons.Iter()
		for n := 0; it.Next(); n++ {
			if n == i {
				return it.Cell().Car()
			}
		}
	}
	return nil
}

// Get looks key up in an association list and returns the cdr of the first
// matching entry, or nil. Entries match when their car is a symbol, keyword
// or string named key.
func (v *Value) Get(key string) *Value {
	if v.kind() != KindCons {
		return nil
	}
	it := v.Cons.Iter()
	for it.Next() {
		entry := it.Cell().Car()
		if entry.kind() != KindCons {
			continue
		}
		car := entry.Cons.Car()
		switch car.kind() {
		case KindSymbol, KindKeyword, KindString:
			if car.Text == key {
				return entry.Cons.Cdr()
			}
		}
	}
	return nil
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b *Value) bool {
	for {
		if a.kind() != b.kind() {
			return false
		}
		switch a.kind() {
		case KindNil, KindNull:
			return true
		case KindBool:
			return a.Bool == b.Bool
		case KindNumber:
			return a.Number.Equal(b.Number)
		case KindChar:
			return a.Char == b.Char
		case KindString, KindSymbol, KindKeyword:
			return a.Text == b.Text
		case KindBytes:
			return string(a.Octets) == string(b.Octets)
		case KindVector:
			if len(a.Vector) != len(b.Vector) {
				return false
			}
			for i := range a.Vector {
				if !Equal(a.Vector[i], b.Vector[i]) {
					return false
				}
			}
			return true
		case KindCons:
			if !Equal(a.Cons.Car(), b.Cons.Car()) {
				return false
			}
			// cdr chains are compared in the loop, not by recursion
			a, b = a.Cons.Cdr(), b.Cons.Cdr()
			continue
		}
		return false
	}
}

func (v *Value) String() string {
	return ToString(v, DefaultPrintOptions())
}
