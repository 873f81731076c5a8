package lexpr

import (
	"fmt"
	"reflect"
	"sort"
)

// From converts a Go value into a Value.
//
// Slices become proper lists (byte slices become byte vectors), arrays
// become vectors and maps with string keys become association lists of
// (key . value) pairs with symbol keys, in key order. A nil interface or
// pointer is Nil.
func From(x any) (*Value, error) {
	switch x := x.(type) {
	case nil:
		return Nil(), nil
	case *Value:
		return orNil(x), nil
	case Value:
		return &x, nil
	case Number:
		return Num(x), nil
	case *Cons:
		if x == nil {
			return Nil(), nil
		}
		return &Value{Kind: KindCons, Cons: x}, nil
	case []byte:
		return Bytes(x), nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), nil
		}
		items, err := fromElements(rv)
		if err != nil {
			return nil, err
		}
		return List(items...), nil
	case reflect.Array:
		items, err := fromElements(rv)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: KindVector, Vector: items}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		entries := make([]*Value, len(keys))
		for i, k := range keys {
			item, err := From(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
			if err != nil {
				return nil, err
			}
			entries[i] = Pair(Symbol(k), item)
		}
		return List(entries...), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Nil(), nil
		}
		return From(rv.Elem().Interface())
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
}

func fromElements(rv reflect.Value) ([]*Value, error) {
	items := make([]*Value, rv.Len())
	for i := range items {
		item, err := From(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

func MustFrom(x any) (n *Value) {
	var err error
	n, err = From(x)
	if err != nil {
		panic(err)
	}
	return
}

func MustParse(s string) (n *Value) {
	var err error
	n, err = ParseString(s)
	if err != nil {
		panic(err)
	}
	return
}

// Sexp builds a value from a template written in the default syntax.
// Placeholders are quasiquote forms on the symbol _: ,_ is replaced by the
// next argument and ,@_ splices the elements of the next argument, which
// must convert to a proper list or a vector. Placeholders are filled in
// reading order.
//
//	Sexp("(define ,_ (list ,@_))", Symbol("xs"), []int{1, 2, 3})
//	// (define xs (list 1 2 3))
func Sexp(template string, args ...any) (*Value, error) {
	v, err := ParseString(template)
	if err != nil {
		return nil, err
	}

	f := &templateFiller{args: args}
	v, err = f.fill(v)
	if err != nil {
		return nil, err
	}
	if f.next != len(args) {
		return nil, fmt.Errorf("%w: %d placeholders, %d arguments", ErrTemplateArgs, f.next, len(args))
	}
	return v, nil
}

func MustSexp(template string, args ...any) (n *Value) {
	var err error
	n, err = Sexp(template, args...)
	if err != nil {
		panic(err)
	}
	return
}

type templateFiller struct {
	args []any
	next int
}

func (f *templateFiller) take() (*Value, error) {
	if f.next >= len(f.args) {
		return nil, fmt.Errorf("%w: more than %d placeholders", ErrTemplateArgs, len(f.args))
	}
	arg := f.args[f.next]
	f.next++
	return From(arg)
}

func (f *templateFiller) splice() ([]*Value, error) {
	v, err := f.take()
	if err != nil {
		return nil, err
	}
	if v.IsVector() {
		return v.Vector, nil
	}
	items, ok := v.AsSlice()
	if !ok {
		return nil, fmt.Errorf("%w: cannot splice %v", ErrTemplateArgs, v.Kind)
	}
	return items, nil
}

// isPlaceholder reports whether v is (op _).
func isPlaceholder(v *Value, op string) bool {
	if !v.IsCons() {
		return false
	}
	items, ok := v.AsSlice()
	if !ok || len(items) != 2 {
		return false
	}
	head, _ := items[0].AsSymbol()
	arg, _ := items[1].AsSymbol()
	return items[0].IsSymbol() && head == op && items[1].IsSymbol() && arg == "_"
}

func (f *templateFiller) fill(v *Value) (*Value, error) {
	switch {
	case isPlaceholder(v, "unquote"):
		return f.take()
	case v.IsCons():
		return f.fillList(v)
	case v.IsVector():
		items, err := f.fillItems(v.Vector)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: KindVector, Vector: items}, nil
	}
	return v, nil
}

func (f *templateFiller) fillItems(in []*Value) ([]*Value, error) {
	out := make([]*Value, 0, len(in))
	for _, item := range in {
		if isPlaceholder(item, "unquote-splicing") {
			spliced, err := f.splice()
			if err != nil {
				return nil, err
			}
			out = append(out, spliced...)
			continue
		}
		filled, err := f.fill(item)
		if err != nil {
			return nil, err
		}
		out = append(out, filled)
	}
	return out, nil
}

// fillList walks the chain cell by cell so that a placeholder in tail
// position, (a . ,_), which reads as (a unquote _), fills the tail.
func (f *templateFiller) fillList(v *Value) (*Value, error) {
	items := make([]*Value, 0, 8)
	cur := v
	for cur.IsCons() {
		if cur != v && isPlaceholder(cur, "unquote") {
			tail, err := f.take()
			if err != nil {
				return nil, err
			}
			return ImproperList(items, tail), nil
		}
		filled, err := f.fillItems([]*Value{cur.Cons.Car()})
		if err != nil {
			return nil, err
		}
		items = append(items, filled...)
		cur = cur.Cons.Cdr()
	}
	tail, err := f.fill(cur)
	if err != nil {
		return nil, err
	}
	return ImproperList(items, tail), nil
}
