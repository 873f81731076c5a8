// Package lua exposes S-expression values to gopher-lua.
//
// Values map to Lua as follows:
//
//	nil                 nil
//	#t / #f             true / false
//	numbers             number
//	strings             string
//	symbols             {symbol="name"}
//	keywords            {keyword="name"}
//	characters          {char="c"}
//	byte vectors        {bytes="..."}
//	lists and ()        {list={...}, n=count[, tail=value]}
//	vectors             {vector={...}, n=count}
//
// n carries the element count so that nil elements survive the trip.
package lua

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/alttpo/lexpr"
	"github.com/yuin/gopher-lua"
)

// ModuleName is the name Preload registers the module under.
const ModuleName = "sexp"

var (
	ErrUnsupportedValue = errors.New("unsupported lua value")
	ErrInvalidChar      = errors.New("char must hold exactly one character")
)

func tagged(L *lua.LState, tag string, v lua.LValue) *lua.LTable {
	t := L.NewTable()
	t.RawSetString(tag, v)
	return t
}

func sequence(L *lua.LState, tag string, items []*lexpr.Value) *lua.LTable {
	seq := L.NewTable()
	for i, item := range items {
		seq.RawSetInt(i+1, ToLua(L, item))
	}
	t := tagged(L, tag, seq)
	t.RawSetString("n", lua.LNumber(len(items)))
	return t
}

// ToLua converts v into a Lua value owned by L.
func ToLua(L *lua.LState, v *lexpr.Value) lua.LValue {
	switch {
	case v.IsNil():
		return lua.LNil
	case v.IsBool():
		return lua.LBool(v.Bool)
	case v.IsNumber():
		f, _ := v.AsFloat64()
		return lua.LNumber(f)
	case v.IsString():
		return lua.LString(v.Text)
	case v.IsSymbol():
		return tagged(L, "symbol", lua.LString(v.Text))
	case v.IsKeyword():
		return tagged(L, "keyword", lua.LString(v.Text))
	case v.IsChar():
		return tagged(L, "char", lua.LString(string(v.Char)))
	case v.IsBytes():
		return tagged(L, "bytes", lua.LString(v.Octets))
	case v.IsNull():
		return sequence(L, "list", nil)
	case v.IsCons():
		items, tail := v.Cons.ToSlice()
		t := sequence(L, "list", items)
		if !tail.IsNull() {
			t.RawSetString("tail", ToLua(L, tail))
		}
		return t
	case v.IsVector():
		return sequence(L, "vector", v.Vector)
	}
	return lua.LNil
}

// FromLua converts a Lua value produced by ToLua, or written by hand in the
// same shape, back into a value. Integral numbers become integers.
func FromLua(v lua.LValue) (*lexpr.Value, error) {
	switch v := v.(type) {
	case *lua.LNilType:
		return lexpr.Nil(), nil
	case lua.LBool:
		return lexpr.Bool(bool(v)), nil
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return lexpr.Int(int64(f)), nil
		}
		return lexpr.Float(f), nil
	case lua.LString:
		return lexpr.String(string(v)), nil
	case *lua.LTable:
		return fromTable(v)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, v.Type())
}

func fromTable(t *lua.LTable) (*lexpr.Value, error) {
	if s, ok := t.RawGetString("symbol").(lua.LString); ok {
		return lexpr.Symbol(string(s)), nil
	}
	if s, ok := t.RawGetString("keyword").(lua.LString); ok {
		return lexpr.Keyword(string(s)), nil
	}
	if s, ok := t.RawGetString("char").(lua.LString); ok {
		r, size := utf8.DecodeRuneInString(string(s))
		if size == 0 || size != len(s) {
			return nil, ErrInvalidChar
		}
		return lexpr.Char(r), nil
	}
	if s, ok := t.RawGetString("bytes").(lua.LString); ok {
		return lexpr.Bytes([]byte(s)), nil
	}
	if seq, ok := t.RawGetString("list").(*lua.LTable); ok {
		items, err := fromSequence(t, seq)
		if err != nil {
			return nil, err
		}
		tail := lexpr.Null()
		if tv := t.RawGetString("tail"); tv != lua.LNil {
			tail, err = FromLua(tv)
			if err != nil {
				return nil, err
			}
		}
		return lexpr.ImproperList(items, tail), nil
	}
	if seq, ok := t.RawGetString("vector").(*lua.LTable); ok {
		items, err := fromSequence(t, seq)
		if err != nil {
			return nil, err
		}
		return lexpr.Vector(items...), nil
	}
	return nil, fmt.Errorf("%w: table without a symbol, keyword, char, bytes, list or vector field", ErrUnsupportedValue)
}

// maxHoles bounds how many nil elements n may declare beyond the entries a
// sequence actually stores.
const maxHoles = 1 << 16

func sequenceLen(owner, seq *lua.LTable) (int, error) {
	lv := owner.RawGetString("n")
	if lv == lua.LNil {
		return seq.Len(), nil
	}
	count, ok := lv.(lua.LNumber)
	f := float64(count)
	if !ok || f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: invalid element count %s", ErrUnsupportedValue, lv.String())
	}
	stored := 0
	seq.ForEach(func(k, _ lua.LValue) {
		i, ok := k.(lua.LNumber)
		if ok && float64(i) == math.Trunc(float64(i)) && i >= 1 && float64(i) <= f {
			stored++
		}
	})
	n := int(f)
	if n-stored > maxHoles {
		return 0, fmt.Errorf("%w: element count %d exceeds stored elements", ErrUnsupportedValue, n)
	}
	return n, nil
}

func fromSequence(owner, seq *lua.LTable) ([]*lexpr.Value, error) {
	n, err := sequenceLen(owner, seq)
	if err != nil {
		return nil, err
	}
	items := make([]*lexpr.Value, n)
	for i := range items {
		item, err := FromLua(seq.RawGetInt(i + 1))
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

// Loader is a lua.LGFunction returning the module table with parse and
// print functions:
//
//	local sexp = require("sexp")
//	local v, err = sexp.parse("(a b . c)", "r7rs")
//	local s, err = sexp.print(v, "elisp")
func Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"parse": parse,
		"print": printValue,
	})
	L.Push(mod)
	return 1
}

// Preload makes the module available to require under ModuleName.
func Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, Loader)
}

func dialectArg(L *lua.LState, n int) (lexpr.Dialect, bool) {
	d, err := lexpr.ParseDialect(L.OptString(n, "default"))
	if err != nil {
		L.ArgError(n, err.Error())
		return d, false
	}
	return d, true
}

func parse(L *lua.LState) int {
	src := L.CheckString(1)
	d, ok := dialectArg(L, 2)
	if !ok {
		return 0
	}

	v, err := lexpr.ParseStringWith(src, d.ParseOptions())
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(ToLua(L, v))
	return 1
}

func printValue(L *lua.LState) int {
	lv := L.CheckAny(1)
	d, ok := dialectArg(L, 2)
	if !ok {
		return 0
	}

	v, err := FromLua(lv)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(lexpr.ToString(v, d.PrintOptions())))
	return 1
}
