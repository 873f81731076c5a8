package lexpr

import (
	"math"
	"testing"
)

func TestNumber_Representation(t *testing.T) {
	tests := []struct {
		name    string
		n       Number
		isUint  bool
		isInt   bool
		isFloat bool
		str     string
	}{
		{name: "zero", n: Int64Number(0), isUint: true, isInt: true, str: "0"},
		{name: "positive int64", n: Int64Number(7), isUint: true, isInt: true, str: "7"},
		{name: "negative", n: Int64Number(-7), isInt: true, str: "-7"},
		{name: "large uint", n: Uint64Number(math.MaxUint64), isUint: true, str: "18446744073709551615"},
		{name: "max int64 as uint", n: Uint64Number(math.MaxInt64), isUint: true, isInt: true, str: "9223372036854775807"},
		{name: "float", n: Float64Number(0.5), isFloat: true, str: "0.5"},
		{name: "integral float", n: Float64Number(-3), isFloat: true, str: "-3.0"},
		{name: "tiny float", n: Float64Number(1e-7), isFloat: true, str: "1e-07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.IsUint64(); got != tt.isUint {
				t.Errorf("IsUint64() = %v", got)
			}
			if got := tt.n.IsInt64(); got != tt.isInt {
				t.Errorf("IsInt64() = %v", got)
			}
			if got := tt.n.IsFloat64(); got != tt.isFloat {
				t.Errorf("IsFloat64() = %v", got)
			}
			if got := tt.n.String(); got != tt.str {
				t.Errorf("String() = %v, want %v", got, tt.str)
			}
		})
	}
}

func TestNumber_Cmp(t *testing.T) {
	nan := Float64Number(math.NaN())
	tests := []struct {
		name string
		a, b Number
		want int
	}{
		{name: "equal ints", a: Int64Number(3), b: Uint64Number(3), want: 0},
		{name: "int and float", a: Int64Number(1), b: Float64Number(1.0), want: 0},
		{name: "negative and unsigned", a: Int64Number(-1), b: Uint64Number(math.MaxUint64), want: -1},
		{name: "float above int", a: Float64Number(2.5), b: Int64Number(2), want: 1},
		{name: "huge uint and float", a: Uint64Number(math.MaxUint64), b: Float64Number(1e19), want: 1},
		{name: "infinity", a: Float64Number(math.Inf(1)), b: Uint64Number(math.MaxUint64), want: 1},
		{name: "negative infinity", a: Float64Number(math.Inf(-1)), b: Int64Number(math.MinInt64), want: -1},
		{name: "above 2^53", a: Uint64Number(1<<53 + 1), b: Float64Number(1 << 53), want: 1},
		{name: "max uint below 2^64", a: Uint64Number(math.MaxUint64), b: Float64Number(math.Ldexp(1, 64)), want: -1},
		{name: "fraction above negative", a: Float64Number(-2.5), b: Int64Number(-3), want: 1},
		{name: "fraction below negative", a: Float64Number(-2.5), b: Int64Number(-2), want: -1},
		{name: "min int64 exact", a: Int64Number(math.MinInt64), b: Float64Number(-math.Ldexp(1, 63)), want: 0},
		{name: "nan first", a: nan, b: Float64Number(math.Inf(-1)), want: -1},
		{name: "nan last", a: Int64Number(0), b: nan, want: 1},
		{name: "nan equal", a: nan, b: nan, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cmp(tt.b); got != tt.want {
				t.Errorf("Cmp() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Cmp(tt.a); got != -tt.want {
				t.Errorf("reversed Cmp() = %v, want %v", got, -tt.want)
			}
		})
	}
}

func TestNumber_Equal(t *testing.T) {
	if !Int64Number(4).Equal(Uint64Number(4)) {
		t.Error("4 should equal 4")
	}
	if Int64Number(4).Equal(Float64Number(4)) {
		t.Error("exact and inexact 4 should differ")
	}
	if Int64Number(-4).Equal(Int64Number(-5)) {
		t.Error("-4 should not equal -5")
	}
}

func TestNumber_Conversions(t *testing.T) {
	if _, ok := Uint64Number(math.MaxUint64).AsInt64(); ok {
		t.Error("MaxUint64 does not fit int64")
	}
	if _, ok := Float64Number(1).AsInt64(); ok {
		t.Error("floats do not convert to int64")
	}
	if _, ok := Float64Number(1).AsUint64(); ok {
		t.Error("floats do not convert to uint64")
	}
	if f, ok := Int64Number(-2).AsFloat64(); !ok || f != -2 {
		t.Errorf("AsFloat64() = %v", f)
	}
}

func TestParseNumberToken(t *testing.T) {
	tests := []struct {
		tok    string
		syntax NumberSyntax
		ok     bool
		want   Number
	}{
		{tok: "12", ok: true, want: Int64Number(12)},
		{tok: "-0", ok: true, want: Int64Number(0)},
		{tok: "1.", ok: true, want: Float64Number(1)},
		{tok: "1.", syntax: NumberSyntaxElisp, ok: true, want: Int64Number(1)},
		{tok: "-2.", syntax: NumberSyntaxElisp, ok: true, want: Int64Number(-2)},
		{tok: "1e400", ok: true, want: Float64Number(math.Inf(1))},
		{tok: "1e", ok: false},
		{tok: "e1", ok: false},
		{tok: "0x10", ok: false},
		{tok: "inf", ok: false},
		{tok: "1_000", ok: false},
		{tok: "+", ok: false},
		{tok: "+inf.0", syntax: NumberSyntaxElisp, ok: false},
		{tok: "1.0e+INF", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			got, ok, err := parseNumber(tt.tok, tt.syntax)
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.ok {
				t.Fatalf("parseNumber(%q) ok = %v", tt.tok, ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseNumber(%q) = %v, want %v", tt.tok, got, tt.want)
			}
		})
	}
}
