package lexpr

import (
	"reflect"
	"testing"
)

func TestCons(t *testing.T) {
	c := NewCons(nil, Int(1))
	if !c.Car().IsNil() {
		t.Errorf("Car() = %v, want nil", c.Car())
	}
	c.SetCar(Symbol("a"))
	c.SetCdr(nil)
	car, cdr := c.Pair()
	if !Equal(car, Symbol("a")) || !cdr.IsNil() || cdr == nil {
		t.Errorf("Pair() = %v, %v", car, cdr)
	}
}

func TestCons_Iter(t *testing.T) {
	tests := []struct {
		name      string
		v         *Value
		wantItems []*Value
		wantTail  *Value
	}{
		{
			name:      "proper",
			v:         List(Int(1), Int(2), Int(3)),
			wantItems: []*Value{Int(1), Int(2), Int(3)},
			wantTail:  Null(),
		},
		{
			name:      "dotted",
			v:         MustParse("(1 2 . 3)"),
			wantItems: []*Value{Int(1), Int(2)},
			wantTail:  Int(3),
		},
		{
			name:      "single pair",
			v:         Pair(Symbol("k"), Vector()),
			wantItems: []*Value{Symbol("k")},
			wantTail:  Vector(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cars []*Value
			it := tt.v.Cons.Iter()
			for it.Next() {
				cars = append(cars, it.Cell().Car())
			}
			if it.Cell() != nil {
				t.Error("Cell() after the end should be nil")
			}
			if !reflect.DeepEqual(cars, tt.wantItems) {
				t.Errorf("Iter() cars = %v, want %v", cars, tt.wantItems)
			}

			items, tail := tt.v.Cons.ToSlice()
			if !reflect.DeepEqual(items, tt.wantItems) {
				t.Errorf("ToSlice() items = %v, want %v", items, tt.wantItems)
			}
			if !reflect.DeepEqual(tail, tt.wantTail) {
				t.Errorf("ToSlice() tail = %v, want %v", tail, tt.wantTail)
			}
			if got := tt.v.Cons.Len(); got != len(tt.wantItems) {
				t.Errorf("Len() = %v", got)
			}
		})
	}
}

func TestCons_Mutation(t *testing.T) {
	l := List(Int(1), Int(2))
	l.Cons.Cdr().Cons.SetCdr(Int(3))
	if got := l.String(); got != "(1 2 . 3)" {
		t.Errorf("after SetCdr = %v", got)
	}
	l.Cons.Cdr().Cons.SetCdr(List(Int(3)))
	if !l.IsList() || l.Len() != 3 {
		t.Errorf("after relinking = %v", l)
	}
}
