package lexpr

// Cons is a pair of values. Chains of cons cells whose cdr points at the next
// cell form lists; a chain ending in Null is a proper list, a chain ending in
// any other value is a dotted (improper) list.
type Cons struct {
	car *Value
	cdr *Value
}

func NewCons(car, cdr *Value) *Cons {
	return &Cons{car: orNil(car), cdr: orNil(cdr)}
}

func (c *Cons) Car() *Value { return c.car }
func (c *Cons) Cdr() *Value { return c.cdr }

func (c *Cons) SetCar(v *Value) { c.car = orNil(v) }
func (c *Cons) SetCdr(v *Value) { c.cdr = orNil(v) }

func (c *Cons) Pair() (car, cdr *Value) {
	return c.car, c.cdr
}

// Iter returns an iterator over the cells of the chain starting at c.
//
//	it := c.Iter()
//	for it.Next() {
//		fmt.Println(it.Cell().Car())
//	}
func (c *Cons) Iter() *Iter {
	return &Iter{cursor: c}
}

// Len counts the cells in the chain.
func (c *Cons) Len() int {
	n := 0
	for it := c.Iter(); it.Next(); {
		n++
	}
	return n
}

// ToSlice returns the cars of the chain and the cdr of its last cell. For
// proper lists the tail is Null.
func (c *Cons) ToSlice() (items []*Value, tail *Value) {
	items = make([]*Value, 0, 8)
	it := c.Iter()
	for it.Next() {
		cell := it.Cell()
		items = append(items, cell.car)
		if cell.cdr.kind() != KindCons {
			tail = cell.cdr
		}
	}
	return items, tail
}

// Iter walks a chain of cons cells. It stops after the first cell whose cdr
// is not a cons.
type Iter struct {
	cursor *Cons
	cell   *Cons
}

func (it *Iter) Next() bool {
	if it.cursor == nil {
		it.cell = nil
		return false
	}
	it.cell = it.cursor
	if it.cursor.cdr.kind() == KindCons {
		it.cursor = it.cursor.cdr.Cons
	} else {
		it.cursor = nil
	}
	return true
}

// Cell returns the cell reached by the last call to Next.
func (it *Iter) Cell() *Cons {
	return it.cell
}
