package pathctx

import "strconv"

// Idents hands out loop-index and object-key variable names that stay
// distinct across a nesting of elements/values forms: "i", "i1", "i2", ...
// for array indices and "k", "k1", "k2", ... for map keys, following the
// naming the reference emitter uses for the same purpose.
type Idents struct {
	nextIdx int
	nextKey int
}

// Index returns the next unused loop-index variable name.
func (id *Idents) Index() string {
	n := id.nextIdx
	id.nextIdx++
	return suffixed("i", n)
}

// Key returns the next unused map-key variable name.
func (id *Idents) Key() string {
	n := id.nextKey
	id.nextKey++
	return suffixed("k", n)
}

func suffixed(base string, n int) string {
	if n == 0 {
		return base
	}
	return base + strconv.Itoa(n)
}
