package pveb

// Pair is a (key, value) pair produced by iteration and materialised
// by Items.
type Pair[T any] struct {
	Key   uint64
	Value T
}

// Iterator is a lazy, pull-based traversal over a Tree's (key, value)
// pairs in ascending or descending key order. It advances by a single
// Successor/Predecessor call per step, so the full key list is never
// materialised unless the caller asks for it (see Items/Keys).
//
// An Iterator is a snapshot view of the Tree it was created from:
// since Trees are immutable, later updates to that Tree (which produce
// a different *Tree value) never affect an in-flight Iterator.
type Iterator[T any] struct {
	tree    *Tree[T]
	reverse bool
	started bool
	done    bool
	cur     uint64
}

func newIterator[T any](t *Tree[T], reverse bool) *Iterator[T] {
	return &Iterator[T]{tree: t, reverse: reverse}
}

// Next returns the next (key, value) pair in order, or ok=false once
// iteration is exhausted.
func (it *Iterator[T]) Next() (key uint64, val T, ok bool) {
	if it.done {
		return 0, val, false
	}
	if !it.started {
		it.started = true
		if it.reverse {
			key, val, ok = it.tree.Max()
		} else {
			key, val, ok = it.tree.Min()
		}
	} else if it.reverse {
		key, val, ok, _ = it.tree.Predecessor(it.cur)
	} else {
		key, val, ok, _ = it.tree.Successor(it.cur)
	}
	if !ok {
		it.done = true
		return 0, val, false
	}
	it.cur = key
	return key, val, true
}
