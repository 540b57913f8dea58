package pveb

import (
	"fmt"
	"strings"
)

// Tree is an immutable handle onto a van Emde Boas tree over the fixed
// integer universe [lb, ub]. Every mutating method returns a new
// *Tree; the receiver is left unchanged and remains safe to read, or
// to derive further trees from, concurrently and without locking.
type Tree[T any] struct {
	lb, ub    uint64
	c         int
	u         uint64 // ub - lb + 1; 0 is the sentinel for 2^64
	threshold int
	root      *node[T]
	length    int
}

// New constructs an empty Tree over [lb, ub] with recursion-threshold
// coefficient c. It fails with a *ConfigurationError if lb > ub or
// c < 1.
func New[T any](lb, ub uint64, c int) (*Tree[T], error) {
	if lb > ub {
		return nil, newConfigurationError("lb (%d) must be <= ub (%d)", lb, ub)
	}
	if c < 1 {
		return nil, newConfigurationError("c (%d) must be >= 1", c)
	}
	u := ub - lb + 1 // wraps to 0 when lb == 0 && ub == math.MaxUint64
	return &Tree[T]{
		lb:        lb,
		ub:        ub,
		c:         c,
		u:         u,
		threshold: computeThreshold(c, u),
	}, nil
}

// DefaultLb, DefaultUb and DefaultC are the library's default
// construction parameters: lb=0, ub=2^32-1, c=100.
const (
	DefaultLb uint64 = 0
	DefaultUb uint64 = 1<<32 - 1
	DefaultC  int    = 100
)

// Pveb is the library's factory: a fresh empty Tree over [lb, ub]
// with threshold coefficient c. It does not memoise by (lb, ub, c);
// callers that want to reuse a configuration should hold on to the
// returned empty Tree and derive further trees from it with Set.
func Pveb[T any](lb, ub uint64, c int) (*Tree[T], error) {
	return New[T](lb, ub, c)
}

// PvebDefault is Pveb with the library defaults (lb=0, ub=2^32-1,
// c=100).
func PvebDefault[T any]() *Tree[T] {
	t, err := Pveb[T](DefaultLb, DefaultUb, DefaultC)
	if err != nil {
		// unreachable: the defaults are always valid.
		panic(err)
	}
	return t
}

func (t *Tree[T]) checkKey(op string, x uint64) error {
	if x < t.lb || x > t.ub {
		return keyOutOfRangeError(op, x, t.lb, t.ub)
	}
	return nil
}

// Len returns the number of keys stored in the tree.
func (t *Tree[T]) Len() int {
	return t.length
}

// Lb returns the tree's lower bound.
func (t *Tree[T]) Lb() uint64 { return t.lb }

// Ub returns the tree's upper bound.
func (t *Tree[T]) Ub() uint64 { return t.ub }

// Contains reports whether x is present. It fails with a
// *PreconditionError if x is outside [lb, ub].
func (t *Tree[T]) Contains(x uint64) (bool, error) {
	if err := t.checkKey("Contains", x); err != nil {
		return false, err
	}
	_, found := nodeGet(t.root, x-t.lb, t.u, t.threshold)
	return found, nil
}

// Get returns the value stored at x, or ErrNotFound if x is absent.
func (t *Tree[T]) Get(x uint64) (T, error) {
	var zero T
	if err := t.checkKey("Get", x); err != nil {
		return zero, err
	}
	v, found := nodeGet(t.root, x-t.lb, t.u, t.threshold)
	if !found {
		return zero, ErrNotFound
	}
	return v, nil
}

// Set returns a new Tree with x mapped to v. If x is already present,
// Set is a no-op: the existing value is retained and t itself is
// returned (see Update for overwrite semantics).
func (t *Tree[T]) Set(x uint64, v T) (*Tree[T], error) {
	if err := t.checkKey("Set", x); err != nil {
		return nil, err
	}
	if found, _ := t.Contains(x); found {
		return t, nil
	}
	nt := *t
	nt.root = nodeSet(t.root, x-t.lb, t.u, t.threshold, v)
	nt.length = t.length + 1
	return &nt, nil
}

// Update returns a new Tree with x mapped to v, overwriting any
// existing value. x must already be present; use Set to insert a new
// key. Update and Set together give Set its insert-only contract
// without losing the ability to overwrite an existing value.
func (t *Tree[T]) Update(x uint64, v T) (*Tree[T], error) {
	if err := t.checkKey("Update", x); err != nil {
		return nil, err
	}
	found, _ := t.Contains(x)
	if !found {
		return nil, fmt.Errorf("pveb: Update: %w", ErrNotFound)
	}
	nt := *t
	nt.root = nodeUpdate(t.root, x-t.lb, t.u, t.threshold, v)
	return &nt, nil
}

// Pop returns a new Tree with x removed. If x is absent, Pop is a
// no-op: t itself is returned.
func (t *Tree[T]) Pop(x uint64) (*Tree[T], error) {
	if err := t.checkKey("Pop", x); err != nil {
		return nil, err
	}
	if found, _ := t.Contains(x); !found {
		return t, nil
	}
	nt := *t
	nt.root = nodePop(t.root, x-t.lb, t.u, t.threshold)
	nt.length = t.length - 1
	return &nt, nil
}

// Successor returns the smallest key strictly greater than x, and its
// value. ok is false if no such key exists.
func (t *Tree[T]) Successor(x uint64) (key uint64, val T, ok bool, err error) {
	if err = t.checkKey("Successor", x); err != nil {
		return 0, val, false, err
	}
	k, v, found := nodeSuccessor(t.root, x-t.lb, t.u, t.threshold)
	if !found {
		return 0, val, false, nil
	}
	return k + t.lb, v, true, nil
}

// Predecessor returns the largest key strictly less than x, and its
// value. ok is false if no such key exists.
func (t *Tree[T]) Predecessor(x uint64) (key uint64, val T, ok bool, err error) {
	if err = t.checkKey("Predecessor", x); err != nil {
		return 0, val, false, err
	}
	k, v, found := nodePredecessor(t.root, x-t.lb, t.u, t.threshold)
	if !found {
		return 0, val, false, nil
	}
	return k + t.lb, v, true, nil
}

// Min returns the smallest key and its value. ok is false for an
// empty tree.
func (t *Tree[T]) Min() (key uint64, val T, ok bool) {
	if t.root == nil {
		return 0, val, false
	}
	return t.root.min + t.lb, t.root.minData, true
}

// Max returns the largest key and its value. ok is false for an empty
// tree.
func (t *Tree[T]) Max() (key uint64, val T, ok bool) {
	if t.root == nil {
		return 0, val, false
	}
	return t.root.max + t.lb, t.root.maxData, true
}

// ExtractMin returns a new Tree with the minimum key removed. It is a
// no-op on an empty tree.
func (t *Tree[T]) ExtractMin() *Tree[T] {
	k, _, ok := t.Min()
	if !ok {
		return t
	}
	nt, err := t.Pop(k)
	if err != nil {
		// unreachable: k was just read from the tree.
		panic(err)
	}
	return nt
}

// ExtractMax returns a new Tree with the maximum key removed. It is a
// no-op on an empty tree.
func (t *Tree[T]) ExtractMax() *Tree[T] {
	k, _, ok := t.Max()
	if !ok {
		return t
	}
	nt, err := t.Pop(k)
	if err != nil {
		// unreachable: k was just read from the tree.
		panic(err)
	}
	return nt
}

// Iter returns a lazy iterator over (key, value) pairs in ascending
// key order, or descending if reverse is true.
func (t *Tree[T]) Iter(reverse bool) *Iterator[T] {
	return newIterator(t, reverse)
}

// ReverseIter returns a lazy iterator over (key, value) pairs in
// descending key order. Equivalent to Iter(true).
func (t *Tree[T]) ReverseIter() *Iterator[T] {
	return newIterator(t, true)
}

// Items materialises the tree's (key, value) pairs in order (ascending
// unless reverse is true). This traverses the whole tree; prefer Iter
// for large trees.
func (t *Tree[T]) Items(reverse bool) []Pair[T] {
	it := t.Iter(reverse)
	out := make([]Pair[T], 0, t.length)
	for {
		k, v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, Pair[T]{Key: k, Value: v})
	}
}

// Keys materialises the tree's keys in order (ascending unless reverse
// is true).
func (t *Tree[T]) Keys(reverse bool) []uint64 {
	it := t.Iter(reverse)
	out := make([]uint64, 0, t.length)
	for {
		k, _, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, k)
	}
}

// String renders the tree's contents as an ordered "key: value" list,
// for debugging. It is a convenience wrapper over Iter, not a core
// operation.
func (t *Tree[T]) String() string {
	var b strings.Builder
	b.WriteString("pveb.Tree{")
	it := t.Iter(false)
	first := true
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%d: %v", k, v)
	}
	b.WriteString("}")
	return b.String()
}
