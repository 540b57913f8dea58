package pveb

import (
	"math"
	"math/big"

	"github.com/y0ssar1an/q"
)

// debugTrace gates the q.Q debug tracing below. It is off by default;
// flip it in a debugger session or a focused test, never in a commit.
var debugTrace = false

// traceSplit records the hierarchical split of a key for debugging
// recursion depth and threshold behavior. It is called from the
// branch-split path of nodeSet in node.go.
func traceSplit(x, uNode, high, low uint64) {
	if !debugTrace {
		return
	}
	q.Q(x, uNode, high, low)
}

// ceilSqrt returns ceil(sqrt(u)) exactly, using arbitrary-precision
// arithmetic so it stays exact across the full uint64 range (including
// near 2^64, where float64's ~53 bits of mantissa would round).
//
// u == 0 is the sentinel for a universe of size 2^64 (lb == 0, ub ==
// math.MaxUint64 overflows a uint64 universe count by one).
func ceilSqrt(u uint64) uint64 {
	if u == 0 {
		return 1 << 32
	}
	if u <= 1 {
		return u
	}
	n := new(big.Int).SetUint64(u)
	root := new(big.Int).Sqrt(n)
	sq := new(big.Int).Mul(root, root)
	if sq.Cmp(n) == 0 {
		return root.Uint64()
	}
	return root.Uint64() + 1
}

// computeThreshold implements threshold = max(2, ceil(c*log2(log2(u))))
// when log2(log2(u)) is defined (u >= 4), else threshold = min(2, u).
func computeThreshold(c int, u uint64) int {
	var log2u float64
	switch {
	case u == 0:
		// sentinel for u == 2^64
		log2u = 64
	case u < 4:
		t := int(u)
		if t > 2 {
			t = 2
		}
		if t < 1 {
			t = 1
		}
		return t
	default:
		log2u = math.Log2(float64(u))
	}
	log2log2u := math.Log2(log2u)
	t := int(math.Ceil(float64(c) * log2log2u))
	if t < 2 {
		t = 2
	}
	return t
}
