package pveb

// node is the vEB node algebra's single struct, tagged by its own
// universe against the tree-wide threshold rather than split across
// two Go types behind an interface: when uNode > threshold it is a
// branch and only cluster/summary are meaningful; when uNode <=
// threshold it is a leaf and only leafMap is meaningful. min/max/
// minData/maxData are always populated in both shapes (the min/max
// shortcut encoding).
//
// A node is never mutated after it is returned from a constructor;
// every update allocates a shallow copy and mutates the copy, sharing
// every subtree (cluster, summary, leafMap) it did not touch.
type node[T any] struct {
	uNode     uint64
	threshold int

	min, max         uint64
	minData, maxData T

	cluster *intMap[*node[T]] // branch only
	summary *node[T]          // branch only

	leafMap *intMap[T] // leaf only
}

func (n *node[T]) isBranch() bool {
	return n.uNode > uint64(n.threshold)
}

func clusterGet[T any](m *intMap[*node[T]], idx uint64) *node[T] {
	child, ok := m.get(idx)
	if !ok {
		return nil
	}
	return child
}

func newSingletonNode[T any](x, uNode uint64, threshold int, v T) *node[T] {
	n := &node[T]{
		uNode:     uNode,
		threshold: threshold,
		min:       x,
		max:       x,
		minData:   v,
		maxData:   v,
	}
	if n.isBranch() {
		return n
	}
	var m *intMap[T]
	n.leafMap = m.set(x, v)
	return n
}

func (n *node[T]) shallowCopy() *node[T] {
	cp := *n
	return &cp
}

// nodeSet inserts x=v into the subtree, growing the cluster/summary
// structure as needed. x equal to the subtree's min or max is a no-op.
// Other keys already present are not detected here: a leaf's map entry
// for such a key is replaced. Tree.Set checks Contains before calling
// nodeSet, so through the Tree API existing keys are never overwritten.
func nodeSet[T any](n *node[T], x, uNode uint64, threshold int, v T) *node[T] {
	if n == nil {
		return newSingletonNode(x, uNode, threshold, v)
	}
	if x == n.min || x == n.max {
		return n
	}
	nn := n.shallowCopy()
	if nn.isBranch() {
		if x < nn.min {
			x, nn.min = nn.min, x
			v, nn.minData = nn.minData, v
		} else if x > nn.max {
			nn.max, nn.maxData = x, v
		}
		uPrime := ceilSqrt(uNode)
		high, low := x/uPrime, x%uPrime
		traceSplit(x, uNode, high, low)
		if !nn.cluster.contains(high) {
			nn.summary = nodeSet(nn.summary, high, uPrime, threshold, v)
		}
		child := nodeSet(clusterGet(nn.cluster, high), low, uPrime, threshold, v)
		nn.cluster = nn.cluster.set(high, child)
		return nn
	}
	if x < nn.min {
		nn.min, nn.minData = x, v
	} else if x > nn.max {
		nn.max, nn.maxData = x, v
	}
	nn.leafMap = nn.leafMap.set(x, v)
	return nn
}

// nodeUpdate writes the replacement value into an already-present
// key's slot, for Update. Unlike nodeSet it refreshes minData/maxData
// when x is an extreme (both, if the subtree is a singleton and x is
// both), and always replaces the leaf map entry.
func nodeUpdate[T any](n *node[T], x, uNode uint64, threshold int, v T) *node[T] {
	if n == nil {
		return newSingletonNode(x, uNode, threshold, v)
	}
	nn := n.shallowCopy()
	isMin, isMax := x == nn.min, x == nn.max
	if isMin {
		nn.minData = v
	}
	if isMax {
		nn.maxData = v
	}
	if !nn.isBranch() {
		nn.leafMap = nn.leafMap.set(x, v)
		return nn
	}
	// The cluster holds a copy of every stored key except the current
	// min: nodeSet never inserts the min into the cluster, but it always
	// inserts (and keeps inserting) whichever key becomes the max, same
	// as any ordinary key. So x's duplicate must be refreshed here
	// unless x is the min shortcut.
	if isMin {
		return nn
	}
	uPrime := ceilSqrt(uNode)
	high, low := x/uPrime, x%uPrime
	child := nodeUpdate(clusterGet(nn.cluster, high), low, uPrime, threshold, v)
	nn.cluster = nn.cluster.set(high, child)
	return nn
}

// nodePop removes x from the subtree. The caller guarantees x is
// present in the subtree. Returns nil when the subtree becomes empty.
func nodePop[T any](n *node[T], x, uNode uint64, threshold int) *node[T] {
	if n == nil {
		return nil
	}
	nn := n.shallowCopy()
	if nn.isBranch() {
		uPrime := ceilSqrt(uNode)
		if x == nn.min {
			if nn.summary == nil {
				return nil
			}
			highPrime := nn.summary.min
			childPrime := clusterGet(nn.cluster, highPrime)
			x = highPrime*uPrime + childPrime.min
			nn.min, nn.minData = x, childPrime.minData
		}
		high, low := x/uPrime, x%uPrime
		t := nodePop(clusterGet(nn.cluster, high), low, uPrime, threshold)
		if t == nil {
			nn.cluster = nn.cluster.remove(high)
			nn.summary = nodePop(nn.summary, high, uPrime, threshold)
		} else {
			nn.cluster = nn.cluster.set(high, t)
		}
		if nn.summary == nil {
			nn.max, nn.maxData = nn.min, nn.minData
		} else {
			highPP := nn.summary.max
			childPP := clusterGet(nn.cluster, highPP)
			nn.max = highPP*uPrime + childPP.max
			nn.maxData = childPP.maxData
		}
		return nn
	}

	nn.leafMap = nn.leafMap.remove(x)
	if nn.leafMap.len() == 0 {
		return nil
	}
	minKey, minVal, _ := nn.leafMap.min()
	maxKey, maxVal, _ := nn.leafMap.max()
	nn.min, nn.minData = minKey, minVal
	nn.max, nn.maxData = maxKey, maxVal
	return nn
}

// nodeGet looks up x's value in the subtree.
func nodeGet[T any](n *node[T], x, uNode uint64, threshold int) (T, bool) {
	if n == nil {
		var zero T
		return zero, false
	}
	if n.isBranch() {
		if x == n.min {
			return n.minData, true
		}
		if x == n.max {
			return n.maxData, true
		}
		uPrime := ceilSqrt(uNode)
		high, low := x/uPrime, x%uPrime
		return nodeGet(clusterGet(n.cluster, high), low, uPrime, threshold)
	}
	return n.leafMap.get(x)
}

// nodeSuccessor finds the smallest key in the subtree strictly
// greater than x.
func nodeSuccessor[T any](n *node[T], x, uNode uint64, threshold int) (uint64, T, bool) {
	if n == nil {
		var zero T
		return 0, zero, false
	}
	if n.isBranch() {
		if x < n.min {
			return n.min, n.minData, true
		}
		uPrime := ceilSqrt(uNode)
		high, low := x/uPrime, x%uPrime
		child := clusterGet(n.cluster, high)
		if child != nil && low < child.max {
			lowSucc, v, ok := nodeSuccessor(child, low, uPrime, threshold)
			if ok {
				return high*uPrime + lowSucc, v, true
			}
		}
		highSucc, _, ok := nodeSuccessor(n.summary, high, uPrime, threshold)
		if !ok {
			var zero T
			return 0, zero, false
		}
		atHighSucc := clusterGet(n.cluster, highSucc)
		return highSucc*uPrime + atHighSucc.min, atHighSucc.minData, true
	}
	return n.leafMap.successor(x)
}

// nodePredecessor finds the largest key in the subtree strictly less
// than x, symmetric to nodeSuccessor.
func nodePredecessor[T any](n *node[T], x, uNode uint64, threshold int) (uint64, T, bool) {
	if n == nil {
		var zero T
		return 0, zero, false
	}
	if n.isBranch() {
		if x > n.max {
			return n.max, n.maxData, true
		}
		uPrime := ceilSqrt(uNode)
		high, low := x/uPrime, x%uPrime
		child := clusterGet(n.cluster, high)
		if child != nil && low > child.min {
			lowPred, v, ok := nodePredecessor(child, low, uPrime, threshold)
			if ok {
				return high*uPrime + lowPred, v, true
			}
		}
		highPred, _, ok := nodePredecessor(n.summary, high, uPrime, threshold)
		if !ok {
			// The min shortcut is not stored in the cluster, so it is
			// the only candidate left below every clustered key.
			if x > n.min {
				return n.min, n.minData, true
			}
			var zero T
			return 0, zero, false
		}
		atHighPred := clusterGet(n.cluster, highPred)
		return highPred*uPrime + atHighPred.max, atHighPred.maxData, true
	}
	return n.leafMap.predecessor(x)
}
