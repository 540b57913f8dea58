package pveb

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"
	"testing/quick"

	"github.com/davecgh/go-spew/spew"
)

const propertyUniverse = 1 << 20

type opKind int

const (
	opSet opKind = iota
	opPop
	opUpdate
)

type pvebOp struct {
	kind opKind
	key  uint64
}

// pvebOpSeq implements quick.Generator so quick.Check can drive random
// Set/Pop/Update sequences against the tree.
type pvebOpSeq []pvebOp

func (pvebOpSeq) Generate(r *rand.Rand, size int) reflect.Value {
	n := 10000
	ops := make(pvebOpSeq, n)
	for i := range ops {
		kind := opSet
		switch r.Intn(4) {
		case 1:
			kind = opPop
		case 2:
			kind = opUpdate
		}
		ops[i] = pvebOp{
			kind: kind,
			key:  uint64(r.Intn(propertyUniverse)),
		}
	}
	return reflect.ValueOf(ops)
}

// runPvebOpSeq replays ops against both the tree and a reference
// map+sorted-keys model, returning a non-nil error (for quick.Check)
// on any mismatch. An opUpdate against a key the reference doesn't
// have yet falls back to an insert, same as Set.
func runPvebOpSeq(ops pvebOpSeq) error {
	tr, err := New[int](0, propertyUniverse-1, 50)
	if err != nil {
		return err
	}
	ref := map[uint64]int{}

	for i, op := range ops {
		switch op.kind {
		case opPop:
			tr, err = tr.Pop(op.key)
			if err != nil {
				return err
			}
			delete(ref, op.key)
		case opUpdate:
			if _, present := ref[op.key]; present {
				tr, err = tr.Update(op.key, i)
				if err != nil {
					return err
				}
				ref[op.key] = i
				continue
			}
			fallthrough
		default:
			tr, err = tr.Set(op.key, i)
			if err != nil {
				return err
			}
			if _, present := ref[op.key]; !present {
				ref[op.key] = i
			}
		}
	}

	if tr.Len() != len(ref) {
		return fmt.Errorf("len mismatch: tree=%d reference=%d", tr.Len(), len(ref))
	}

	keys := make([]uint64, 0, len(ref))
	for k := range ref {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for idx, k := range keys {
		got, err := tr.Get(k)
		if err != nil {
			return err
		}
		if got != ref[k] {
			return fmt.Errorf("value mismatch at key %d: want %d got %d", k, ref[k], got)
		}

		wantSucc, wantSuccOK := uint64(0), false
		if idx+1 < len(keys) {
			wantSucc, wantSuccOK = keys[idx+1], true
		}
		gotSucc, _, gotSuccOK, err := tr.Successor(k)
		if err != nil {
			return err
		}
		if gotSuccOK != wantSuccOK || (gotSuccOK && gotSucc != wantSucc) {
			return fmt.Errorf("successor(%d) mismatch: want (%d, %v) got (%d, %v)",
				k, wantSucc, wantSuccOK, gotSucc, gotSuccOK)
		}

		wantPred, wantPredOK := uint64(0), false
		if idx > 0 {
			wantPred, wantPredOK = keys[idx-1], true
		}
		gotPred, _, gotPredOK, err := tr.Predecessor(k)
		if err != nil {
			return err
		}
		if gotPredOK != wantPredOK || (gotPredOK && gotPred != wantPred) {
			return fmt.Errorf("predecessor(%d) mismatch: want (%d, %v) got (%d, %v)",
				k, wantPred, wantPredOK, gotPred, gotPredOK)
		}
	}
	return nil
}

func TestPropertyRandomOps(t *testing.T) {
	f := func(ops pvebOpSeq) bool {
		return runPvebOpSeq(ops) == nil
	}
	cfg := &quick.Config{MaxCount: 5}
	if err := quick.Check(f, cfg); err != nil {
		if cerr, ok := err.(*quick.CheckError); ok {
			t.Fatalf("random op sequence failed: %s\nfailing input:\n%s",
				runPvebOpSeq(cerr.In[0].(pvebOpSeq)), spew.Sdump(cerr.In[0]))
		}
		t.Fatal(err)
	}
}
