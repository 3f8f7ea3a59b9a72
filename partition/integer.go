package partition

// Integer partition algorithm names.
const (
	AlgorithmSimpleBacktracking = "SimpleBacktracking"
	AlgorithmHindenburg         = "Hindenburg"
)

// IntegerBacktracking builds parts left to right, keeping them
// non-increasing. Partitions come out in reverse lexicographic order:
// for n=5, k=2 that is "4 1" then "3 2".
type IntegerBacktracking struct{}

var _ Generator = IntegerBacktracking{}

func NewIntegerBacktracking() IntegerBacktracking { return IntegerBacktracking{} }

func (IntegerBacktracking) Name() string { return AlgorithmSimpleBacktracking }

func (IntegerBacktracking) Mode() Mode { return ModeInteger }

func (IntegerBacktracking) Generate(n, k int, visit VisitFunc) error {
	if degenerate(n, k) {
		return nil
	}
	parts := make(Integer, k)
	return fillParts(parts, 0, n, n, visit)
}

// fillParts chooses parts[i] given rem still to distribute and prev, the
// value of parts[i-1]. The candidate range keeps two invariants:
//   - lower bound ceil(rem/slots): later parts may not exceed this one, so
//     it must be at least the average of what is left
//   - upper bound min(prev, rem-(slots-1)): non-increasing order, and at
//     least 1 left for every remaining slot
//
// With both bounds in place the search never reaches a dead end.
func fillParts(parts Integer, i, rem, prev int, visit VisitFunc) error {
	slots := len(parts) - i
	if slots == 0 {
		return visit(parts)
	}
	lo := max(1, ceilDiv(rem, slots))
	hi := min(prev, rem-(slots-1))
	for v := hi; v >= lo; v-- {
		parts[i] = v
		if err := fillParts(parts, i+1, rem-v, v, visit); err != nil {
			return err
		}
	}
	return nil
}

// IntegerHindenburg is the iterative successor algorithm for partitions
// into exactly k parts (Hindenburg; Knuth, TAOCP 7.2.1.4, Algorithm H).
// It starts from (n-k+1, 1, ..., 1) and emits in colexicographic order.
type IntegerHindenburg struct{}

var _ Generator = IntegerHindenburg{}

func NewIntegerHindenburg() IntegerHindenburg { return IntegerHindenburg{} }

func (IntegerHindenburg) Name() string { return AlgorithmHindenburg }

func (IntegerHindenburg) Mode() Mode { return ModeInteger }

func (IntegerHindenburg) Generate(n, k int, visit VisitFunc) error {
	if degenerate(n, k) {
		return nil
	}
	switch k {
	case 0:
		return visit(Integer{})
	case 1:
		return visit(Integer{n})
	}

	// a is 1-indexed; a[k+1] = -1 stops the scan in the carry step.
	a := make([]int, k+2)
	a[1] = n - k + 1
	for j := 2; j <= k; j++ {
		a[j] = 1
	}
	a[k+1] = -1
	parts := Integer(a[1 : k+1])

	for {
		if err := visit(parts); err != nil {
			return err
		}

		// Move one unit from the first part to the second while that keeps
		// the order.
		if a[2] < a[1]-1 {
			a[1]--
			a[2]++
			continue
		}

		// Find the leftmost j > 2 with a[j] < a[1]-1, summing what we skip.
		j := 3
		s := a[1] + a[2] - 1
		for a[j] >= a[1]-1 {
			s += a[j]
			j++
		}
		if j > k {
			return nil
		}

		x := a[j] + 1
		a[j] = x
		for j--; j > 1; j-- {
			a[j] = x
			s -= x
		}
		a[1] = s
	}
}
