// Package partition enumerates integer partitions and set partitions.
//
// An integer partition of n into k parts is a non-increasing sequence of k
// positive integers summing to n. A set partition of {0, ..., n-1} into k
// blocks is a grouping into k non-empty, pairwise disjoint, unlabeled blocks.
//
// Generators stream every partition of a given (n, k) to a VisitFunc. The
// partition passed to the callback is only valid for the duration of the call:
// generators reuse one buffer for the whole enumeration, so callers that need
// to keep a partition must copy it (or its String form).
//
// Visitors accumulate a result over an enumeration without retaining
// partitions. Both generator kinds hand out the same Partition capability, so
// every visitor works in both modes.
//
// # Canonical forms
//
// Integer partitions are emitted in non-increasing order, which gives every
// multiset of parts exactly one representative. Set partitions are emitted as
// restricted growth strings (RGS): element 0 is in block 0 and element i may
// only use a label already used by elements 0..i-1 or the next unused label.
// A block is therefore identified by its smallest element and no permutation
// of blocks is ever emitted twice.
//
// # Boundary cases
//
// Degenerate requests (n < 0, k < 0, k > n, or k == 0 with n > 0) produce no
// partitions and no error. The empty request n == 0, k == 0 produces exactly
// one empty partition in both modes, matching p(0,0) = S(0,0) = 1.
//
// # Selection by name
//
// A Registry maps algorithm and visitor names to factories. It is an explicit
// value built once at startup and passed to the caller that needs it:
//
//	reg := partition.NewRegistry(partition.WithSampleSize(10))
//	gen, ok := reg.Generator(partition.ModeInteger, "SimpleBacktracking")
//	if !ok {
//	    // report reg.Algorithms(partition.ModeInteger)
//	}
//	v, _ := reg.Visitor("Counter")
//	err := gen.Generate(5, 2, func(p partition.Partition) error {
//	    v.Accept(p)
//	    return nil
//	})
//	fmt.Println(v.Result()) // 2
package partition
