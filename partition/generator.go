package partition

// VisitFunc receives each partition as it is generated. Returning an error
// stops the enumeration and the error is returned by Generate unchanged.
type VisitFunc func(p Partition) error

// Generator enumerates every partition of n into exactly k parts (or blocks).
//
// Generate must emit each partition exactly once, in a deterministic order,
// and must return without visiting anything for degenerate input.
type Generator interface {
	Name() string
	Mode() Mode
	Generate(n, k int, visit VisitFunc) error
}

// degenerate reports whether no partition of n into k parts exists.
// n == 0, k == 0 is not degenerate: it has the single empty partition.
func degenerate(n, k int) bool {
	return n < 0 || k < 0 || k > n || (k == 0 && n > 0)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
