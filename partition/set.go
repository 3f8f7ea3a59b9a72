package partition

// Set partition algorithm names. SimpleBacktracking is shared with the
// integer mode; the registry keeps the two namespaces apart.
const (
	AlgorithmLexicographic = "Lexicographic"
)

// SetBacktracking assigns block labels to elements 0..n-1 in order, as a
// restricted growth string. Labels are tried in ascending order, so
// partitions come out in lexicographic RGS order.
type SetBacktracking struct{}

var _ Generator = SetBacktracking{}

func NewSetBacktracking() SetBacktracking { return SetBacktracking{} }

func (SetBacktracking) Name() string { return AlgorithmSimpleBacktracking }

func (SetBacktracking) Mode() Mode { return ModeSet }

func (SetBacktracking) Generate(n, k int, visit VisitFunc) error {
	if degenerate(n, k) {
		return nil
	}
	labels := make([]int, n)
	return assignLabels(labels, 0, 0, k, visit)
}

// assignLabels labels element i when used distinct labels appear in
// labels[:i]. Element i may reuse any of them or open label `used`, as long
// as no more than k labels are opened and enough elements remain to open
// the ones still missing.
func assignLabels(labels []int, i, used, k int, visit VisitFunc) error {
	n := len(labels)
	if i == n {
		if used != k {
			return nil
		}
		return visit(Set{labels: labels, blocks: k})
	}
	after := n - i - 1
	for l := 0; l <= used && l < k; l++ {
		next := used
		if l == used {
			next++
		}
		if next+after < k {
			continue
		}
		labels[i] = l
		if err := assignLabels(labels, i+1, next, k, visit); err != nil {
			return err
		}
	}
	return nil
}

// SetLexicographic walks the same lexicographic RGS order as
// SetBacktracking without recursion: from the smallest string with exactly
// k labels, 0...0 1 2 ... k-1, it repeatedly increments the rightmost
// position that can grow and refills the suffix minimally.
type SetLexicographic struct{}

var _ Generator = SetLexicographic{}

func NewSetLexicographic() SetLexicographic { return SetLexicographic{} }

func (SetLexicographic) Name() string { return AlgorithmLexicographic }

func (SetLexicographic) Mode() Mode { return ModeSet }

func (SetLexicographic) Generate(n, k int, visit VisitFunc) error {
	if degenerate(n, k) {
		return nil
	}
	if n == 0 {
		return visit(Set{})
	}

	labels := make([]int, n)
	// prefixMax[i] is the largest label in labels[:i+1].
	prefixMax := make([]int, n)
	fillSuffix(labels, prefixMax, 0, k)

	for {
		if err := visit(Set{labels: labels, blocks: k}); err != nil {
			return err
		}

		i := n - 1
		for ; i >= 1; i-- {
			v := labels[i] + 1
			m := prefixMax[i-1]
			if v > m+1 || v > k-1 {
				continue
			}
			// positions after i must be able to open labels max(m,v)+1..k-1
			if n-1-i >= k-1-max(m, v) {
				break
			}
		}
		if i < 1 {
			return nil
		}

		labels[i]++
		prefixMax[i] = max(prefixMax[i-1], labels[i])
		fillSuffix(labels, prefixMax, i+1, k)
	}
}

// fillSuffix writes the smallest completion of labels[:from] that uses
// exactly k labels: zeros, then the missing labels in increasing order at
// the very end.
func fillSuffix(labels, prefixMax []int, from, k int) {
	n := len(labels)
	top := -1
	if from > 0 {
		top = prefixMax[from-1]
	}
	missing := k - 1 - top
	for j := from; j < n; j++ {
		if j >= n-missing {
			labels[j] = top + 1 + j - (n - missing)
		} else {
			labels[j] = 0
		}
		if j == 0 {
			prefixMax[j] = labels[j]
		} else {
			prefixMax[j] = max(prefixMax[j-1], labels[j])
		}
	}
}
