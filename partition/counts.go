package partition

import (
	"math"
	"math/bits"

	"github.com/teranos/partgen/errors"
)

// saturated marks a table entry whose true value does not fit in a uint64.
const saturated = math.MaxUint64

// Counts memoises p(n,k), the number of integer partitions of n into exactly
// k parts, and S(n,k), the Stirling numbers of the second kind. Tables grow
// on demand and are kept for the lifetime of the value.
//
// Arithmetic saturates at math.MaxUint64; a saturated entry is reported as
// ErrCountOverflow.
type Counts struct {
	partitions [][]uint64
	stirling   [][]uint64
}

func NewCounts() *Counts {
	return &Counts{
		partitions: [][]uint64{{1}},
		stirling:   [][]uint64{{1}},
	}
}

// Count returns the number of partitions of n into k parts for mode.
func (c *Counts) Count(mode Mode, n, k int) (uint64, error) {
	switch mode {
	case ModeInteger:
		return c.Partitions(n, k)
	case ModeSet:
		return c.Stirling2(n, k)
	}
	return 0, errors.Newf("no count for mode %s", mode)
}

// Partitions returns p(n,k), using p(n,k) = p(n-1,k-1) + p(n-k,k).
func (c *Counts) Partitions(n, k int) (uint64, error) {
	if degenerate(n, k) {
		return 0, nil
	}
	for m := len(c.partitions); m <= n; m++ {
		row := make([]uint64, m+1)
		for j := 1; j <= m; j++ {
			v := c.partitions[m-1][j-1]
			if j <= m-j {
				v = addSat(v, c.partitions[m-j][j])
			}
			row[j] = v
		}
		c.partitions = append(c.partitions, row)
	}
	return checked(c.partitions[n][k], "p", n, k)
}

// Stirling2 returns S(n,k), using S(n,k) = k*S(n-1,k) + S(n-1,k-1).
func (c *Counts) Stirling2(n, k int) (uint64, error) {
	if degenerate(n, k) {
		return 0, nil
	}
	for m := len(c.stirling); m <= n; m++ {
		row := make([]uint64, m+1)
		for j := 1; j <= m; j++ {
			v := c.stirling[m-1][j-1]
			if j <= m-1 {
				v = addSat(v, mulSat(uint64(j), c.stirling[m-1][j]))
			}
			row[j] = v
		}
		c.stirling = append(c.stirling, row)
	}
	return checked(c.stirling[n][k], "S", n, k)
}

func checked(v uint64, fn string, n, k int) (uint64, error) {
	if v == saturated {
		return 0, errors.Wrapf(errors.ErrCountOverflow, "%s(%d,%d)", fn, n, k)
	}
	return v, nil
}

func addSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return saturated
	}
	return sum
}

func mulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return saturated
	}
	return lo
}
