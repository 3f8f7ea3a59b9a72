package partition

import (
	"fmt"
	"maps"

	"github.com/zeebo/xxh3"
)

// Visitor names.
const (
	VisitorCounter   = "Counter"
	VisitorChecksum  = "Checksum"
	VisitorSample    = "Sample"
	VisitorHistogram = "Histogram"
)

// DefaultSampleSize is the number of partitions kept by the Sample visitor
// unless configured otherwise.
const DefaultSampleSize = 5

// Visitor consumes partitions one at a time and accumulates a result.
//
// Accept must not keep a reference to p after it returns: generators reuse
// the same buffer for every partition. Reset returns the visitor to its
// initial state so one instance can serve several (n, k) pairs.
type Visitor interface {
	Accept(p Partition)
	Result() any
	Reset()
}

// Counter counts accepted partitions.
type Counter struct {
	count uint64
}

var _ Visitor = (*Counter)(nil)

func NewCounter() *Counter { return &Counter{} }

func (c *Counter) Accept(Partition) { c.count++ }

// Result returns the count as a uint64.
func (c *Counter) Result() any { return c.count }

func (c *Counter) Reset() { c.count = 0 }

// Count returns the number of partitions accepted since the last Reset.
func (c *Counter) Count() uint64 { return c.count }

// Checksum chains an xxh3 hash over the canonical key of every accepted
// partition, in order. Two enumerations have the same checksum when they
// emit the same partitions in the same order.
type Checksum struct {
	sum uint64
	buf []byte
}

var _ Visitor = (*Checksum)(nil)

func NewChecksum() *Checksum { return &Checksum{} }

func (c *Checksum) Accept(p Partition) {
	c.buf = p.AppendKey(c.buf[:0])
	c.sum = xxh3.HashSeed(c.buf, c.sum)
}

// Result returns the checksum as 16 hex digits.
func (c *Checksum) Result() any { return fmt.Sprintf("%016x", c.sum) }

func (c *Checksum) Reset() { c.sum = 0 }

// Sum returns the raw checksum.
func (c *Checksum) Sum() uint64 { return c.sum }

// Sample keeps the text form of the first size partitions.
type Sample struct {
	size  int
	items []string
}

var _ Visitor = (*Sample)(nil)

func NewSample(size int) *Sample {
	if size < 0 {
		size = 0
	}
	return &Sample{size: size, items: make([]string, 0, size)}
}

func (s *Sample) Accept(p Partition) {
	if len(s.items) < s.size {
		s.items = append(s.items, p.String())
	}
}

// Result returns a copy of the sampled partitions as []string.
func (s *Sample) Result() any {
	return append([]string{}, s.items...)
}

func (s *Sample) Reset() { s.items = s.items[:0] }

// Histogram counts partitions by their largest part (integer mode) or
// largest block size (set mode). It holds at most n buckets.
type Histogram struct {
	buckets map[int]uint64
}

var _ Visitor = (*Histogram)(nil)

func NewHistogram() *Histogram {
	return &Histogram{buckets: make(map[int]uint64)}
}

func (h *Histogram) Accept(p Partition) { h.buckets[p.Largest()]++ }

// Result returns a copy of the buckets as map[int]uint64.
func (h *Histogram) Result() any { return maps.Clone(h.buckets) }

func (h *Histogram) Reset() { clear(h.buckets) }
