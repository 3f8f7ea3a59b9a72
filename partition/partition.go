package partition

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/teranos/partgen/errors"
)

// Mode selects which kind of partition is enumerated.
type Mode int

const (
	ModeInteger Mode = iota + 1
	ModeSet
)

// String returns the command-line name of the mode
func (m Mode) String() string {
	switch m {
	case ModeInteger:
		return "int"
	case ModeSet:
		return "set"
	}
	return "unknown"
}

// Modes returns the names of all supported modes.
func Modes() []string {
	return []string{ModeInteger.String(), ModeSet.String()}
}

// ParseMode resolves a mode by its exact name.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "int":
		return ModeInteger, nil
	case "set":
		return ModeSet, nil
	}
	return 0, errors.NewUnknownNameError(errors.ErrUnknownMode, "mode", name, Modes())
}

// Partition is what generators emit and visitors consume.
type Partition interface {
	// String renders the partition as one line of text.
	String() string
	// Len is the number of parts or blocks.
	Len() int
	// Size is n, the number being partitioned or the size of the universe.
	Size() int
	// Largest is the largest part, or the size of the largest block.
	Largest() int
	// AppendKey appends a canonical binary encoding of the partition to b.
	// Two partitions have equal keys exactly when they are the same partition.
	AppendKey(b []byte) []byte
}

// Integer is an integer partition: parts in non-increasing order.
type Integer []int

var _ Partition = Integer(nil)

// String renders the parts separated by single spaces, e.g. "4 1".
func (p Integer) String() string {
	var sb strings.Builder
	for i, part := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(part))
	}
	return sb.String()
}

func (p Integer) Len() int { return len(p) }

func (p Integer) Size() int {
	sum := 0
	for _, part := range p {
		sum += part
	}
	return sum
}

func (p Integer) Largest() int {
	if len(p) == 0 {
		return 0
	}
	return p[0]
}

func (p Integer) AppendKey(b []byte) []byte {
	b = binary.AppendUvarint(b, uint64(len(p)))
	for _, part := range p {
		b = binary.AppendUvarint(b, uint64(part))
	}
	return b
}

// Clone returns a copy that stays valid after the generator moves on.
func (p Integer) Clone() Integer {
	return append(make(Integer, 0, len(p)), p...)
}

// Set is a set partition of {0, ..., n-1} stored as a restricted growth
// string: labels[i] is the block of element i.
type Set struct {
	labels []int
	blocks int
}

var _ Partition = Set{}

// NewSet builds a Set from a restricted growth string. The labels slice is
// retained, not copied.
func NewSet(labels []int) Set {
	blocks := 0
	for _, l := range labels {
		if l+1 > blocks {
			blocks = l + 1
		}
	}
	return Set{labels: labels, blocks: blocks}
}

// Labels returns the restricted growth string backing the partition.
func (s Set) Labels() []int { return s.labels }

func (s Set) Len() int { return s.blocks }

func (s Set) Size() int { return len(s.labels) }

// Blocks groups elements by label. Blocks are ordered by their smallest
// element and each block is sorted ascending.
func (s Set) Blocks() [][]int {
	blocks := make([][]int, s.blocks)
	for elem, label := range s.labels {
		blocks[label] = append(blocks[label], elem)
	}
	return blocks
}

func (s Set) Largest() int {
	sizes := make([]int, s.blocks)
	largest := 0
	for _, label := range s.labels {
		sizes[label]++
		if sizes[label] > largest {
			largest = sizes[label]
		}
	}
	return largest
}

// String renders the blocks in braces, e.g. "{0,1}{2,3}".
func (s Set) String() string {
	var sb strings.Builder
	for _, block := range s.Blocks() {
		sb.WriteByte('{')
		for i, elem := range block {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(elem))
		}
		sb.WriteByte('}')
	}
	return sb.String()
}

func (s Set) AppendKey(b []byte) []byte {
	b = binary.AppendUvarint(b, uint64(len(s.labels)))
	for _, label := range s.labels {
		b = binary.AppendUvarint(b, uint64(label))
	}
	return b
}

// Clone returns a copy that stays valid after the generator moves on.
func (s Set) Clone() Set {
	return Set{labels: append(make([]int, 0, len(s.labels)), s.labels...), blocks: s.blocks}
}
