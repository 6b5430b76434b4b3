package grapheme

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/rivo/uniseg"
)

// boundary records where one grapheme cluster starts in the raw text.
// The byteBounds slice is sorted by both fields, which makes byte-offset
// lookup a binary search.
type boundary struct {
	byteOff int // byte offset of the cluster's first byte
	index   int // position of the cluster in the cluster sequence
}

// byteBounds returns the boundary table, one entry per cluster, building it
// on first use. Independent of the Clusters cache: a caller that only
// translates offsets never materializes cluster values.
func (s *String) byteBounds() []boundary {
	s.locateOnce.Do(s.locate)
	return s.bounds
}

// locate walks the raw text once and records each cluster's starting byte
// offset. Runs exactly once per String, guarded by locateOnce.
func (s *String) locate() {
	if len(s.raw) == 0 {
		return
	}

	bounds := make([]boundary, 0, len(s.raw)/2+1)
	off := 0
	state := -1
	rest := s.raw
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		bounds = append(bounds, boundary{byteOff: off, index: len(bounds)})
		off += len(cluster)
	}
	s.bounds = bounds
}

// OffsetToIndex converts a byte offset in the raw text to a cluster index.
//
// An offset on a cluster boundary maps to that cluster's index; an offset
// inside a cluster rounds up to the following cluster; any offset at or past
// the end of the text maps to Len(). The mapping is total and monotonic, so
// it accepts whatever offsets an external byte-oriented search produces,
// including offsets that split a cluster.
func (s *String) OffsetToIndex(off int) int {
	bounds := s.byteBounds()
	pos, found := slices.BinarySearchFunc(bounds, off, func(b boundary, target int) int {
		return cmp.Compare(b.byteOff, target)
	})
	if found {
		return bounds[pos].index
	}
	if pos < len(bounds) {
		return bounds[pos].index
	}
	return len(bounds)
}

// IndexToOffset converts a cluster index to the byte offset where that
// cluster starts. Index Len() maps to ByteLen(), so a half-open cluster
// range [i,j) converts to the byte range [IndexToOffset(i), IndexToOffset(j)).
// It panics if i is outside [0, Len()].
func (s *String) IndexToOffset(i int) int {
	bounds := s.byteBounds()
	if i < 0 || i > len(bounds) {
		panic("grapheme: cluster index " + strconv.Itoa(i) + " out of range [0," + strconv.Itoa(len(bounds)) + "]")
	}
	if i == len(bounds) {
		return len(s.raw)
	}
	return bounds[i].byteOff
}
