package grapheme

import (
	"strconv"
	"strings"
)

// Slice returns a new String holding the clusters in the half-open range
// [start, end).
//
// Negative arguments count from the end, inclusively: -1 names the position
// one past the last cluster, -2 the last cluster, and so on. Formally a
// negative v is remapped to Len()+v+1 before use, so
//
//	s.Slice(0, -1)   // the whole string
//	s.Slice(-2, -1)  // the last cluster
//	s.Slice(0, -2)   // everything but the last cluster
//
// Note the off-by-one against Go's usual convention: the remap is inclusive
// of the end marker, which is what makes Slice(0, -1) the identity.
//
// Every index actually visited must fall inside [0, Len()); Slice panics on
// the first one that does not. Ranges that visit nothing (start >= end after
// remapping) return an empty String without inspecting bounds. Out-of-range
// indices are never clamped.
func (s *String) Slice(start, end int) *String {
	clusters := s.Clusters()
	n := len(clusters)
	if start < 0 {
		start = n + start + 1
	}
	if end < 0 {
		end = n + end + 1
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		if i < 0 || i >= n {
			panic("grapheme: slice index " + strconv.Itoa(i) + " out of range [0," + strconv.Itoa(n) + ")")
		}
		sb.WriteString(clusters[i].text)
	}
	return New(sb.String())
}
