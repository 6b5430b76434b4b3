package grapheme

import "github.com/rivo/uniseg"

// Clusters returns the text segmented into extended grapheme clusters, in
// order. The first call segments the text; later calls return the same
// cached slice. Callers must treat the returned slice as read-only.
func (s *String) Clusters() []Cluster {
	s.segmentOnce.Do(s.segment)
	return s.clusters
}

// segment walks the raw text once and records every cluster. Runs exactly
// once per String, guarded by segmentOnce.
func (s *String) segment() {
	if len(s.raw) == 0 {
		return
	}

	// Most text is ASCII-heavy; len/2 overshoots rarely and avoids
	// regrowing for multi-byte scripts.
	clusters := make([]Cluster, 0, len(s.raw)/2+1)
	state := -1
	rest := s.raw
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		clusters = append(clusters, Cluster{text: cluster})
	}
	s.clusters = clusters
}
