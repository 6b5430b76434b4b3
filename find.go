package grapheme

import "regexp"

// Find returns the first match of re in the text, or nil if there is none.
//
// The search runs over the raw bytes with the standard regexp engine; the
// byte offsets it reports are translated to cluster positions. A byte span
// that cuts into a cluster widens to that cluster's boundary, so the match
// text is re-sliced from whole clusters and can differ from the bytes the
// pattern engine consumed.
func (s *String) Find(re *regexp.Regexp) *Match {
	span := re.FindStringIndex(s.raw)
	if span == nil {
		return nil
	}
	return s.matchForSpan(span[0], span[1])
}

// FindAll returns an iterator over every non-overlapping match of re, in
// order. Byte spans are collected up front (so anchors and empty-width
// assertions see the full text); translation to cluster positions and match
// materialization happen lazily as the iterator advances. Call FindAll again
// for a fresh iteration.
func (s *String) FindAll(re *regexp.Regexp) *MatchIterator {
	return &MatchIterator{
		src:   s,
		spans: re.FindAllStringIndex(s.raw, -1),
	}
}

// matchForSpan translates one byte span into a Match with cluster positions
// and cluster-aligned text.
func (s *String) matchForSpan(byteStart, byteEnd int) *Match {
	start := s.OffsetToIndex(byteStart)
	end := s.OffsetToIndex(byteEnd)
	return &Match{Start: start, End: end, Text: s.Slice(start, end)}
}

// MatchIterator iterates over the matches of one FindAll call.
type MatchIterator struct {
	src   *String
	spans [][]int
	pos   int
	match Match
}

// Next advances to the next match.
// Returns true if there is a match, false if iteration is complete.
func (it *MatchIterator) Next() bool {
	if it.pos >= len(it.spans) {
		return false
	}
	span := it.spans[it.pos]
	it.pos++
	it.match = *it.src.matchForSpan(span[0], span[1])
	return true
}

// Match returns the current match. Valid only after Next has returned true.
func (it *MatchIterator) Match() Match {
	return it.match
}

// Count consumes the rest of the iterator and returns how many matches
// remain.
func (it *MatchIterator) Count() int {
	n := 0
	for it.Next() {
		n++
	}
	return n
}
