package grapheme

import (
	"fmt"
	"regexp"
	"strings"
)

// Match is one pattern match located in cluster positions. Start and End are
// a half-open cluster range into the source the match came from; Text is an
// owned copy of the cluster-aligned matched text, so a Match stays usable
// after the source is gone.
//
// Nothing ties a Match to its source: callers can build one by hand, carry
// one across goroutines, or validate one against the wrong string. Valid and
// EnsureValid exist for exactly that reason.
type Match struct {
	Start int
	End   int
	Text  *String
}

// String returns the matched text. A nil Text reads as empty.
func (m Match) String() string {
	if m.Text == nil {
		return ""
	}
	return m.Text.String()
}

// Equal reports whether two matches cover the same cluster range with the
// same text.
func (m Match) Equal(other Match) bool {
	return m.Start == other.Start && m.End == other.End && m.String() == other.String()
}

// GStr returns a fresh String owning a copy of the matched text, with its
// own caches. The match's Text is shared with whoever built the match;
// GStr is for callers that want an independent value.
func (m Match) GStr() *String {
	return New(m.String())
}

// Valid reports whether re-slicing source at [Start, End) reproduces the
// match's text. It is false when the range does not satisfy
// 0 <= Start <= End <= source.Len(), or when the slice at that range differs
// from Text.
func (m Match) Valid(source *String) bool {
	if m.Start < 0 || m.End < m.Start || m.End > source.Len() {
		return false
	}
	return source.Slice(m.Start, m.End).String() == m.String()
}

// EnsureValid checks the match like Valid and returns nil when it holds.
// On failure it returns a *ValidityError describing what the recorded range
// actually contains and every byte offset where the match's text does occur
// in source. Meant as a debugging aid for index-translation bugs; callers
// normally treat the error as fatal.
func (m Match) EnsureValid(source *String) error {
	if m.Valid(source) {
		return nil
	}

	verr := &ValidityError{
		Start:     m.Start,
		End:       m.End,
		Want:      m.String(),
		SourceLen: source.Len(),
	}
	if m.Start >= 0 && m.Start <= m.End && m.End <= source.Len() {
		verr.Got = source.Slice(m.Start, m.End).String()
		verr.Sliceable = true
	}

	// Re-search for the text as a literal. QuoteMeta output always
	// compiles, so text containing metacharacters stays searchable.
	re := regexp.MustCompile(regexp.QuoteMeta(verr.Want))
	for _, span := range re.FindAllStringIndex(source.String(), -1) {
		verr.Hits = append(verr.Hits, Hit{ByteStart: span[0], ByteEnd: span[1]})
	}
	return verr
}

// Hit is one byte-offset occurrence of a match's text found during the
// validator's diagnostic re-search.
type Hit struct {
	ByteStart int
	ByteEnd   int
}

// ValidityError reports a match whose recorded cluster range does not
// reproduce its stored text against a given source.
type ValidityError struct {
	Start     int    // cluster range the match claims
	End       int
	Want      string // text the match carries
	Got       string // text actually at [Start, End); meaningful only if Sliceable
	Sliceable bool   // false when the range falls outside the source
	SourceLen int    // cluster count of the source at validation time
	Hits      []Hit  // byte offsets where Want does occur in the source
}

// Error implements error.
func (e *ValidityError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "grapheme: invalid match [%d,%d): expected %q", e.Start, e.End, e.Want)
	if e.Sliceable {
		fmt.Fprintf(&sb, ", source has %q there", e.Got)
	} else {
		fmt.Fprintf(&sb, ", range not sliceable in source of %d clusters", e.SourceLen)
	}
	if len(e.Hits) == 0 {
		sb.WriteString("; text occurs nowhere in source")
		return sb.String()
	}
	sb.WriteString("; text occurs at bytes")
	for i, h := range e.Hits {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, " [%d,%d)", h.ByteStart, h.ByteEnd)
	}
	return sb.String()
}
