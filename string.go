package grapheme

import (
	"hash/maphash"
	"strconv"
	"strings"
	"sync"
)

// hashSeed is shared by every String so equal text hashes equally within a
// process. A fresh seed per process keeps hash values unpredictable.
var hashSeed = maphash.MakeSeed()

// String is immutable UTF-8 text indexed by extended grapheme clusters.
//
// The raw bytes are stored on construction; the cluster sequence and the
// byte-offset index are derived lazily, each exactly once, on first use.
// Methods that only touch raw bytes (Equal, Hash, Contains, ByteLen) never
// trigger segmentation. A String is safe for concurrent use.
//
// The zero value is an empty String ready to use.
type String struct {
	raw string

	segmentOnce sync.Once
	clusters    []Cluster

	locateOnce sync.Once
	bounds     []boundary
}

// New creates a String from raw UTF-8 text. The text is not segmented until
// a cluster-indexed operation needs it.
func New(text string) *String {
	return &String{raw: text}
}

// String returns the raw text. It never triggers segmentation.
func (s *String) String() string {
	return s.raw
}

// ByteLen returns the length of the raw text in bytes.
func (s *String) ByteLen() int {
	return len(s.raw)
}

// Len returns the number of grapheme clusters in the text.
func (s *String) Len() int {
	return len(s.Clusters())
}

// IsEmpty returns true if the String contains no text.
func (s *String) IsEmpty() bool {
	return len(s.raw) == 0
}

// At returns the cluster at index i. It panics if i is out of range.
func (s *String) At(i int) Cluster {
	clusters := s.Clusters()
	if i < 0 || i >= len(clusters) {
		panic("grapheme: cluster index " + strconv.Itoa(i) + " out of range [0," + strconv.Itoa(len(clusters)) + ")")
	}
	return clusters[i]
}

// Equal reports whether s and other hold the same raw text. Cache state is
// irrelevant: a freshly built String and one that has already segmented
// compare equal if their bytes do.
func (s *String) Equal(other *String) bool {
	return s.raw == other.raw
}

// Hash returns a hash of the raw text, consistent with Equal: equal Strings
// hash equally. Values are stable within a process only.
func (s *String) Hash() uint64 {
	return maphash.String(hashSeed, s.raw)
}

// Contains reports whether substr occurs anywhere in the raw text. This is a
// plain byte-level test; substr need not align with cluster boundaries.
func (s *String) Contains(substr string) bool {
	return strings.Contains(s.raw, substr)
}

// Concat returns a new String holding s followed by other. Neither operand
// is modified; the result is segmented independently, so clusters that merge
// across the seam (a combining mark opening other, say) are handled
// correctly.
func (s *String) Concat(other *String) *String {
	return New(s.raw + other.raw)
}

// Append returns a new String holding s followed by text.
func (s *String) Append(text string) *String {
	return New(s.raw + text)
}

// Int parses the raw text as a base-10 integer.
func (s *String) Int() (int, error) {
	return strconv.Atoi(s.raw)
}
