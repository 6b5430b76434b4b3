// Package grapheme provides an immutable string type indexed by extended
// grapheme clusters instead of bytes.
//
// A String wraps ordinary UTF-8 text and exposes positions as user-perceived
// characters: an emoji with modifiers, a combining-accent sequence, or a
// multi-byte symbol each count as one position. Segmentation follows Unicode
// extended grapheme cluster rules (via rivo/uniseg) and is computed lazily,
// at most once per String, so construction and byte-level operations stay
// cheap.
//
// Key features:
//   - Cluster-indexed slicing with inclusive-style negative indices
//   - Regexp search returning cluster positions instead of byte offsets
//   - Lazy, thread-safe segmentation and byte-offset indexes
//   - Immutable operations return new Strings; originals are never modified
//   - Match validation with diagnostic re-search for debugging translators
//
// Basic usage:
//
//	s := grapheme.New("née 🇫🇷")
//	n := s.Len()                            // 5 clusters
//	flag := s.Slice(-2, -1)                 // "🇫🇷"
//	m := s.Find(regexp.MustCompile(`n..`))  // match at clusters [0,3)
//
// Byte offsets appear only at the regexp boundary; everything a caller sees
// is in cluster positions. Searching is delegated to the standard regexp
// package over the raw text, and the resulting byte offsets are translated
// back through the String's boundary index.
package grapheme
