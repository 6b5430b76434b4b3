package grapheme

import (
	"fmt"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"
)

const musicSheet = `*  Thé - Nicotine Dreams   ♩≈117BPM   page 1/2
 By: Édrihan Lévesque   /   Alin Rogoz  ©2024*
[4/4 Pickup]          𝄽  𝄽 𝆔♪  ♪ 𝆔♪  ♪
                     |N.C   A1 C1 A1 G1|`

func TestSlice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		start, end int
		want       string
	}{
		{"ascii prefix", "hello", 0, 2, "he"},
		{"ascii middle", "hello", 1, 4, "ell"},
		{"full range", "hello", 0, 5, "hello"},
		{"empty range", "hello", 2, 2, ""},
		{"reversed range", "hello", 4, 2, ""},
		{"cluster aware", "née", 1, 2, "é"},
		{"combining cluster", "née", 1, 2, "é"},
		{"flag", "a🇫🇷b", 1, 2, "🇫🇷"},
		{"music tail", "𝆔♪ 𝆔♪", 3, 5, "𝆔♪"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.input).Slice(tt.start, tt.end)
			if got.String() != tt.want {
				t.Errorf("Slice(%d, %d) = %q, want %q", tt.start, tt.end, got.String(), tt.want)
			}
		})
	}
}

// TestSliceNegative pins the inclusive remap: a negative v means Len()+v+1.
func TestSliceNegative(t *testing.T) {
	s := New("abcde")

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"identity", 0, -1, "abcde"},
		{"last cluster", -2, -1, "e"},
		{"drop last", 0, -2, "abcd"},
		{"last two", -3, -1, "de"},
		{"negative start only", -4, 5, "cde"},
		{"both negative empty", -1, -1, ""},
		{"negative empty range", -2, -2, ""},
		{"negative reversed", -1, -3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Slice(tt.start, tt.end)
			if got.String() != tt.want {
				t.Errorf("Slice(%d, %d) = %q, want %q", tt.start, tt.end, got.String(), tt.want)
			}
		})
	}
}

func TestSliceIdentity(t *testing.T) {
	samples := []string{
		"",
		"x",
		"hello world",
		"née 🇫🇷 née",
		"𝆔♪ 𝆔♪",
		musicSheet,
	}

	for _, sample := range samples {
		s := New(sample)
		if got := s.Slice(0, -1); !got.Equal(s) {
			t.Errorf("Slice(0, -1) of %q = %q, want identity", sample, got.String())
		}
	}
}

func TestSliceIdentityProperty(t *testing.T) {
	f := func(text string) bool {
		if !utf8.ValidString(text) {
			return true
		}
		s := New(text)
		return s.Slice(0, -1).Equal(s)
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

// TestSliceConcatRoundTrip splits at every cluster boundary and glues the
// halves back together.
func TestSliceConcatRoundTrip(t *testing.T) {
	s := New("née 🇫🇷 𝆔♪\r\nend")
	for i := 0; i <= s.Len(); i++ {
		got := s.Slice(0, i).Concat(s.Slice(i, s.Len()))
		if !got.Equal(s) {
			t.Errorf("split at %d: got %q, want %q", i, got.String(), s.String())
		}
	}
}

func TestSliceNeverSplitsClusters(t *testing.T) {
	s := New("👨‍👩‍👧‍👦🇫🇷é")
	for start := 0; start <= s.Len(); start++ {
		for end := start; end <= s.Len(); end++ {
			sub := s.Slice(start, end)
			if !utf8.ValidString(sub.String()) {
				t.Fatalf("Slice(%d, %d) produced invalid UTF-8", start, end)
			}
			if sub.Len() != end-start {
				t.Errorf("Slice(%d, %d) has %d clusters, want %d", start, end, sub.Len(), end-start)
			}
		}
	}
}

func TestSlicePanics(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		start, end int
	}{
		{"end past length", "abc", 0, 4},
		{"start negative after remap", "abc", -10, 2},
		{"end negative after remap", "abc", -10, -8},
		{"far past end", "abc", 5, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("Slice(%d, %d) did not panic", tt.start, tt.end)
				}
				if !strings.HasPrefix(fmt.Sprint(r), "grapheme:") {
					t.Errorf("panic = %v, want grapheme: prefix", r)
				}
			}()
			New(tt.input).Slice(tt.start, tt.end)
		})
	}
}

// TestSliceEmptyRangeNoPanic: ranges that visit no index return empty even
// when the endpoints look wild, mirroring how a for loop over an empty range
// never touches memory.
func TestSliceEmptyRangeNoPanic(t *testing.T) {
	tests := []struct {
		start, end int
	}{
		{3, 3},
		{10, 2},
		{100, 100},
		{-1, 0},
	}

	s := New("abc")
	for _, tt := range tests {
		got := s.Slice(tt.start, tt.end)
		if got.String() != "" {
			t.Errorf("Slice(%d, %d) = %q, want empty", tt.start, tt.end, got.String())
		}
	}
}
