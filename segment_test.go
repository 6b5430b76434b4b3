package grapheme

import (
	"sync"
	"testing"
)

func TestClusters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"ascii", "abc", []string{"a", "b", "c"}},
		{"combining accent", "née", []string{"n", "é", "e"}},
		{"flags pair up", "🇫🇷🇩🇪", []string{"🇫🇷", "🇩🇪"}},
		{"crlf is one cluster", "a\r\nb", []string{"a", "\r\n", "b"}},
		{"music", "𝆔♪ 𝆔♪", []string{"𝆔", "♪", " ", "𝆔", "♪"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.input).Clusters()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d clusters, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Text() != tt.want[i] {
					t.Errorf("cluster %d = %q, want %q", i, got[i].Text(), tt.want[i])
				}
			}
		})
	}
}

func TestClusterAccessors(t *testing.T) {
	c := New("🇫🇷").At(0)
	if c.Text() != "🇫🇷" {
		t.Errorf("Text() = %q, want %q", c.Text(), "🇫🇷")
	}
	if c.String() != c.Text() {
		t.Error("String() should match Text()")
	}
	if c.ByteLen() != 8 {
		t.Errorf("ByteLen() = %d, want 8", c.ByteLen())
	}
	if c.RuneCount() != 2 {
		t.Errorf("RuneCount() = %d, want 2", c.RuneCount())
	}
}

// TestClustersIdempotent checks that repeated access returns the same cached
// slice, not a recomputation.
func TestClustersIdempotent(t *testing.T) {
	s := New("née 🇫🇷")
	a := s.Clusters()
	b := s.Clusters()
	if len(a) != len(b) {
		t.Fatalf("lengths differ across calls: %d vs %d", len(a), len(b))
	}
	if &a[0] != &b[0] {
		t.Error("Clusters() returned different backing arrays across calls")
	}
}

// TestClustersConcurrent hammers first access from many goroutines; every
// caller must observe the same completed cache.
func TestClustersConcurrent(t *testing.T) {
	s := New("ab🇫🇷é 𝆔♪👨‍👩‍👧‍👦 end")

	const n = 16
	ptrs := make([]*Cluster, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			c := s.Clusters()
			ptrs[slot] = &c[0]
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if ptrs[i] != ptrs[0] {
			t.Fatalf("goroutine %d saw a different cluster cache", i)
		}
	}
}

func TestBoundsConcurrent(t *testing.T) {
	s := New("ab🇫🇷é 𝆔♪ end")

	const n = 16
	results := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = s.OffsetToIndex(s.ByteLen())
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("goroutine %d saw OffsetToIndex = %d, others %d", i, results[i], results[0])
		}
	}
	if results[0] != s.Len() {
		t.Errorf("end offset maps to %d, want Len() = %d", results[0], s.Len())
	}
}
