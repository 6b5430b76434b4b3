package grapheme

// Cluster is one extended grapheme cluster: the smallest unit of text a
// reader perceives as a single character. A Cluster may span several runes
// (combining marks, emoji sequences, regional indicator pairs) and therefore
// several bytes.
type Cluster struct {
	text string
}

// Text returns the cluster's bytes as a string.
func (c Cluster) Text() string {
	return c.text
}

// ByteLen returns the number of bytes the cluster occupies.
func (c Cluster) ByteLen() int {
	return len(c.text)
}

// RuneCount returns the number of code points in the cluster.
func (c Cluster) RuneCount() int {
	n := 0
	for range c.text {
		n++
	}
	return n
}

// String implements fmt.Stringer.
func (c Cluster) String() string {
	return c.text
}
