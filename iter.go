package grapheme

// ClusterIterator iterates over the clusters of a String in order.
type ClusterIterator struct {
	clusters []Cluster
	idx      int
	offset   int
	started  bool
}

// Iter returns an iterator over all clusters in the string.
func (s *String) Iter() *ClusterIterator {
	return &ClusterIterator{clusters: s.Clusters()}
}

// Next advances to the next cluster.
// Returns true if there is a cluster, false if iteration is complete.
func (it *ClusterIterator) Next() bool {
	if !it.started {
		it.started = true
		return len(it.clusters) > 0
	}
	if it.idx+1 >= len(it.clusters) {
		return false
	}
	it.offset += it.clusters[it.idx].ByteLen()
	it.idx++
	return true
}

// Cluster returns the current cluster.
func (it *ClusterIterator) Cluster() Cluster {
	if it.idx < len(it.clusters) {
		return it.clusters[it.idx]
	}
	return Cluster{}
}

// Index returns the cluster index of the current cluster.
func (it *ClusterIterator) Index() int {
	return it.idx
}

// ByteOffset returns the byte offset of the start of the current cluster.
func (it *ClusterIterator) ByteOffset() int {
	return it.offset
}
