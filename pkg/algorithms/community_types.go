package algorithms

// Community represents a detected community
type Community struct {
	ID      int
	Nodes   []string
	Size    int
	Density float64 // Edge density within community
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities   []*Community
	Modularity    float64        // Quality measure of the partitioning
	NodeCommunity map[string]int // Node ID -> Community ID
}

// Partition returns the communities as a map from id to members.
func (r *CommunityDetectionResult) Partition() map[int][]string {
	out := make(map[int][]string, len(r.Communities))
	for _, c := range r.Communities {
		out[c.ID] = append([]string(nil), c.Nodes...)
	}
	return out
}
