package service

import (
	"sort"

	"github.com/ludo-technologies/sicilian/domain"
)

// DuplicateDetectorImpl groups signed results by exact digest equality
// into DuplicateCluster slices: group by key, sort, build slices.
type DuplicateDetectorImpl struct{}

// NewDuplicateDetector creates a new duplicate detector service.
func NewDuplicateDetector() *DuplicateDetectorImpl {
	return &DuplicateDetectorImpl{}
}

// Detect groups successfully-signed results by digest and returns one
// DuplicateCluster per digest shared by two or more paths. Clustering
// is by exact digest equality, never a similarity threshold. Results
// are deterministically ordered by digest, then by path within a
// cluster, so output is stable across runs.
func (d *DuplicateDetectorImpl) Detect(results []domain.SignatureResult) []domain.DuplicateCluster {
	byDigest := make(map[string][]string)
	for _, r := range results {
		if r.Err != "" || r.Digest == "" {
			continue
		}
		byDigest[r.Digest] = append(byDigest[r.Digest], r.Path)
	}

	var clusters []domain.DuplicateCluster
	for digest, paths := range byDigest {
		if len(paths) < 2 {
			continue
		}
		sorted := append([]string(nil), paths...)
		sort.Strings(sorted)
		clusters = append(clusters, domain.DuplicateCluster{Digest: digest, Paths: sorted})
	}

	sort.Slice(clusters, func(i, j int) bool { return clusters[i].Digest < clusters[j].Digest })
	return clusters
}
