package service

import (
	"testing"

	"github.com/ludo-technologies/sicilian/domain"
)

func TestDuplicateDetector_NoDuplicates(t *testing.T) {
	detector := NewDuplicateDetector()

	results := []domain.SignatureResult{
		{Path: "a.js", Digest: "aaaa"},
		{Path: "b.js", Digest: "bbbb"},
	}

	clusters := detector.Detect(results)
	if len(clusters) != 0 {
		t.Errorf("expected no clusters, got %d", len(clusters))
	}
}

func TestDuplicateDetector_OneCluster(t *testing.T) {
	detector := NewDuplicateDetector()

	results := []domain.SignatureResult{
		{Path: "b.js", Digest: "deadbeef"},
		{Path: "a.js", Digest: "deadbeef"},
		{Path: "c.js", Digest: "cafef00d"},
	}

	clusters := detector.Detect(results)
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	if clusters[0].Digest != "deadbeef" {
		t.Errorf("expected digest 'deadbeef', got %q", clusters[0].Digest)
	}
	if len(clusters[0].Paths) != 2 || clusters[0].Paths[0] != "a.js" || clusters[0].Paths[1] != "b.js" {
		t.Errorf("expected paths sorted [a.js b.js], got %v", clusters[0].Paths)
	}
}

func TestDuplicateDetector_IgnoresErroredResults(t *testing.T) {
	detector := NewDuplicateDetector()

	results := []domain.SignatureResult{
		{Path: "a.js", Err: "parse error"},
		{Path: "b.js", Digest: "deadbeef"},
	}

	clusters := detector.Detect(results)
	if len(clusters) != 0 {
		t.Errorf("expected no clusters when only one valid digest exists, got %d", len(clusters))
	}
}

func TestDuplicateDetector_MultipleClustersSortedByDigest(t *testing.T) {
	detector := NewDuplicateDetector()

	results := []domain.SignatureResult{
		{Path: "z1.js", Digest: "zzzz"},
		{Path: "z2.js", Digest: "zzzz"},
		{Path: "a1.js", Digest: "aaaa"},
		{Path: "a2.js", Digest: "aaaa"},
	}

	clusters := detector.Detect(results)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].Digest != "aaaa" || clusters[1].Digest != "zzzz" {
		t.Errorf("expected clusters sorted by digest, got %v, %v", clusters[0].Digest, clusters[1].Digest)
	}
}
