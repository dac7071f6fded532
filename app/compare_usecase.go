package app

import (
	"context"

	"github.com/ludo-technologies/sicilian/domain"
)

// duplicateDetector mirrors service.DuplicateDetectorImpl without a
// direct app -> service import: app/ never imports service/, so the
// implementation is injected by cmd/ instead.
type duplicateDetector interface {
	Detect(results []domain.SignatureResult) []domain.DuplicateCluster
}

// CompareUseCase runs a scan and then clusters the results by exact
// digest equality, surfacing structurally identical files.
type CompareUseCase struct {
	scan     *ScanUseCase
	detector duplicateDetector
}

// NewCompareUseCase creates a new compare use case.
func NewCompareUseCase(scan *ScanUseCase, detector duplicateDetector) *CompareUseCase {
	return &CompareUseCase{scan: scan, detector: detector}
}

// Execute scans paths and groups the resulting digests into duplicate
// clusters.
func (uc *CompareUseCase) Execute(ctx context.Context, cfg ScanConfig, paths []string) (*domain.DuplicateReport, error) {
	report, err := uc.scan.Execute(ctx, cfg, paths)
	if err != nil {
		return nil, err
	}

	clusters := uc.detector.Detect(report.Results)
	return &domain.DuplicateReport{Scan: *report, Duplicates: clusters}, nil
}
