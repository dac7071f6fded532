package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ludo-technologies/sicilian/domain"
	"github.com/ludo-technologies/sicilian/engine"
)

// ScanConfig holds configuration for the scan use case.
type ScanConfig struct {
	NonceMode       domain.NonceMode
	Format          domain.OutputFormat
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
	MaxConcurrency  int
	EnableProgress  bool
}

// ScanUseCase orchestrates signing a corpus of JavaScript/TypeScript
// files: collect paths, sign each file concurrently via
// service.ParallelExecutor, and assemble a domain.SignatureReport.
type ScanUseCase struct {
	fileHelper *FileHelper
	executor   domain.ParallelExecutor
	progress   domain.ProgressManager
}

// NewScanUseCase creates a new scan use case with the given parallel
// executor and progress manager (both dependency-injected so cmd/ can
// wire config-driven concurrency and an interactive-or-not progress bar).
func NewScanUseCase(executor domain.ParallelExecutor, progress domain.ProgressManager) *ScanUseCase {
	return &ScanUseCase{
		fileHelper: NewFileHelper(),
		executor:   executor,
		progress:   progress,
	}
}

// signTask signs a single file and records its result into a shared,
// mutex-protected slice. It satisfies domain.ExecutableTask so
// service.ParallelExecutor can run a batch of these concurrently.
type signTask struct {
	path      string
	nonceMode domain.NonceMode

	mu      *sync.Mutex
	results *[]domain.SignatureResult
}

func (t *signTask) Name() string     { return t.path }
func (t *signTask) IsEnabled() bool  { return true }
func (t *signTask) Execute(ctx context.Context) (any, error) {
	source, err := os.ReadFile(t.path)
	if err != nil {
		t.record(domain.SignatureResult{Path: t.path, Err: err.Error()})
		return nil, err
	}

	digest, err := engine.Sign(ctx, source, engine.Options{
		Filename:   t.path,
		NonceMode:  toEngineNonceMode(t.nonceMode),
		TypeScript: isTypeScriptPath(t.path),
	})
	if err != nil {
		t.record(domain.SignatureResult{Path: t.path, Err: err.Error()})
		return nil, err
	}

	t.record(domain.SignatureResult{Path: t.path, Digest: digest})
	return digest, nil
}

func (t *signTask) record(r domain.SignatureResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	*t.results = append(*t.results, r)
}

// Execute signs every JavaScript/TypeScript file discovered under paths
// and returns a SignatureReport. Per-file errors are recorded on the
// corresponding SignatureResult rather than aborting the whole scan.
func (uc *ScanUseCase) Execute(ctx context.Context, cfg ScanConfig, paths []string) (*domain.SignatureReport, error) {
	files, err := ResolveFilePaths(uc.fileHelper, paths, cfg.Recursive, cfg.IncludePatterns, cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to collect JavaScript/TypeScript files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no JavaScript/TypeScript files found in the specified paths")
	}

	var mu sync.Mutex
	results := make([]domain.SignatureResult, 0, len(files))

	tasks := make([]domain.ExecutableTask, 0, len(files))
	for _, f := range files {
		tasks = append(tasks, &signTask{
			path:      f,
			nonceMode: cfg.NonceMode,
			mu:        &mu,
			results:   &results,
		})
	}

	uc.executor.SetMaxConcurrency(cfg.MaxConcurrency)
	if err := uc.executor.Execute(ctx, tasks); err != nil {
		// AggregatedError means at least one file failed; individual
		// failures are already captured per-result, so scanning
		// continues and the caller decides how to react.
		_ = err
	}
	if uc.progress != nil {
		uc.progress.Close()
	}

	summary := domain.ScanSummary{TotalFiles: len(results)}
	for _, r := range results {
		if r.Err != "" {
			summary.FailedFiles++
		} else {
			summary.SignedFiles++
		}
	}

	return &domain.SignatureReport{Results: results, Summary: summary}, nil
}

// toEngineNonceMode maps the domain's string-valued NonceMode to the
// engine's int-valued one; an unrecognized value falls back to random,
// matching the reference scheme's default per-invocation secret.
func toEngineNonceMode(mode domain.NonceMode) engine.NonceMode {
	if mode == domain.NonceModeDerived {
		return engine.NonceModeDerived
	}
	return engine.NonceModeRandom
}

func isTypeScriptPath(path string) bool {
	for _, ext := range []string{".ts", ".tsx", ".mts", ".cts"} {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}
