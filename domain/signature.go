// Package domain holds the request/result/summary shapes shared by the
// service and app layers when driving the engine across a corpus of
// files. The core engine package never imports this package: its
// contract is []byte -> (string, error), full stop (SPEC_FULL.md §3).
package domain

import (
	"context"
	"time"
)

// NonceMode mirrors engine.NonceMode without importing the engine
// package, keeping domain dependency-free.
type NonceMode string

const (
	NonceModeRandom  NonceMode = "random"
	NonceModeDerived NonceMode = "derived"
)

// OutputFormat selects how a SignatureReport is rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatCSV  OutputFormat = "csv"
)

// SignatureRequest configures a corpus scan: which paths to sign, under
// what nonce policy, filtered and formatted how.
type SignatureRequest struct {
	Paths           []string
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
	NonceMode       NonceMode
	Format          OutputFormat
	MaxConcurrency  int
}

// SignatureResult is one file's outcome: exactly one of Digest or Err is
// set.
type SignatureResult struct {
	Path   string
	Digest string
	Err    string
}

// SignatureReport aggregates every SignatureResult from one scan.
type SignatureReport struct {
	Results []SignatureResult
	Summary ScanSummary
}

// ScanSummary tallies a scan's outcome.
type ScanSummary struct {
	TotalFiles  int
	SignedFiles int
	FailedFiles int
}

// DuplicateCluster is a set of two or more paths sharing one digest,
// grouped by exact digest equality rather than a similarity threshold
// (SPEC_FULL.md §4.7).
type DuplicateCluster struct {
	Digest string
	Paths  []string
}

// DuplicateReport is the result of `sicilian compare`: every duplicate
// cluster found across a scan, plus the scan that produced them.
type DuplicateReport struct {
	Scan       SignatureReport
	Duplicates []DuplicateCluster
}

// ExecutableTask is one unit of work a ParallelExecutor can run
// concurrently.
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (any, error)
	IsEnabled() bool
}

// ParallelExecutor runs a batch of ExecutableTasks with bounded
// concurrency.
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
	SetMaxConcurrency(max int)
	SetTimeout(timeout time.Duration)
}

// ProgressManager reports scan progress.
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress is a single progress bar's handle.
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}
