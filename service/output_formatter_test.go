package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ludo-technologies/sicilian/domain"
)

func TestWriteJSON(t *testing.T) {
	data := map[string]interface{}{
		"name":  "test",
		"value": 42,
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse output as JSON: %v", err)
	}
	if result["name"] != "test" {
		t.Errorf("expected name to be 'test', got %v", result["name"])
	}
}

func sampleScanReport() domain.SignatureReport {
	return domain.SignatureReport{
		Results: []domain.SignatureResult{
			{Path: "a.js", Digest: "deadbeef"},
			{Path: "b.js", Digest: "deadbeef"},
			{Path: "c.js", Err: "parse error"},
		},
		Summary: domain.ScanSummary{TotalFiles: 3, SignedFiles: 2, FailedFiles: 1},
	}
}

func sampleDuplicateReport() domain.DuplicateReport {
	return domain.DuplicateReport{
		Scan: sampleScanReport(),
		Duplicates: []domain.DuplicateCluster{
			{Digest: "deadbeef", Paths: []string{"a.js", "b.js"}},
		},
	}
}

func TestFormatScanText(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer
	if err := formatter.FormatScan(&buf, sampleScanReport(), domain.FormatText); err != nil {
		t.Fatalf("FormatScan failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "a.js") || !strings.Contains(out, "deadbeef") {
		t.Errorf("expected digest line in output, got %q", out)
	}
	if !strings.Contains(out, "ERROR: parse error") {
		t.Errorf("expected error line in output, got %q", out)
	}
	if !strings.Contains(out, "3 files, 2 signed, 1 failed") {
		t.Errorf("expected summary line in output, got %q", out)
	}
}

func TestFormatScanJSON(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer
	if err := formatter.FormatScan(&buf, sampleScanReport(), domain.FormatJSON); err != nil {
		t.Fatalf("FormatScan failed: %v", err)
	}

	var decoded SignatureReportJSON
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to parse output as JSON: %v", err)
	}
	if len(decoded.Results) != 3 {
		t.Errorf("expected 3 results, got %d", len(decoded.Results))
	}
	if decoded.Summary.SignedFiles != 2 {
		t.Errorf("expected 2 signed files, got %d", decoded.Summary.SignedFiles)
	}
}

func TestFormatScanYAML(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer
	if err := formatter.FormatScan(&buf, sampleScanReport(), domain.FormatYAML); err != nil {
		t.Fatalf("FormatScan failed: %v", err)
	}
	if !strings.Contains(buf.String(), "deadbeef") {
		t.Errorf("expected digest in YAML output, got %q", buf.String())
	}
}

func TestFormatScanCSV(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer
	if err := formatter.FormatScan(&buf, sampleScanReport(), domain.FormatCSV); err != nil {
		t.Fatalf("FormatScan failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 { // header + 3 results
		t.Errorf("expected 4 CSV lines, got %d: %v", len(lines), lines)
	}
}

func TestFormatScanUnknownFormat(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer
	if err := formatter.FormatScan(&buf, sampleScanReport(), domain.OutputFormat("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFormatCompareText(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer
	if err := formatter.FormatCompare(&buf, sampleDuplicateReport(), domain.FormatText); err != nil {
		t.Fatalf("FormatCompare failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1 duplicate cluster(s)") {
		t.Errorf("expected duplicate cluster count, got %q", out)
	}
	if !strings.Contains(out, "deadbeef") {
		t.Errorf("expected cluster digest in output, got %q", out)
	}
}

func TestFormatCompareTextNoDuplicates(t *testing.T) {
	formatter := NewOutputFormatter()
	report := domain.DuplicateReport{Scan: sampleScanReport()}
	var buf bytes.Buffer
	if err := formatter.FormatCompare(&buf, report, domain.FormatText); err != nil {
		t.Fatalf("FormatCompare failed: %v", err)
	}
	if !strings.Contains(buf.String(), "no duplicate clusters found") {
		t.Errorf("expected no-duplicates message, got %q", buf.String())
	}
}

func TestFormatCompareJSON(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer
	if err := formatter.FormatCompare(&buf, sampleDuplicateReport(), domain.FormatJSON); err != nil {
		t.Fatalf("FormatCompare failed: %v", err)
	}
	var decoded DuplicateReportJSON
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to parse output as JSON: %v", err)
	}
	if len(decoded.Duplicates) != 1 {
		t.Errorf("expected 1 duplicate cluster, got %d", len(decoded.Duplicates))
	}
}

func TestFormatCompareCSV(t *testing.T) {
	formatter := NewOutputFormatter()
	var buf bytes.Buffer
	if err := formatter.FormatCompare(&buf, sampleDuplicateReport(), domain.FormatCSV); err != nil {
		t.Fatalf("FormatCompare failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 { // header + 2 paths in the one cluster
		t.Errorf("expected 3 CSV lines, got %d: %v", len(lines), lines)
	}
}
