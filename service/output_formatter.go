package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ludo-technologies/sicilian/domain"
	"github.com/ludo-technologies/sicilian/internal/version"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl renders a SignatureReport/DuplicateReport as
// text, JSON, YAML, or CSV.
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter.
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as JSON to the writer with 2-space indentation,
// shared by every typed response below.
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// SignatureReportJSON wraps a SignatureReport with JSON envelope
// metadata around the domain response.
type SignatureReportJSON struct {
	Version     string                    `json:"version"`
	GeneratedAt string                    `json:"generated_at"`
	Results     []domain.SignatureResult `json:"results"`
	Summary     domain.ScanSummary        `json:"summary"`
}

// DuplicateReportJSON wraps a DuplicateReport with JSON envelope metadata.
type DuplicateReportJSON struct {
	Version     string                     `json:"version"`
	GeneratedAt string                     `json:"generated_at"`
	Results     []domain.SignatureResult   `json:"results"`
	Summary     domain.ScanSummary         `json:"summary"`
	Duplicates  []domain.DuplicateCluster  `json:"duplicates"`
}

// FormatScan renders a SignatureReport in the requested format.
func (f *OutputFormatterImpl) FormatScan(writer io.Writer, report domain.SignatureReport, format domain.OutputFormat) error {
	switch format {
	case domain.FormatJSON:
		return WriteJSON(writer, SignatureReportJSON{
			Version:     version.GetVersion(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Results:     report.Results,
			Summary:     report.Summary,
		})
	case domain.FormatYAML:
		enc := yaml.NewEncoder(writer)
		defer enc.Close()
		return enc.Encode(SignatureReportJSON{
			Version:     version.GetVersion(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Results:     report.Results,
			Summary:     report.Summary,
		})
	case domain.FormatCSV:
		return writeScanCSV(writer, report)
	case domain.FormatText, "":
		return writeScanText(writer, report)
	default:
		return fmt.Errorf("output: unknown format %q", format)
	}
}

// FormatCompare renders a DuplicateReport in the requested format.
func (f *OutputFormatterImpl) FormatCompare(writer io.Writer, report domain.DuplicateReport, format domain.OutputFormat) error {
	switch format {
	case domain.FormatJSON:
		return WriteJSON(writer, DuplicateReportJSON{
			Version:     version.GetVersion(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Results:     report.Scan.Results,
			Summary:     report.Scan.Summary,
			Duplicates:  report.Duplicates,
		})
	case domain.FormatYAML:
		enc := yaml.NewEncoder(writer)
		defer enc.Close()
		return enc.Encode(DuplicateReportJSON{
			Version:     version.GetVersion(),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Results:     report.Scan.Results,
			Summary:     report.Scan.Summary,
			Duplicates:  report.Duplicates,
		})
	case domain.FormatCSV:
		return writeDuplicateCSV(writer, report)
	case domain.FormatText, "":
		return writeCompareText(writer, report)
	default:
		return fmt.Errorf("output: unknown format %q", format)
	}
}

func writeScanText(w io.Writer, report domain.SignatureReport) error {
	results := append([]domain.SignatureResult(nil), report.Results...)
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	for _, r := range results {
		if r.Err != "" {
			if _, err := fmt.Fprintf(w, "%s\tERROR: %s\n", r.Path, r.Err); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Path, r.Digest); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%d files, %d signed, %d failed\n",
		report.Summary.TotalFiles, report.Summary.SignedFiles, report.Summary.FailedFiles)
	return err
}

func writeCompareText(w io.Writer, report domain.DuplicateReport) error {
	if err := writeScanText(w, report.Scan); err != nil {
		return err
	}

	if len(report.Duplicates) == 0 {
		_, err := fmt.Fprintln(w, "\nno duplicate clusters found")
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%d duplicate cluster(s):\n", len(report.Duplicates)); err != nil {
		return err
	}
	for _, cluster := range report.Duplicates {
		if _, err := fmt.Fprintf(w, "  %s\n", cluster.Digest); err != nil {
			return err
		}
		for _, p := range cluster.Paths {
			if _, err := fmt.Fprintf(w, "    %s\n", p); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeScanCSV(w io.Writer, report domain.SignatureReport) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"path", "digest", "error"}); err != nil {
		return err
	}
	for _, r := range report.Results {
		if err := cw.Write([]string{r.Path, r.Digest, r.Err}); err != nil {
			return err
		}
	}
	return cw.Error()
}

func writeDuplicateCSV(w io.Writer, report domain.DuplicateReport) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"digest", "path"}); err != nil {
		return err
	}
	for _, cluster := range report.Duplicates {
		for _, p := range cluster.Paths {
			if err := cw.Write([]string{cluster.Digest, p}); err != nil {
				return err
			}
		}
	}
	return cw.Error()
}
