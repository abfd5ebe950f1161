// Package stats summarises the routing metrics written by the hardening run.
package stats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Column names in the OpenLane metrics report.
const (
	UtilisationColumn = "OpenDP_Util"
	WireLengthColumn  = "wire_length"
)

var ErrEmptyReport = errors.New("metrics report has no data rows")

// Report holds the values from the first row of the metrics report.
// Values are kept verbatim as they appear in the CSV.
type Report struct {
	Utilisation string
	WireLength  string
}

// Load reads the CSV metrics report at filePath.
func Load(filePath string) (*Report, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return Parse(file)
}

// Parse reads a header row and the first data row from r.
func Parse(r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyReport
	}
	if err != nil {
		return nil, fmt.Errorf("read metrics header: %w", err)
	}

	row, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyReport
	}
	if err != nil {
		return nil, fmt.Errorf("read metrics row: %w", err)
	}

	record := make(map[string]string, len(header))
	for i, name := range header {
		record[name] = row[i]
	}

	report := &Report{}
	var ok bool
	if report.Utilisation, ok = record[UtilisationColumn]; !ok {
		return nil, fmt.Errorf("metrics report has no %s column", UtilisationColumn)
	}
	if report.WireLength, ok = record[WireLengthColumn]; !ok {
		return nil, fmt.Errorf("metrics report has no %s column", WireLengthColumn)
	}
	return report, nil
}

// WriteMarkdown prints the report as a markdown table.
// Only a terminal stdout gets a coloured heading; any other writer, and stdout
// with color.NoColor set, receives plain markdown.
func (r *Report) WriteMarkdown(w io.Writer) error {
	heading := "# Routing stats"
	if w == os.Stdout {
		heading = color.New(color.FgCyan, color.Bold).Sprint(heading)
	}
	_, err := fmt.Fprintf(w, "%s\n\n| Utilisation | Wire length (um) |\n|-------------|------------------|\n| %s | %s |\n",
		heading, r.Utilisation, r.WireLength)
	return err
}
