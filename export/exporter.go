// Package export zapisuje klasifikované výsledky kontroly názvů do
// formátů JSON, CSV a XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tonnybx78/cz-name-checker/checker"
)

// Format formát exportu.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat převede uživatelský řetězec na formát exportu.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("neznámý formát exportu %q", s)
	}
}

// ContentType vrátí MIME typ formátu.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Extension vrátí příponu souboru formátu.
func (f Format) Extension() string {
	return string(f)
}

// columns hlavička tabulkových exportů.
var columns = []string{"candidate", "label", "matched_name", "score", "warnings"}

// Write zapíše výsledky v daném formátu.
func Write(w io.Writer, format Format, results []checker.Result) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, results)
	case FormatXLSX:
		return writeXLSX(w, results)
	default:
		return writeJSON(w, results)
	}
}

// WriteFile zapíše výsledky do souboru, formát se odvodí z přípony.
func WriteFile(path string, results []checker.Result) error {
	format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return Write(file, format, results)
}

func writeJSON(w io.Writer, results []checker.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	payload := map[string]interface{}{
		"exported_at": time.Now().Format(time.RFC3339),
		"total":       len(results),
		"results":     results,
	}
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, results []checker.Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.Candidate,
			string(r.Label),
			r.MatchedName,
			strconv.FormatFloat(r.Score, 'f', 1, 64),
			strings.Join(r.Warnings, "; "),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeXLSX(w io.Writer, results []checker.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for rowIdx, r := range results {
		values := []interface{}{
			r.Candidate,
			string(r.Label),
			r.MatchedName,
			r.Score,
			strings.Join(r.Warnings, "; "),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
