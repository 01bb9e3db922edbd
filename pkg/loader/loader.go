// Package loader reads question IDs in bulk from files. It only produces
// text; splitting and filtering IDs is left to qbank.Extract.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// Format identifies how a file is read.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrNoMatches is returned by LoadGlob when no file matches.
var ErrNoMatches = errors.New("no files match pattern")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFormat picks a format from the file extension. Unknown
// extensions are read as plain text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatText
	}
}

// LoadFile returns the normalized text content of path.
// Spreadsheet cells are emitted one per line.
func LoadFile(path string) (string, error) {
	var (
		text string
		err  error
	)

	switch DetectFormat(path) {
	case FormatCSV:
		text, err = loadCSV(path)
	case FormatXLSX:
		text, err = loadXLSX(path)
	default:
		var raw []byte
		raw, err = os.ReadFile(path)
		text = string(raw)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", path, err)
	}

	return Normalize(text), nil
}

// Normalize strips a UTF-8 byte order mark and applies NFKC so that
// full-width digits and letters become their ASCII forms.
func Normalize(text string) string {
	text = strings.TrimPrefix(text, string(utf8BOM))
	return norm.NFKC.String(text)
}

// LoadGlob loads every regular file in dir whose base name matches
// pattern, in name order, joined by newlines.
func LoadGlob(pattern, dir string) (string, []string, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return "", nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && g.Match(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return "", nil, fmt.Errorf("%w: %s in %s", ErrNoMatches, pattern, dir)
	}
	sort.Strings(files)

	parts := make([]string, 0, len(files))
	for _, f := range files {
		text, err := LoadFile(f)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n"), files, nil
}

func loadCSV(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		r.Comma = '\t'
	}

	var cells []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse csv: %w", err)
		}
		cells = appendCells(cells, record)
	}
	return strings.Join(cells, "\n"), nil
}

func loadXLSX(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	var cells []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			cells = appendCells(cells, row)
		}
	}
	return strings.Join(cells, "\n"), nil
}

func appendCells(dst, row []string) []string {
	for _, cell := range row {
		if cell = strings.TrimSpace(cell); cell != "" {
			dst = append(dst, cell)
		}
	}
	return dst
}
