package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/KaramelBytes/dataclean-cli/internal/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrNoRows is returned when a file has a header but no data rows.
var ErrNoRows = errors.New("dataset has no data rows")

// Options controls how delimited files are read into a data frame.
type Options struct {
	// Delimiter for CSV. If 0, '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// Numeric parsing locale. With both 0, a column is rewritten only when all its values
	// agree on one convention and do not already parse as plain numbers.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, the first of ',' '.' space other than the decimal separator
	// NaNValues are cells loaded as missing.
	NaNValues []string
}

// DefaultOptions returns reasonable defaults for loading a dataset.
func DefaultOptions() Options {
	return Options{
		NaNValues: []string{"", "NA", "NaN", "N/A", "null"},
	}
}

// Table is a loaded dataset plus what happened while reading it.
type Table struct {
	Name      string
	Frame     dataframe.DataFrame
	Rows      int // data rows in the source
	Processed int // data rows loaded into Frame
	Warnings  []string
	// Normalized lists columns whose locale-formatted numbers were rewritten as plain decimals.
	Normalized []string
}

// Load reads a CSV/TSV file into a Table.
func Load(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Read(f, path, opt)
}

// Read parses delimited text from r. name is used for the table name and delimiter sniffing.
func Read(r io.Reader, name string, opt Options) (*Table, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(name)
	}
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRows
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	names := columnNames(header)
	ncol := len(names)

	t := &Table{Name: filepath.Base(name)}
	var rows [][]string
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", t.Rows+1, err)
		}
		t.Rows++
		if t.Processed >= maxRows {
			continue
		}
		t.Processed++
		// Pad short rows, drop extra cells.
		row := make([]string, ncol)
		copy(row, rec)
		for j, v := range row {
			row[j] = strings.TrimSpace(v)
		}
		rows = append(rows, row)
	}
	if t.Processed == 0 {
		return nil, ErrNoRows
	}
	if t.Processed < t.Rows {
		t.Warnings = append(t.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", t.Processed, t.Rows))
	}

	nan := opt.NaNValues
	if nan == nil {
		nan = DefaultOptions().NaNValues
	}
	types := t.normalize(names, rows, nan, opt)
	df := dataframe.LoadRecords(append([][]string{names}, rows...),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(nan),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load records: %w", df.Err)
	}
	t.Frame = df
	return t, nil
}

// normalize rewrites columns whose every value is a locale-formatted number into plain
// decimal text, in place. Columns holding codes with leading zeros are pinned to
// series.String so type detection cannot strip the zeros. Any other column is left as read.
func (t *Table) normalize(names []string, rows [][]string, nan []string, opt Options) map[string]series.Type {
	types := make(map[string]series.Type)
	cells := make([]string, len(rows))
	for j, col := range names {
		text := false
		for i, row := range rows {
			v := row[j]
			if slices.Contains(nan, v) {
				v = ""
			}
			if hasLeadingZero(v) {
				text = true
			}
			cells[i] = v
		}
		if text {
			types[col] = series.String
			continue
		}
		l, ok := columnLayout(cells, opt)
		if !ok {
			continue
		}
		for i, v := range cells {
			if v == "" {
				continue
			}
			f, _ := parseNumber(v, l)
			rows[i][j] = strconv.FormatFloat(f, 'f', -1, 64)
		}
		t.Normalized = append(t.Normalized, col)
	}
	return types
}

// Save writes df as CSV with a header row, replacing path atomically.
func Save(path string, df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("dataset: %w", df.Err)
	}
	var buf bytes.Buffer
	if err := df.WriteCSV(&buf); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

// columnNames trims header cells and names blank or repeated ones so every column is addressable.
func columnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		n := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if n == "" {
			n = fmt.Sprintf("column_%d", i+1)
		}
		if c := seen[n]; c > 0 {
			seen[n] = c + 1
			n = fmt.Sprintf("%s_%d", n, c+1)
		} else {
			seen[n] = 1
		}
		names[i] = n
	}
	return names
}

func sniffDelimiter(path string) rune {
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".tsv") {
		return '\t'
	}
	return ','
}
