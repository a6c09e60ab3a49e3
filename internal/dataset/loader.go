package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"survey-insights-go/internal/types"
)

var (
	ErrNoData = errors.New("no data rows")
	ErrLayout = errors.New("unexpected column layout")
)

// Dataset is the raw survey export: header plus one Response per data row.
type Dataset struct {
	Header    []string
	Responses []types.Response
	Columns   Columns
}

// Columns holds detected indices of the metadata and free-text columns; -1 when absent.
type Columns struct {
	Age      int `json:"age"`
	Gender   int `json:"gender"`
	Field    int `json:"field_of_study"`
	Fairness int `json:"fairness_text"`
	Feature  int `json:"feature_text"`
}

// Shape mirrors the (rows, columns) pair reported to the operator.
func (d *Dataset) Shape() (int, int) {
	return len(d.Responses), len(d.Header)
}

// ColumnNames returns the headers in r, padding with "" when the header is short.
func (d *Dataset) ColumnNames(r types.Range) []string {
	out := make([]string, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		if i < len(d.Header) {
			out = append(out, d.Header[i])
		} else {
			out = append(out, "")
		}
	}
	return out
}

// Load reads a .xlsx workbook (first sheet) or a delimited text file.
func Load(path string) (*Dataset, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path)
	default:
		rows, err = readDelimited(path)
	}
	if err != nil {
		return nil, err
	}
	return build(rows)
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

func readDelimited(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses comma-separated records; rows may have differing widths.
func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func build(rows [][]string) (*Dataset, error) {
	if len(rows) <= 1 {
		return nil, ErrNoData
	}
	header := rows[0]
	if len(header) < types.MinColumns {
		return nil, fmt.Errorf("%w: need at least %d columns, got %d", ErrLayout, types.MinColumns, len(header))
	}
	cols := detectColumns(header)

	out := make([]types.Response, 0, len(rows)-1)
	for i, r := range rows {
		if i == 0 {
			continue
		}
		rec := types.Response{Row: i, Cells: r}
		rec.Age = cellAt(r, cols.Age)
		rec.Gender = cellAt(r, cols.Gender)
		rec.Field = cellAt(r, cols.Field)
		rec.Fairness = cellAt(r, cols.Fairness)
		rec.Feature = cellAt(r, cols.Feature)
		out = append(out, rec)
	}
	return &Dataset{Header: header, Responses: out, Columns: cols}, nil
}

// detectColumns finds metadata columns by English header keywords.
// Scenario columns are never candidates; free-text headers must match exactly.
func detectColumns(header []string) Columns {
	cols := Columns{Age: -1, Gender: -1, Field: -1, Fairness: -1, Feature: -1}
	for i, h := range header {
		switch h {
		case types.FairnessTextHeader:
			cols.Fairness = i
			continue
		case types.FeatureTextHeader:
			cols.Feature = i
			continue
		}
		if inScenario(i) {
			continue
		}
		l := englishSegment(h)
		switch {
		case l == "age" || strings.HasPrefix(l, "age ") || strings.HasPrefix(l, "age("):
			if cols.Age == -1 {
				cols.Age = i
			}
		case strings.Contains(l, "gender") || strings.Contains(l, "sex"):
			if cols.Gender == -1 {
				cols.Gender = i
			}
		case strings.Contains(l, "field") || strings.Contains(l, "study") || strings.Contains(l, "major"):
			if cols.Field == -1 {
				cols.Field = i
			}
		}
	}
	return cols
}

func englishSegment(h string) string {
	if i := strings.Index(h, "|"); i >= 0 {
		h = h[:i]
	}
	return strings.ToLower(strings.TrimSpace(h))
}

func inScenario(i int) bool {
	return (i >= types.ScenarioA.Start && i < types.ScenarioA.End) ||
		(i >= types.ScenarioB.Start && i < types.ScenarioB.End)
}

func cellAt(r []string, idx int) string {
	if idx >= 0 && idx < len(r) {
		return r[idx]
	}
	return ""
}
