package report

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/xuri/excelize/v2"

	"survey-insights-go/internal/types"
)

// workbook is a single-sheet excelize file.
type workbook struct {
	f      *excelize.File
	sheet  string
	twoDec int
	signed int
}

func newWorkbook(sheet string) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	twoDec, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("style: %w", err)
	}
	signedFmt := "+0.00;-0.00;0.00"
	signed, err := f.NewStyle(&excelize.Style{CustomNumFmt: &signedFmt})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("style: %w", err)
	}
	return &workbook{f: f, sheet: sheet, twoDec: twoDec, signed: signed}, nil
}

func (w *workbook) Close() error { return w.f.Close() }

// row writes vals starting at column A of the 1-based row.
func (w *workbook) row(row int, vals ...interface{}) error {
	return w.f.SetSheetRow(w.sheet, cellName(1, row), &vals)
}

func (w *workbook) set(col, row int, v interface{}) error {
	return w.f.SetCellValue(w.sheet, cellName(col, row), v)
}

// stat writes a defined value with two decimals; undefined stays blank.
func (w *workbook) stat(col, row int, s types.Stat) error {
	if !s.Valid {
		return nil
	}
	c := cellName(col, row)
	if err := w.f.SetCellValue(w.sheet, c, s.Value); err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, c, c, w.twoDec)
}

func (w *workbook) styleRange(style, c1, r1, c2, r2 int) error {
	return w.f.SetCellStyle(w.sheet, cellName(c1, r1), cellName(c2, r2), style)
}

// ref is an absolute chart reference such as Comparison!$C$2:$C$16.
func (w *workbook) ref(c1, r1, c2, r2 int) string {
	return fmt.Sprintf("%s!%s:%s", w.sheet, absCell(c1, r1), absCell(c2, r2))
}

func (w *workbook) cellRef(col, row int) string {
	return fmt.Sprintf("%s!%s", w.sheet, absCell(col, row))
}

func (w *workbook) chart(anchor string, c *excelize.Chart, combo ...*excelize.Chart) error {
	return w.f.AddChart(w.sheet, anchor, c, combo...)
}

// Layouts are small and fixed, so coordinates are always in range.
func cellName(col, row int) string {
	c, _ := excelize.CoordinatesToCellName(col, row)
	return c
}

func absCell(col, row int) string {
	c, _ := excelize.CoordinatesToCellName(col, row, true)
	return c
}

func title(s string) []excelize.RichTextRun {
	return []excelize.RichTextRun{{Text: s}}
}

func float(v float64) *float64 { return &v }

// save writes the workbook to dir/name.xlsx, retrying transient failures
// such as the file being held open by a spreadsheet application.
func save(w *workbook, dir, name string, maxElapsed time.Duration) (string, error) {
	path := filepath.Join(dir, name+".xlsx")
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxElapsedTime = maxElapsed
	op := func() error {
		err := w.f.SaveAs(path)
		if err == nil {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, excelize.ErrMaxFilePathLength) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(op, bo); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}
