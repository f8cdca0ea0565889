package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/datablast-analytics/blast-redshift/pkg/table"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// excelize always starts a new file with this sheet, the first added sheet takes it over.
const defaultSheetName = "Sheet1"

// Workbook is an ordered collection of sheets that is written out as a whole.
type Workbook struct {
	file   *excelize.File
	sheets []string
}

func NewWorkbook() *Workbook {
	return &Workbook{
		file:   excelize.NewFile(),
		sheets: make([]string, 0),
	}
}

func (w *Workbook) SheetNames() []string {
	return append([]string{}, w.sheets...)
}

// AddSheet appends the table as a new sheet: the headers on the first row and the rows below, without an index column.
// An empty name falls back to Sheet<N>, N being the position of the sheet, or the next free number if that name is taken.
func (w *Workbook) AddSheet(name string, t *table.Table) error {
	if name == "" {
		name = w.defaultName()
	}

	if w.hasSheet(name) {
		return errors.Errorf("duplicate sheet name '%s'", name)
	}

	if len(w.sheets) == 0 {
		if err := w.file.SetSheetName(defaultSheetName, name); err != nil {
			return errors.Wrapf(err, "invalid sheet name '%s'", name)
		}
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return errors.Wrapf(err, "invalid sheet name '%s'", name)
		}
	}

	w.sheets = append(w.sheets, name)

	header := make([]interface{}, len(t.Columns))
	for i, column := range t.Columns {
		header[i] = column
	}

	if err := w.setRow(name, 1, header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		if err := w.setRow(name, i+2, row); err != nil {
			return err
		}
	}

	return nil
}

func (w *Workbook) defaultName() string {
	for n := len(w.sheets) + 1; ; n++ {
		name := fmt.Sprintf("Sheet%d", n)
		if !w.hasSheet(name) {
			return name
		}
	}
}

func (w *Workbook) hasSheet(name string) bool {
	for _, existing := range w.sheets {
		if strings.EqualFold(existing, name) {
			return true
		}
	}

	return false
}

func (w *Workbook) setRow(sheet string, rowNumber int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return errors.Wrapf(err, "invalid row number %d", rowNumber)
	}

	if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(err, "failed to write row %d of sheet '%s'", rowNumber, sheet)
	}

	return nil
}

// Save writes the whole workbook to dst in one go and closes it.
func (w *Workbook) Save(dst io.WriteCloser) error {
	if _, err := w.file.WriteTo(dst); err != nil {
		_ = dst.Close()
		return errors.Wrap(err, "failed to write the workbook")
	}

	if err := dst.Close(); err != nil {
		return errors.Wrap(err, "failed to persist the workbook")
	}

	return nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}
