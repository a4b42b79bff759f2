package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

// XLSXSource reads the stored cell values of one sheet of an Excel
// workbook. An empty Sheet selects the first sheet.
type XLSXSource struct {
	Sheet string
}

func (s XLSXSource) Load(ctx context.Context, path string) ([][]string, error) { //nolint:revive // ctx reserved for future use
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &types.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, &types.IOError{Op: "read", Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}
	// Raw values: display formats such as 0.00% or 0.00 would scale or round numbers.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &types.IOError{Op: "read", Path: path + "#" + sheet, Err: err}
	}
	return rows, nil
}
