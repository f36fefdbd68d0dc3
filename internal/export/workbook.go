package export

import (
	"fmt"

	"github.com/mauv0809/pkhk-scout/internal/swimming"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Members"

var workbookHeader = []any{"First name", "Last name", "User ID", "Club"}

// WriteWorkbook writes people to an Excel workbook at path, one row per
// person under a header row. Invalid records are skipped as in WriteResults.
func WriteWorkbook(people []swimming.Person, path string) (WriteResult, error) {
	valid, skipped := Valid(people)
	result := WriteResult{Skipped: skipped}
	if len(valid) == 0 {
		return result, ErrNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return result, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &workbookHeader); err != nil {
		return result, fmt.Errorf("failed to write header row: %w", err)
	}
	for i, p := range valid {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return result, err
		}
		row := []any{p.FirstName, p.LastName, p.UserID.String(), p.ClubAbbrev}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return result, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return result, fmt.Errorf("failed to save workbook: %w", err)
	}
	result.Written = len(valid)
	return result, nil
}
