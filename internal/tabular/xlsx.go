package tabular

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Variants"

// Workbook renders rows as a spreadsheet with the same column contract
// as Serialize, for merchants who edit variants in Excel rather than a
// text editor.
func Workbook(rows []Row, attributeNames []string) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	if err := writeHeader(f, attributeNames); err != nil {
		f.Close()
		return nil, err
	}

	for i, row := range rows {
		rec := make([]interface{}, 0, len(attributeNames)+6)
		rec = append(rec, row.SKU)
		for _, name := range attributeNames {
			rec = append(rec, attributeValue(row, name))
		}
		rec = append(rec, row.Price)
		if row.ComparePrice != nil {
			rec = append(rec, *row.ComparePrice)
		} else {
			rec = append(rec, "")
		}
		rec = append(rec, row.Stock, strings.Join(row.Images, ","), row.IsActive)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &rec); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// Template produces a headers-only workbook for merchants to fill in.
func Template(attributeNames []string) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	if err := writeHeader(f, attributeNames); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeHeader(f *excelize.File, attributeNames []string) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	header := make([]string, 0, len(attributeNames)+6)
	header = append(header, "SKU")
	header = append(header, attributeNames...)
	header = append(header, "Price", "Compare Price", "Stock", "Images", "Is Active")

	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	return nil
}
