package services

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var comparisonExportHeaders = []string{
	"Item Code", "Item Name", "Vendor", "Vendor Code", "Status", "Round",
	"Cost Price", "MRP", "Margin", "Margin %", "Rank", "Preferred Rank",
}

// ExportComparison выгружает таблицу сравнения по всем позициям RFQ в xlsx.
func (s *DeskService) ExportComparison(sessionId string) (*excelize.File, string, error) {
	var f *excelize.File
	var filename string
	_, err := s.withSession(sessionId, func(sess *deskSession) error {
		var err error
		f, err = buildComparisonWorkbook(sess)
		if err != nil {
			return err
		}
		code := sess.desk.RFQ().EventCode
		if code == "" {
			code = sess.rfqId
		}
		filename = fmt.Sprintf("comparison_%s.xlsx", strings.ReplaceAll(code, "/", "_"))
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return f, filename, nil
}

func buildComparisonWorkbook(sess *deskSession) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Comparison"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range comparisonExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	for _, item := range sess.desk.Navigator().Buckets().AllItems {
		for _, r := range sess.desk.Rows(item.ID) {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.ItemCode)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Name)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.VendorName)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.VendorCode)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), string(r.ItemStatus))
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Round)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.CostPrice)
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.MRP)
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.MarginAmount)
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), r.MarginPercentage)
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row), r.Rank)
			f.SetCellValue(sheet, fmt.Sprintf("L%d", row), r.Priority)
			row++
		}
	}

	colWidths := []float64{12, 28, 24, 12, 16, 8, 12, 12, 12, 10, 8, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
	return f, nil
}
