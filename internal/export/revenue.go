// Package export renders reports as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"

	"github.com/Leganyst/clinic-desk/internal/service"
)

const revenueSheet = "Revenue"

var revenueHeaders = map[string]string{
	"A1": "Key",
	"B1": "Label",
	"C1": "Visits",
	"D1": "Revenue",
}

// RevenueFilename — имя файла для скачивания.
func RevenueFilename(rep *service.Report) string {
	return fmt.Sprintf("revenue_%s_%s_%s.xlsx", rep.Dimension, rep.From, rep.To)
}

// RevenueWorkbook строит книгу: заголовок, строки отчёта, итог.
func RevenueWorkbook(rep *service.Report) *excelize.File {
	file := excelize.NewFile()
	file.NewSheet(revenueSheet)
	file.DeleteSheet("Sheet1")
	file.SetActiveSheet(file.GetSheetIndex(revenueSheet))

	for cell, title := range revenueHeaders {
		file.SetCellValue(revenueSheet, cell, title)
	}

	row := 2
	for _, r := range rep.Rows {
		file.SetCellValue(revenueSheet, fmt.Sprintf("A%d", row), r.Key)
		file.SetCellValue(revenueSheet, fmt.Sprintf("B%d", row), r.Label)
		file.SetCellValue(revenueSheet, fmt.Sprintf("C%d", row), r.Visits)
		file.SetCellValue(revenueSheet, fmt.Sprintf("D%d", row), r.Revenue)
		row++
	}

	file.SetCellValue(revenueSheet, fmt.Sprintf("A%d", row), "Total")
	file.SetCellValue(revenueSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%s..%s by %s", rep.From, rep.To, rep.Dimension))
	file.SetCellValue(revenueSheet, fmt.Sprintf("C%d", row), rep.TotalVisits)
	file.SetCellValue(revenueSheet, fmt.Sprintf("D%d", row), rep.TotalRevenue)
	return file
}

// WriteRevenue пишет отчёт в w в формате xlsx.
func WriteRevenue(w io.Writer, rep *service.Report) error {
	if err := RevenueWorkbook(rep).Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
