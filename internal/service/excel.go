package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type AttendanceRow struct {
	AgentName string
	WorkDay   string
	CheckIn   string
	CheckOut  string
	Duration  int
	Status    string
	Remark    string
}

// BuildAttendanceExcel renders the admin attendance list as a workbook.
func BuildAttendanceExcel(rows []AttendanceRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Agent", "Work Day", "Check In", "Check Out", "Duration (min)", "Status", "Remark"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	rowNum := 2
	for _, entry := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), entry.AgentName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), entry.WorkDay)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), entry.CheckIn)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), entry.CheckOut)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), entry.Duration)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), entry.Status)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), entry.Remark)
		rowNum++
	}

	return f, nil
}
