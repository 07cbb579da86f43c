package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
)

type ReportSummary struct {
	AgentName   string
	Period      string
	TotalDays   int
	PresentDays int
	HalfDays    int
	AvgDuration int
	TotalHours  int
}

// BuildAttendanceReport renders a per-agent attendance summary as a PDF.
func BuildAttendanceReport(summary ReportSummary, rows []AttendanceRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Attendance Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Agent: %s", summary.AgentName))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s", summary.Period))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Days: %d  Present: %d  Half-Day: %d  Avg: %d min  Total: %d h",
		summary.TotalDays, summary.PresentDays, summary.HalfDays, summary.AvgDuration, summary.TotalHours))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{30, 25, 25, 30, 25, 55}
	headers := []string{"Work Day", "Check In", "Check Out", "Duration (min)", "Status", "Remark"}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 7, row.WorkDay, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, row.CheckIn, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, row.CheckOut, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%d", row.Duration), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, row.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 7, row.Remark, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
