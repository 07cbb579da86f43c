package attendance

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"foodzippy/backend/foundation/web"
	"foodzippy/backend/internal/repository/postgres/attendance"
	"foodzippy/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance}
}

const dayLayout = "2006-01-02"

// rangeFilter reads the shared month/year and start_date/end_date query
// selectors. Dates arrive as plain yyyy-mm-dd values.
func (uc Controller) rangeFilter(c *web.Context) (attendance.RangeFilter, error) {
	var filter attendance.RangeFilter

	if month, ok := c.GetQueryFunc(reflect.Int, "month").(*int); ok {
		filter.Month = month
	}
	if year, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok {
		filter.Year = year
	}
	if start, ok := c.GetQueryFunc(reflect.String, "start_date").(*string); ok && start != nil {
		t, err := time.Parse(dayLayout, *start)
		if err != nil {
			return filter, web.NewRequestError(errors.New("start_date must be yyyy-mm-dd"), http.StatusBadRequest)
		}
		filter.StartDate = &t
	}
	if end, ok := c.GetQueryFunc(reflect.String, "end_date").(*string); ok && end != nil {
		t, err := time.Parse(dayLayout, *end)
		if err != nil {
			return filter, web.NewRequestError(errors.New("end_date must be yyyy-mm-dd"), http.StatusBadRequest)
		}
		endOfDay := t.AddDate(0, 0, 1).Add(-time.Second)
		filter.EndDate = &endOfDay
	}
	if err := c.ValidQuery(); err != nil {
		return filter, err
	}

	return filter, nil
}

func (uc Controller) CheckIn(c *web.Context) error {
	var data attendance.CheckInRequest

	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}

	record, err := uc.attendance.CheckIn(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Checked in",
		"data":    record,
	}, http.StatusCreated)
}

func (uc Controller) CheckOut(c *web.Context) error {
	var data attendance.CheckOutRequest

	if err := c.BindFunc(&data); err != nil {
		return c.RespondError(err)
	}

	record, err := uc.attendance.CheckOut(c.Ctx, data)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Checked out",
		"data":    record,
	}, http.StatusOK)
}

func (uc Controller) GetToday(c *web.Context) error {
	response, err := uc.attendance.GetToday(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data":    response,
	}, http.StatusOK)
}

func (uc Controller) GetMy(c *web.Context) error {
	filter, err := uc.rangeFilter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, stats, err := uc.attendance.GetMy(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"attendance": list,
			"count":      len(list),
			"statistics": stats,
		},
	}, http.StatusOK)
}

func (uc Controller) filter(c *web.Context) (attendance.Filter, error) {
	rangeFilter, err := uc.rangeFilter(c)
	if err != nil {
		return attendance.Filter{}, err
	}

	filter := attendance.Filter{RangeFilter: rangeFilter}
	if agentID, ok := c.GetQueryFunc(reflect.Int, "agent_id").(*int); ok {
		filter.AgentID = agentID
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if err := c.ValidQuery(); err != nil {
		return attendance.Filter{}, err
	}

	return filter, nil
}

func (uc Controller) GetList(c *web.Context) error {
	filter, err := uc.filter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
	}, http.StatusOK)
}

func (uc Controller) GetByAgent(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	filter, err := uc.rangeFilter(c)
	if err != nil {
		return c.RespondError(err)
	}

	report, err := uc.attendance.GetByAgent(c.Ctx, id, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data":    report,
	}, http.StatusOK)
}

func excelRows(list []attendance.Record) []service.AttendanceRow {
	rows := make([]service.AttendanceRow, 0, len(list))
	for _, record := range list {
		row := service.AttendanceRow{
			WorkDay:  record.WorkDay.Format(dayLayout),
			CheckIn:  record.CheckIn.Format("15:04"),
			Duration: record.Duration,
			Status:   record.Status,
		}
		if record.AgentName != nil {
			row.AgentName = *record.AgentName
		}
		if record.CheckOut != nil {
			row.CheckOut = record.CheckOut.Format("15:04")
		}
		if record.Remark != nil {
			row.Remark = *record.Remark
		}
		rows = append(rows, row)
	}
	return rows
}

// Export streams the filtered admin list as an .xlsx workbook.
func (uc Controller) Export(c *web.Context) error {
	filter, err := uc.filter(c)
	if err != nil {
		return c.RespondError(err)
	}

	// the export always covers the whole window
	filter.Limit = nil
	filter.Offset = nil
	filter.Page = nil

	list, _, err := uc.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	file, err := service.BuildAttendanceExcel(excelRows(list))
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "building workbook"), http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, time.Now().Format(dayLayout)))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "writing workbook"), http.StatusInternalServerError))
	}
	return nil
}

// GetAgentReport streams a per-agent summary PDF over the selected window.
func (uc Controller) GetAgentReport(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	filter, err := uc.rangeFilter(c)
	if err != nil {
		return c.RespondError(err)
	}

	report, err := uc.attendance.GetByAgent(c.Ctx, id, filter)
	if err != nil {
		return c.RespondError(err)
	}

	summary := service.ReportSummary{
		Period:      fmt.Sprintf("%s - %s", report.Start.Format(dayLayout), report.End.Format(dayLayout)),
		TotalDays:   report.Statistics.TotalDays,
		PresentDays: report.Statistics.PresentDays,
		HalfDays:    report.Statistics.HalfDays,
		AvgDuration: report.Statistics.AvgDuration,
		TotalHours:  report.Statistics.TotalHours,
	}
	if report.Agent.FullName != nil {
		summary.AgentName = *report.Agent.FullName
	}

	pdf, err := service.BuildAttendanceReport(summary, excelRows(report.Records))
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "building report"), http.StatusInternalServerError))
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="agent-%d-report.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
	return nil
}
