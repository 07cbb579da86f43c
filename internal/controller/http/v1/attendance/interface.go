package attendance

import (
	"context"

	"foodzippy/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	CheckIn(ctx context.Context, request attendance.CheckInRequest) (attendance.Record, error)
	CheckOut(ctx context.Context, request attendance.CheckOutRequest) (attendance.Record, error)
	GetToday(ctx context.Context) (attendance.TodayResponse, error)
	GetMy(ctx context.Context, filter attendance.RangeFilter) ([]attendance.Record, attendance.Statistics, error)
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.Record, int, error)
	GetByAgent(ctx context.Context, agentID int, filter attendance.RangeFilter) (attendance.AgentReport, error)
}
