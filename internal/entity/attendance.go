package entity

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	AttendancePresent = "Present"
	AttendanceHalfDay = "Half-Day"
)

// AgentAttendance is one check-in/check-out session. The (agent_id,
// work_day) pair is unique at the storage layer; the work day is always the
// start of a calendar day.
type AgentAttendance struct {
	bun.BaseModel `bun:"table:agent_attendance"`

	BasicEntity
	AgentID   *int       `json:"agent_id" bun:"agent_id"`
	AgentName *string    `json:"agent_name" bun:"agent_name"`
	WorkDay   time.Time  `json:"work_day" bun:"work_day"`
	CheckIn   time.Time  `json:"check_in" bun:"check_in"`
	CheckOut  *time.Time `json:"check_out,omitempty" bun:"check_out"`

	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty" bun:"check_in_latitude"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty" bun:"check_in_longitude"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty" bun:"check_out_latitude"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty" bun:"check_out_longitude"`

	Remark *string `json:"remark,omitempty" bun:"remark"`
}
