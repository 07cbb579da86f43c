package attendance

import (
	"encoding/json"
	"time"

	"foodzippy/backend/internal/entity"

	"github.com/Azure/go-autorest/autorest/date"
)

type Filter struct {
	RangeFilter
	AgentID *int
	Status  *string
	Limit   *int
	Offset  *int
	Page    *int
}

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
	Remark    *string  `json:"remark" form:"remark"`
}

// Record is an attendance row together with its derived fields. Duration
// and status are always recomputed from the stored timestamps.
type Record struct {
	entity.AgentAttendance
	Duration int    `json:"duration"`
	Status   string `json:"status,omitempty"`
}

// MarshalJSON renders the work day as a plain date rather than a midnight
// timestamp.
func (r Record) MarshalJSON() ([]byte, error) {
	type Alias Record
	aux := struct {
		Alias
		WorkDay date.Date `json:"work_day"`
	}{
		Alias:   Alias(r),
		WorkDay: date.Date{Time: r.WorkDay},
	}
	return json.Marshal(aux)
}

type TodayResponse struct {
	Attendance    *Record `json:"attendance"`
	HasCheckedIn  bool    `json:"hasCheckedIn"`
	HasCheckedOut bool    `json:"hasCheckedOut"`
}

type AgentSummary struct {
	ID       int     `json:"id"`
	FullName *string `json:"full_name"`
	Username *string `json:"username"`
	Role     *string `json:"role"`
}

type AgentReport struct {
	Agent      AgentSummary `json:"agent"`
	Statistics Statistics   `json:"statistics"`
	Records    []Record     `json:"attendance"`
	Start      time.Time    `json:"-"`
	End        time.Time    `json:"-"`
}
