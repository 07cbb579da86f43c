package restaurant

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"foodzippy/backend/internal/entity"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Status *string
	City   *string
	Search *string
}

// CreateRequest is the multipart registration payload. Image is attached by
// the controller after the upload succeeds; Review arrives JSON-encoded the
// way the field apps send it. Any caller-supplied status is ignored.
type CreateRequest struct {
	Name          *string  `json:"name" form:"name"`
	FullAddress   *string  `json:"full_address" form:"full_address"`
	Latitude      *float64 `json:"latitude" form:"latitude"`
	Longitude     *float64 `json:"longitude" form:"longitude"`
	City          *string  `json:"city" form:"city"`
	LoginEmail    *string  `json:"login_email" form:"login_email"`
	LoginPassword *string  `json:"login_password" form:"login_password"`

	Services   []string `json:"services" form:"services"`
	Categories []string `json:"categories" form:"categories"`

	Review string `json:"review" form:"review"`

	Image   json.RawMessage `json:"-" form:"-"`
	Profile entity.Profile  `json:"-" form:"-"`
}

// ReviewInput mirrors the embedded review substructure on the wire.
type ReviewInput struct {
	FollowUpDate     *time.Time `json:"followUpDate"`
	ConvincingStatus *string    `json:"convincingStatus"`
	Behavior         *string    `json:"behavior"`
	AudioURL         *string    `json:"audioUrl"`
}

// UpdateRequest is the admin generic update. Location fields are absent on
// purpose: address and coordinates are immutable after creation. Status is
// only touched when the payload carries it.
type UpdateRequest struct {
	ID int `json:"-"`

	Name       *string        `json:"name"`
	City       *string        `json:"city"`
	LoginEmail *string        `json:"login_email"`
	Services   []string       `json:"services"`
	Categories []string       `json:"categories"`
	Status     *string        `json:"status"`
	Profile    entity.Profile `json:"profile"`
}

type UpdateStatusRequest struct {
	ID     int     `json:"-"`
	Status *string `json:"status" form:"status"`
}

type MonthlyCount struct {
	Year  int `json:"year" bun:"year"`
	Month int `json:"month" bun:"month"`
	Count int `json:"count" bun:"count"`
}

type StatusSummary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Published int `json:"published"`
	Rejected  int `json:"rejected"`
}

type AnalyticsResponse struct {
	MonthlyRequests []MonthlyCount `json:"monthly_requests"`
	Summary         StatusSummary  `json:"summary"`
}

// ParseStringList normalizes a list-typed form field. Repeated form keys
// arrive as several values; a single value may itself be a JSON-encoded
// array; a single scalar is promoted to a one-element list.
func ParseStringList(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	if len(values) == 1 {
		raw := strings.TrimSpace(values[0])
		if raw == "" {
			return []string{}
		}
		var parsed []string
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			return parsed
		}
		return []string{raw}
	}

	return values
}

// ParseFormScalar classifies a raw form value into the profile sum type:
// booleans and numbers keep their kind, RFC3339 strings become dates,
// everything else stays text.
func ParseFormScalar(raw string) entity.ProfileValue {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "true" || trimmed == "false" {
		return entity.BoolValue(trimmed == "true")
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return entity.NumberValue(n)
	}
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return entity.DateValue(t)
	}
	return entity.StringValue(raw)
}
