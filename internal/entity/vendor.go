package entity

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type VendorStatus string

const (
	VendorPending   VendorStatus = "pending"
	VendorPublished VendorStatus = "published"
	VendorRejected  VendorStatus = "rejected"
)

func (s VendorStatus) Valid() bool {
	switch s {
	case VendorPending, VendorPublished, VendorRejected:
		return true
	}
	return false
}

const (
	ConvincingConvenience    = "convenience"
	ConvincingConvertible    = "convertible"
	ConvincingNotConvertible = "not_convertible"
)

const (
	BehaviorExcellent = "excellent"
	BehaviorGood      = "good"
	BehaviorRude      = "rude"
)

var ErrNoEditRequest = errors.New("no edit request found")

// Vendor is a restaurant record submitted by a field agent or employee and
// routed through the admin approval pipeline. Identity and location fields
// are strongly typed; everything else vendor-type-specific lives in Profile.
type Vendor struct {
	bun.BaseModel `bun:"table:vendors"`

	BasicEntity
	Name        *string         `json:"name" bun:"name"`
	Image       json.RawMessage `json:"image" bun:"image,type:jsonb"`
	Status      VendorStatus    `json:"status" bun:"status"`
	LoginEmail  *string         `json:"login_email,omitempty" bun:"login_email"`
	FullAddress *string         `json:"full_address" bun:"full_address"`
	Latitude    *float64        `json:"latitude" bun:"latitude"`
	Longitude   *float64        `json:"longitude" bun:"longitude"`
	City        *string         `json:"city,omitempty" bun:"city"`
	Services    []string        `json:"services" bun:"services,array"`
	Categories  []string        `json:"categories" bun:"categories,array"`
	Profile     Profile         `json:"profile" bun:"profile,type:jsonb"`

	Review      Review      `json:"review" bun:"embed:review_"`
	EditRequest EditRequest `json:"edit_request" bun:"embed:edit_"`

	CreatedByName     *string `json:"created_by_name" bun:"created_by_name"`
	CreatedByUserID   *int    `json:"created_by_user_id" bun:"created_by_user_id"`
	CreatedByUsername *string `json:"created_by_username" bun:"created_by_username"`
	CreatedByRole     *string `json:"created_by_role" bun:"created_by_role"`
}

// Review is the follow-up assessment captured once at registration. It has
// no identity of its own and is never mutated afterwards.
type Review struct {
	FollowUpDate     *time.Time `json:"follow_up_date,omitempty" bun:"follow_up_date"`
	ConvincingStatus *string    `json:"convincing_status,omitempty" bun:"convincing_status"`
	Behavior         *string    `json:"behavior,omitempty" bun:"behavior"`
	AudioURL         *string    `json:"audio_url,omitempty" bun:"audio_url"`
}

// Present reports whether a review was captured at all.
func (r Review) Present() bool {
	return r.FollowUpDate != nil || r.ConvincingStatus != nil || r.Behavior != nil || r.AudioURL != nil
}

// Validate checks a supplied review for completeness and enum membership.
func (r Review) Validate() error {
	if r.FollowUpDate == nil || r.ConvincingStatus == nil || r.Behavior == nil {
		return errors.New("review must include followUpDate, convincingStatus, and behavior")
	}
	switch *r.ConvincingStatus {
	case ConvincingConvenience, ConvincingConvertible, ConvincingNotConvertible:
	default:
		return errors.Errorf("invalid convincing status %q", *r.ConvincingStatus)
	}
	switch *r.Behavior {
	case BehaviorExcellent, BehaviorGood, BehaviorRude:
	default:
		return errors.Errorf("invalid behavior %q", *r.Behavior)
	}
	return nil
}

// EditRequest is a sub-state-machine layered on the vendor record:
// none -> requested -> {approved | none}. Approving keeps requested set so
// the terminal approved state is distinguishable from a pending request.
type EditRequest struct {
	Requested    bool       `json:"requested" bun:"requested"`
	Approved     bool       `json:"approved" bun:"approved"`
	RequestDate  *time.Time `json:"request_date,omitempty" bun:"request_date"`
	ApprovalDate *time.Time `json:"approval_date,omitempty" bun:"approval_date"`
	Remark       string     `json:"remark" bun:"remark"`
	SeenByAdmin  bool       `json:"seen_by_admin" bun:"seen_by_admin"`
}

// Raise opens (or re-opens) an edit request on behalf of the creator.
func (e *EditRequest) Raise(now time.Time, remark string) {
	e.Requested = true
	e.Approved = false
	e.RequestDate = &now
	e.ApprovalDate = nil
	e.Remark = remark
	e.SeenByAdmin = false
}

// Approve grants a pending edit request.
func (e *EditRequest) Approve(now time.Time) error {
	if !e.Requested {
		return ErrNoEditRequest
	}
	e.Approved = true
	e.ApprovalDate = &now
	return nil
}

// Reject discards a pending edit request, returning the substructure to its
// exact baseline. No rejection history is kept.
func (e *EditRequest) Reject() error {
	if !e.Requested {
		return ErrNoEditRequest
	}
	e.Requested = false
	e.Approved = false
	e.RequestDate = nil
	e.ApprovalDate = nil
	e.Remark = ""
	return nil
}

// Pending reports whether the request is raised and not yet approved.
func (e EditRequest) Pending() bool {
	return e.Requested && !e.Approved
}
