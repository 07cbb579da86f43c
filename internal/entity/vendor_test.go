package entity

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestReviewValidate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		review  Review
		wantErr bool
	}{
		{
			name: "complete review",
			review: Review{
				FollowUpDate:     &now,
				ConvincingStatus: strPtr(ConvincingConvertible),
				Behavior:         strPtr(BehaviorGood),
			},
			wantErr: false,
		},
		{
			name: "missing follow up date",
			review: Review{
				ConvincingStatus: strPtr(ConvincingConvertible),
				Behavior:         strPtr(BehaviorGood),
			},
			wantErr: true,
		},
		{
			name: "unknown convincing status",
			review: Review{
				FollowUpDate:     &now,
				ConvincingStatus: strPtr("maybe"),
				Behavior:         strPtr(BehaviorGood),
			},
			wantErr: true,
		},
		{
			name: "unknown behavior",
			review: Review{
				FollowUpDate:     &now,
				ConvincingStatus: strPtr(ConvincingConvenience),
				Behavior:         strPtr("angry"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.review.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReviewPresent(t *testing.T) {
	if (Review{}).Present() {
		t.Error("empty review reported as present")
	}
	if !(Review{Behavior: strPtr(BehaviorGood)}).Present() {
		t.Error("partially filled review reported as absent")
	}
}

func TestEditRequestLifecycle(t *testing.T) {
	var e EditRequest
	now := time.Now()

	if err := e.Approve(now); err != ErrNoEditRequest {
		t.Fatalf("approve on baseline: got %v, want ErrNoEditRequest", err)
	}
	if err := e.Reject(); err != ErrNoEditRequest {
		t.Fatalf("reject on baseline: got %v, want ErrNoEditRequest", err)
	}

	e.Raise(now, "need to fix the address")
	if !e.Pending() {
		t.Fatal("raised request not pending")
	}
	if e.SeenByAdmin {
		t.Fatal("raised request already seen")
	}

	if err := e.Approve(now); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if e.Pending() {
		t.Fatal("approved request still pending")
	}
	if !e.Requested {
		t.Fatal("approval cleared the requested flag")
	}
	if e.ApprovalDate == nil {
		t.Fatal("approval date not set")
	}
}

func TestEditRequestRejectResetsBaseline(t *testing.T) {
	var e EditRequest
	now := time.Now()

	e.Raise(now, "wrong city")
	if err := e.Reject(); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if e.Requested || e.Approved {
		t.Error("reject left flags set")
	}
	if e.RequestDate != nil || e.ApprovalDate != nil {
		t.Error("reject left dates set")
	}
	if e.Remark != "" {
		t.Errorf("reject left remark %q", e.Remark)
	}
}

func TestEditRequestReraiseAfterApproval(t *testing.T) {
	var e EditRequest
	now := time.Now()

	e.Raise(now, "first")
	if err := e.Approve(now); err != nil {
		t.Fatalf("approve: %v", err)
	}

	later := now.Add(time.Hour)
	e.Raise(later, "second")

	if !e.Pending() {
		t.Fatal("re-raised request not pending")
	}
	if e.Approved {
		t.Fatal("re-raise kept the approved flag")
	}
	if e.Remark != "second" {
		t.Errorf("remark = %q, want %q", e.Remark, "second")
	}
}

func TestVendorStatusValid(t *testing.T) {
	for _, s := range []VendorStatus{VendorPending, VendorPublished, VendorRejected} {
		if !s.Valid() {
			t.Errorf("%q reported invalid", s)
		}
	}
	if VendorStatus("archived").Valid() {
		t.Error("unknown status reported valid")
	}
}
