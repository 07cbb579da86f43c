package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func TestProfileValueRoundTrip(t *testing.T) {
	stamp := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

	original := Profile{
		"cuisine":      StringValue("north indian"),
		"seats":        NumberValue(42),
		"pure_veg":     BoolValue(true),
		"opening_date": DateValue(stamp),
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Profile
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if s, ok := decoded["cuisine"].String(); !ok || s != "north indian" {
		t.Errorf("cuisine = %q, %v", s, ok)
	}
	if n, ok := decoded["seats"].Number(); !ok || n != 42 {
		t.Errorf("seats = %v, %v", n, ok)
	}
	if b, ok := decoded["pure_veg"].Bool(); !ok || !b {
		t.Errorf("pure_veg = %v, %v", b, ok)
	}
	if d, ok := decoded["opening_date"].Date(); !ok || !d.Equal(stamp) {
		t.Errorf("opening_date = %v, %v", d, ok)
	}
}

func TestProfileValueRejectsComposites(t *testing.T) {
	for _, raw := range []string{`{"a":1}`, `[1,2]`, `null`} {
		var v ProfileValue
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			t.Errorf("unmarshal %s: expected error", raw)
		}
	}
}

func TestProfileMerge(t *testing.T) {
	base := Profile{
		"cuisine": StringValue("mughlai"),
		"seats":   NumberValue(20),
	}
	overlay := Profile{
		"seats":    NumberValue(35),
		"pure_veg": BoolValue(false),
	}

	merged := base.Merge(overlay)

	if n, _ := merged["seats"].Number(); n != 35 {
		t.Errorf("seats = %v, want overlay value", n)
	}
	if _, ok := merged["cuisine"].String(); !ok {
		t.Error("merge dropped a base key")
	}
	if n, _ := base["seats"].Number(); n != 20 {
		t.Error("merge mutated the base map")
	}
}

func TestProfileScanValue(t *testing.T) {
	original := Profile{"rating": NumberValue(4.5)}

	raw, err := original.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded Profile
	if err := decoded.Scan(raw); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if n, ok := decoded["rating"].Number(); !ok || n != 4.5 {
		t.Errorf("rating = %v, %v", n, ok)
	}

	var fromNil Profile
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if fromNil == nil {
		t.Error("scan nil left the map nil")
	}
}
