package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

type ProfileKind string

const (
	KindString ProfileKind = "string"
	KindNumber ProfileKind = "number"
	KindBool   ProfileKind = "bool"
	KindDate   ProfileKind = "date"
)

// ProfileValue is one schema-open vendor attribute: a closed sum of scalar
// kinds rather than a free-form interface{}. Objects and arrays are
// rejected at the boundary so the profile stays flat.
type ProfileValue struct {
	kind ProfileKind
	str  string
	num  float64
	b    bool
	date time.Time
}

func StringValue(s string) ProfileValue  { return ProfileValue{kind: KindString, str: s} }
func NumberValue(f float64) ProfileValue { return ProfileValue{kind: KindNumber, num: f} }
func BoolValue(b bool) ProfileValue      { return ProfileValue{kind: KindBool, b: b} }
func DateValue(t time.Time) ProfileValue { return ProfileValue{kind: KindDate, date: t} }

func (v ProfileValue) Kind() ProfileKind { return v.kind }

func (v ProfileValue) String() (string, bool) {
	return v.str, v.kind == KindString
}

func (v ProfileValue) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

func (v ProfileValue) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v ProfileValue) Date() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

func (v ProfileValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindDate:
		return json.Marshal(v.date.Format(time.RFC3339))
	}
	return nil, errors.Errorf("profile value has no kind")
}

func (v *ProfileValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "parsing profile value")
	}

	switch val := raw.(type) {
	case string:
		// Timestamps arrive as strings; recognize them so date fields keep
		// their meaning instead of degrading to text.
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			*v = DateValue(t)
			return nil
		}
		*v = StringValue(val)
		return nil
	case float64:
		*v = NumberValue(val)
		return nil
	case bool:
		*v = BoolValue(val)
		return nil
	}

	return errors.Errorf("profile values must be scalar, got %T", raw)
}

// Profile holds the schema-open vendor attributes as a flat key -> typed
// scalar map, stored as a single jsonb column.
type Profile map[string]ProfileValue

// Merge overlays other onto p, returning the merged map. Neither input is
// mutated.
func (p Profile) Merge(other Profile) Profile {
	merged := make(Profile, len(p)+len(other))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

func (p Profile) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

func (p *Profile) Scan(src interface{}) error {
	if src == nil {
		*p = Profile{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("unsupported profile column type %T", src)
	}

	return json.Unmarshal(data, p)
}
