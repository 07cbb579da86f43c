package restaurant

import (
	"reflect"
	"testing"
	"time"

	"foodzippy/backend/internal/entity"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{"no values", nil, []string{}},
		{"blank value", []string{"  "}, []string{}},
		{"repeated keys", []string{"dine-in", "delivery"}, []string{"dine-in", "delivery"}},
		{"json encoded array", []string{`["dine-in","delivery"]`}, []string{"dine-in", "delivery"}},
		{"single scalar promoted", []string{"dine-in"}, []string{"dine-in"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStringList(tt.values)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStringList(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestParseFormScalar(t *testing.T) {
	t.Run("boolean", func(t *testing.T) {
		v := ParseFormScalar("true")
		if b, ok := v.Bool(); !ok || !b {
			t.Errorf("got %v, %v", b, ok)
		}
	})

	t.Run("number", func(t *testing.T) {
		v := ParseFormScalar("42.5")
		if n, ok := v.Number(); !ok || n != 42.5 {
			t.Errorf("got %v, %v", n, ok)
		}
	})

	t.Run("rfc3339 date", func(t *testing.T) {
		v := ParseFormScalar("2025-03-10T14:30:00Z")
		want := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)
		if d, ok := v.Date(); !ok || !d.Equal(want) {
			t.Errorf("got %v, %v", d, ok)
		}
	})

	t.Run("plain text", func(t *testing.T) {
		v := ParseFormScalar("north indian")
		if s, ok := v.String(); !ok || s != "north indian" {
			t.Errorf("got %q, %v", s, ok)
		}
	})

	t.Run("whitespace around a number", func(t *testing.T) {
		v := ParseFormScalar(" 7 ")
		if n, ok := v.Number(); !ok || n != 7 {
			t.Errorf("got %v, %v", n, ok)
		}
	})

	t.Run("kind never leaks", func(t *testing.T) {
		if v := ParseFormScalar("hello"); v.Kind() != entity.KindString {
			t.Errorf("kind = %v", v.Kind())
		}
	})
}
