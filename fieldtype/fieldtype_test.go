// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fieldtype

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected FieldType
		wantErr  bool
	}{
		{name: "text", input: "text", expected: Text},
		{name: "number", input: "number", expected: Number},
		{name: "date", input: "date", expected: Date},
		{name: "enum", input: "enum", expected: Enum},
		{name: "unknown type", input: "datetime", wantErr: true},
		{name: "empty type", input: "", wantErr: true},
		{name: "case sensitive", input: "Text", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidFieldType) {
					t.Fatalf(
						"expected ErrInvalidFieldType, got %v",
						err,
					)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("got %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestCoerceText(t *testing.T) {
	tests := []struct {
		raw      any
		expected string
	}{
		{raw: "Toyota", expected: "Toyota"},
		{raw: "", expected: ""},
		{raw: float64(4), expected: "4"},
		{raw: 4.5, expected: "4.5"},
		{raw: true, expected: "true"},
	}
	for _, tc := range tests {
		val, err := Text.Coerce(tc.raw, "")
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", tc.raw, err)
		}
		if val.Kind != Text {
			t.Errorf("got kind %q, expected text", val.Kind)
		}
		if val.Text != tc.expected {
			t.Errorf("got %q, expected %q", val.Text, tc.expected)
		}
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected int64
		wantErr  bool
	}{
		{name: "string integer", raw: "4", expected: 4},
		{name: "negative string", raw: "-17", expected: -17},
		{name: "json number", raw: float64(4), expected: 4},
		{name: "int", raw: 42, expected: 42},
		{name: "fractional float rejected", raw: 4.5, wantErr: true},
		{
			name:     "largest exact float accepted",
			raw:      float64(math.MaxInt64 - 1024),
			expected: math.MaxInt64 - 1023,
		},
		// float64(math.MaxInt64) rounds up to 2^63, outside int64 range
		{name: "float at int64 boundary rejected", raw: float64(math.MaxInt64), wantErr: true},
		{name: "float above int64 rejected", raw: 9223372036854775808.0, wantErr: true},
		{name: "float below int64 rejected", raw: -18446744073709551616.0, wantErr: true},
		{
			name:     "smallest int64 float accepted",
			raw:      float64(math.MinInt64),
			expected: math.MinInt64,
		},
		{name: "decimal string rejected", raw: "4.5", wantErr: true},
		{name: "garbage rejected", raw: "INVALID_NUMBER", wantErr: true},
		{name: "empty rejected", raw: "", wantErr: true},
		{name: "bool rejected", raw: true, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			val, err := Number.Coerce(tc.raw, "")
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidValue) {
					t.Fatalf("expected ErrInvalidValue, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if val.Number != tc.expected {
				t.Errorf("got %d, expected %d", val.Number, tc.expected)
			}
		})
	}
}

func TestCoerceDate(t *testing.T) {
	expected := time.Date(2016, 12, 1, 0, 0, 0, 0, time.UTC)
	accepted := []string{
		"2016-12-01",
		"2016-12-01T10:30:00Z",
		"2016-12-01 10:30:00",
		"2016/12/01",
		"12/01/2016",
		"Dec 1, 2016",
		"1 Dec 2016",
	}
	for _, raw := range accepted {
		val, err := Date.Coerce(raw, "")
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if !val.Date.Equal(expected) {
			t.Errorf("got %v for %q, expected %v", val.Date, raw, expected)
		}
	}
	rejected := []any{"INVALID_DATE", "", "12345678", 42}
	for _, raw := range rejected {
		if _, err := Date.Coerce(raw, ""); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("expected ErrInvalidValue for %v, got %v", raw, err)
		}
	}
}

func TestCoerceEnum(t *testing.T) {
	choices := "Sedan,SUV,Eco,Sport"
	tests := []struct {
		name    string
		raw     any
		wantErr bool
	}{
		{name: "member", raw: "Sedan"},
		{name: "last member", raw: "Sport"},
		{name: "non-member", raw: "NONE", wantErr: true},
		{name: "case sensitive", raw: "sedan", wantErr: true},
		{name: "partial match", raw: "Sed", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			val, err := Enum.Coerce(tc.raw, choices)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidValue) {
					t.Fatalf("expected ErrInvalidValue, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if val.Enum != tc.raw {
				t.Errorf("got %q, expected %q", val.Enum, tc.raw)
			}
		})
	}
}

// Coercion must be deterministic and stable across a serialize/re-coerce
// round trip.
func TestCoerceRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		ftype   FieldType
		raw     any
		choices string
	}{
		{name: "text", ftype: Text, raw: "Toyota"},
		{name: "number", ftype: Number, raw: "4"},
		{name: "date", ftype: Date, raw: "2016-12-01T10:30:00Z"},
		{name: "enum", ftype: Enum, raw: "SUV", choices: "Sedan,SUV"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			first, err := tc.ftype.Coerce(tc.raw, tc.choices)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			second, err := tc.ftype.Coerce(first.String(), tc.choices)
			if err != nil {
				t.Fatalf("unexpected round-trip error: %v", err)
			}
			if first != second {
				t.Errorf(
					"round trip not stable: %+v != %+v",
					first,
					second,
				)
			}
		})
	}
}

func TestSplitChoices(t *testing.T) {
	got := SplitChoices("Sedan,SUV,Eco,Sport")
	if len(got) != 4 {
		t.Fatalf("got %d choices, expected 4", len(got))
	}
	if got[0] != "Sedan" || got[3] != "Sport" {
		t.Errorf("unexpected choices: %v", got)
	}
	if SplitChoices("") != nil {
		t.Error("expected nil for empty choice list")
	}
}
