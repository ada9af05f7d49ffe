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

package models

import (
	"testing"
	"time"

	"github.com/blinklabs-io/anyvalue/fieldtype"
)

func TestValueSlotDispatch(t *testing.T) {
	tests := []struct {
		name string
		val  fieldtype.Value
	}{
		{
			name: "text",
			val:  fieldtype.Value{Kind: fieldtype.Text, Text: "Toyota"},
		},
		{
			name: "number",
			val:  fieldtype.Value{Kind: fieldtype.Number, Number: 4},
		},
		{
			name: "date",
			val: fieldtype.Value{
				Kind: fieldtype.Date,
				Date: time.Date(2016, 12, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "enum",
			val:  fieldtype.Value{Kind: fieldtype.Enum, Enum: "Sedan"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var v Value
			v.SetValue(tc.val)
			if v.FieldType != string(tc.val.Kind) {
				t.Errorf(
					"type tag %q, expected %q",
					v.FieldType,
					tc.val.Kind,
				)
			}
			got, ok := v.GetValue()
			if !ok {
				t.Fatal("expected value to be present")
			}
			if got != tc.val {
				t.Errorf("got %+v, expected %+v", got, tc.val)
			}
			// Exactly one slot populated
			populated := 0
			if v.ValueText != nil {
				populated++
			}
			if v.ValueNumber != nil {
				populated++
			}
			if v.ValueDate != nil {
				populated++
			}
			if v.ValueEnum != nil {
				populated++
			}
			if populated != 1 {
				t.Errorf("%d slots populated, expected 1", populated)
			}
		})
	}
}

// A type tag pointing at an empty slot reads back as absent, not a crash.
func TestValueSlotMismatch(t *testing.T) {
	var v Value
	v.SetValue(fieldtype.Value{Kind: fieldtype.Text, Text: "Toyota"})
	v.FieldType = string(fieldtype.Number)
	if _, ok := v.GetValue(); ok {
		t.Error("expected mismatched slot to read as absent")
	}
	v.FieldType = "bogus"
	if _, ok := v.GetValue(); ok {
		t.Error("expected unknown type tag to read as absent")
	}
}

// SetValue overwrites in place, clearing the previously populated slot.
func TestValueOverwriteClearsSlots(t *testing.T) {
	var v Value
	v.SetValue(fieldtype.Value{Kind: fieldtype.Number, Number: 4})
	v.SetValue(fieldtype.Value{Kind: fieldtype.Number, Number: 6})
	got, ok := v.GetValue()
	if !ok || got.Number != 6 {
		t.Fatalf("got %+v (ok=%v), expected number 6", got, ok)
	}
	if v.ValueText != nil || v.ValueDate != nil || v.ValueEnum != nil {
		t.Error("expected other slots to remain unset")
	}
}
