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
	"time"

	"github.com/blinklabs-io/anyvalue/fieldtype"
)

// Value is the single typed datum stored for one (Object, Field) pair.
// FieldType is copied from the owning field at write time and selects which
// of the typed slots is populated; the others stay unset.
type Value struct {
	ValueText   *string
	ValueNumber *int64
	ValueDate   *time.Time
	ValueEnum   *string
	FieldType   string `gorm:"size:64;not null"`
	ID          uint   `gorm:"primarykey"`
	ObjectID    uint   `gorm:"uniqueIndex:idx_value_object_field,priority:1;not null"`
	FieldID     uint   `gorm:"uniqueIndex:idx_value_object_field,priority:2;not null"`
}

func (Value) TableName() string {
	return "value"
}

// SetValue records the canonical value in the slot matching its kind and
// updates the type tag. Slots for other kinds are cleared so at most one is
// ever populated.
func (v *Value) SetValue(val fieldtype.Value) {
	v.FieldType = string(val.Kind)
	v.ValueText = nil
	v.ValueNumber = nil
	v.ValueDate = nil
	v.ValueEnum = nil
	switch val.Kind {
	case fieldtype.Text:
		s := val.Text
		v.ValueText = &s
	case fieldtype.Number:
		n := val.Number
		v.ValueNumber = &n
	case fieldtype.Date:
		d := val.Date
		v.ValueDate = &d
	case fieldtype.Enum:
		s := val.Enum
		v.ValueEnum = &s
	}
}

// GetValue returns the canonical value for the stored type tag. A missing or
// mismatched slot is reported as absent rather than an error.
func (v *Value) GetValue() (fieldtype.Value, bool) {
	switch fieldtype.FieldType(v.FieldType) {
	case fieldtype.Text:
		if v.ValueText == nil {
			return fieldtype.Value{}, false
		}
		return fieldtype.Value{
			Kind: fieldtype.Text,
			Text: *v.ValueText,
		}, true
	case fieldtype.Number:
		if v.ValueNumber == nil {
			return fieldtype.Value{}, false
		}
		return fieldtype.Value{
			Kind:   fieldtype.Number,
			Number: *v.ValueNumber,
		}, true
	case fieldtype.Date:
		if v.ValueDate == nil {
			return fieldtype.Value{}, false
		}
		return fieldtype.Value{
			Kind: fieldtype.Date,
			Date: *v.ValueDate,
		}, true
	case fieldtype.Enum:
		if v.ValueEnum == nil {
			return fieldtype.Value{}, false
		}
		return fieldtype.Value{
			Kind: fieldtype.Enum,
			Enum: *v.ValueEnum,
		}, true
	default:
		return fieldtype.Value{}, false
	}
}
