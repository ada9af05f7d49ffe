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

// Package fieldtype defines the closed set of value types a model field can
// declare and the coercion rules from raw external input into canonical
// typed values.
package fieldtype

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// FieldType identifies one of the supported value types for a model field.
type FieldType string

const (
	Text   FieldType = "text"
	Number FieldType = "number"
	Date   FieldType = "date"
	Enum   FieldType = "enum"
)

var (
	// ErrInvalidFieldType is returned when a field definition names a type
	// outside the supported set.
	ErrInvalidFieldType = errors.New("invalid field type")
	// ErrInvalidValue is returned when a raw value cannot be coerced into
	// the field's declared type.
	ErrInvalidValue = errors.New("invalid value")
)

// Types returns the supported field types in declaration order.
func Types() []FieldType {
	return []FieldType{Text, Number, Date, Enum}
}

// Parse converts a raw type string into a FieldType. Unknown type strings
// are rejected with ErrInvalidFieldType.
func Parse(s string) (FieldType, error) {
	t := FieldType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFieldType, s)
	}
	return t, nil
}

// Valid returns true if the FieldType is a member of the supported set.
func (t FieldType) Valid() bool {
	switch t {
	case Text, Number, Date, Enum:
		return true
	default:
		return false
	}
}

// DateLayout is the canonical serialization format for date values.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when coercing a raw date value. The first
// layout that parses wins.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Value is the canonical representation of a single typed datum. Exactly one
// of the typed slots is meaningful, selected by Kind.
type Value struct {
	Date   time.Time
	Text   string
	Enum   string
	Number int64
	Kind   FieldType
}

// String renders the canonical value in its external form, which is also the
// form accepted back by Coerce.
func (v Value) String() string {
	switch v.Kind {
	case Text:
		return v.Text
	case Number:
		return strconv.FormatInt(v.Number, 10)
	case Date:
		return v.Date.Format(DateLayout)
	case Enum:
		return v.Enum
	default:
		return ""
	}
}

// Coerce validates a raw external value against the field type and converts
// it into its canonical representation. For enum fields the comma-delimited
// choice list must be supplied. Failures are reported as ErrInvalidValue.
func (t FieldType) Coerce(raw any, choices string) (Value, error) {
	switch t {
	case Text:
		return Value{Kind: Text, Text: stringify(raw)}, nil
	case Number:
		n, err := coerceNumber(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: Number, Number: n}, nil
	case Date:
		d, err := coerceDate(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: Date, Date: d}, nil
	case Enum:
		s := stringify(raw)
		if !slices.Contains(SplitChoices(choices), s) {
			return Value{}, fmt.Errorf(
				"%w: %q is not a valid choice",
				ErrInvalidValue,
				s,
			)
		}
		return Value{Kind: Enum, Enum: s}, nil
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidFieldType, t)
	}
}

// SplitChoices splits a comma-delimited choice list into its members.
// Members are compared as exact strings, so no whitespace trimming or case
// folding is applied.
func SplitChoices(choices string) []string {
	if choices == "" {
		return nil
	}
	return strings.Split(choices, ",")
}

// stringify converts a raw value into its string form. JSON numbers arrive
// as float64, so integral floats are rendered without a fractional part.
func stringify(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// coerceNumber accepts integers in any of the representations a JSON decoder
// or caller can produce. Fractional values are rejected rather than
// truncated.
func coerceNumber(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		// math.MaxInt64 rounds up to 2^63 as a float64, so the comparison
		// must exclude equality to keep int64(v) from wrapping
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, fmt.Errorf("%w: not an integer", ErrInvalidValue)
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: unsupported number input", ErrInvalidValue)
	}
}

// coerceDate parses a raw date or datetime string and normalizes it to a
// date at midnight UTC.
func coerceDate(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return truncateToDate(v), nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return truncateToDate(ts), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidValue, v)
	default:
		return time.Time{}, fmt.Errorf(
			"%w: unsupported date input",
			ErrInvalidValue,
		)
	}
}

func truncateToDate(ts time.Time) time.Time {
	return time.Date(
		ts.Year(),
		ts.Month(),
		ts.Day(),
		0, 0, 0, 0,
		time.UTC,
	)
}
