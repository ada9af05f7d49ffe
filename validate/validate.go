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

// Package validate implements the object validation and coercion engine.
// Given a model's field set and a raw key-to-value mapping it produces
// either a fully coerced value mapping or a field-keyed error mapping. All
// errors are collected so a client can correct every problem in one round
// trip.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blinklabs-io/anyvalue/database/models"
	"github.com/blinklabs-io/anyvalue/fieldtype"
)

const (
	MsgFieldRequired = "This field is required"
	MsgFieldInvalid  = "This field is invalid"
)

// FieldErrors maps a field slug to a human-readable validation message. A
// non-empty map means the whole request must be rejected before any value
// is written.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ForCreate validates raw input against the model's field set for object
// creation. Required fields must be present with a non-empty value. Returns
// the coerced value mapping keyed by slug, or the collected per-slug errors.
func ForCreate(
	fields []models.Field,
	raw map[string]any,
) (map[string]fieldtype.Value, FieldErrors) {
	return run(fields, raw, true)
}

// ForUpdate validates raw input for a partial object update. Absent fields
// are allowed regardless of the required flag, but any supplied value must
// still coerce cleanly.
func ForUpdate(
	fields []models.Field,
	raw map[string]any,
) (map[string]fieldtype.Value, FieldErrors) {
	return run(fields, raw, false)
}

func run(
	fields []models.Field,
	raw map[string]any,
	enforceRequired bool,
) (map[string]fieldtype.Value, FieldErrors) {
	coerced := make(map[string]fieldtype.Value)
	errs := make(FieldErrors)
	for _, field := range fields {
		rawValue, present := raw[field.Slug]
		if !present || isEmpty(rawValue) {
			if enforceRequired && field.IsRequired {
				errs[field.Slug] = MsgFieldRequired
			}
			// Absent and not required is not an error; no default is
			// synthesized
			continue
		}
		ftype := fieldtype.FieldType(field.Type)
		val, err := ftype.Coerce(rawValue, field.Choices)
		if err != nil {
			errs[field.Slug] = MsgFieldInvalid
			continue
		}
		coerced[field.Slug] = val
	}
	// Keys in raw that match no field slug are ignored
	if len(errs) > 0 {
		return nil, errs
	}
	return coerced, nil
}

// isEmpty reports whether a supplied raw value counts as absent for the
// required-field check.
func isEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}
