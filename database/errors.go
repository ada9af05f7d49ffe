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

package database

import (
	"errors"
	"fmt"
)

var (
	ErrModelNotFound  = errors.New("model not found")
	ErrObjectNotFound = errors.New("object not found")
)

// Definition validation messages
const (
	MsgNameEmpty    = "Name must not be empty"
	MsgTypeEmpty    = "Type must not be empty"
	MsgTypeInvalid  = "Type is invalid"
	MsgChoicesEmpty = "Choices must not be empty"
)

// SchemaErrors describes a rejected model definition. Fields holds one error
// map per submitted field definition, in submission order, so the caller can
// correlate error position with field position. An empty map means no error
// for that position.
type SchemaErrors struct {
	Name   string              `json:"name,omitempty"`
	Fields []map[string]string `json:"fields,omitempty"`
}

func (e *SchemaErrors) Error() string {
	count := 0
	for _, fieldErrs := range e.Fields {
		count += len(fieldErrs)
	}
	if e.Name != "" {
		return fmt.Sprintf(
			"invalid model definition: %s (%d field errors)",
			e.Name,
			count,
		)
	}
	return fmt.Sprintf("invalid model definition: %d field errors", count)
}

func (e *SchemaErrors) hasErrors() bool {
	if e.Name != "" {
		return true
	}
	for _, fieldErrs := range e.Fields {
		if len(fieldErrs) > 0 {
			return true
		}
	}
	return false
}
