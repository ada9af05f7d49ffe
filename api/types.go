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

package api

import (
	"time"

	"github.com/blinklabs-io/anyvalue/database"
	"github.com/blinklabs-io/anyvalue/database/models"
	"github.com/blinklabs-io/anyvalue/fieldtype"
)

// RootResponse is returned by GET /.
type RootResponse struct {
	URL     string `json:"url"`
	Version string `json:"version"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	IsHealthy bool `json:"is_healthy"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// ModelRequest is the payload for model creation and update.
type ModelRequest struct {
	Name   string              `json:"name"`
	Fields []database.FieldDef `json:"fields"`
}

// FieldResponse represents one field of a model.
type FieldResponse struct {
	FieldID    uint   `json:"field_id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	IsRequired bool   `json:"is_required"`
	Choices    string `json:"choices,omitempty"`
}

// ModelResponse represents a model and its fields.
type ModelResponse struct {
	UUID      string          `json:"uuid"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	Fields    []FieldResponse `json:"fields"`
}

// ModelListResponse is returned by GET /api/v0/models.
type ModelListResponse struct {
	Count   int64           `json:"count"`
	Results []ModelResponse `json:"results"`
}

// ObjectResponse represents an object and its values keyed by field slug.
type ObjectResponse struct {
	UUID      string         `json:"uuid"`
	Model     string         `json:"model"`
	CreatedAt time.Time      `json:"created_at"`
	Values    map[string]any `json:"values"`
}

// ObjectListResponse is returned by GET /api/v0/models/{uuid}/objects.
type ObjectListResponse struct {
	Count   int64            `json:"count"`
	Results []ObjectResponse `json:"results"`
}

func newModelResponse(model *models.Model) ModelResponse {
	fields := make([]FieldResponse, 0, len(model.Fields))
	for _, field := range model.Fields {
		fields = append(fields, FieldResponse{
			FieldID:    field.FieldID,
			Slug:       field.Slug,
			Name:       field.Name,
			Type:       field.Type,
			IsRequired: field.IsRequired,
			Choices:    field.Choices,
		})
	}
	return ModelResponse{
		UUID:      model.UUID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		Fields:    fields,
	}
}

func newObjectResponse(record *database.ObjectRecord) ObjectResponse {
	values := make(map[string]any)
	for slug, val := range record.Values {
		values[slug] = renderValue(val)
	}
	return ObjectResponse{
		UUID:      record.Object.UUID,
		Model:     record.Model.UUID,
		CreatedAt: record.Object.CreatedAt,
		Values:    values,
	}
}

// renderValue converts a typed value into its JSON representation: numbers
// stay numeric, dates render in canonical form, everything else is a string.
func renderValue(val fieldtype.Value) any {
	if val.Kind == fieldtype.Number {
		return val.Number
	}
	return val.String()
}
