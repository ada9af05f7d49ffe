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
	"github.com/blinklabs-io/anyvalue/database"
	"github.com/blinklabs-io/anyvalue/database/models"
)

// Store is the interface that the API server uses to manage models and
// objects. This decouples the HTTP server from the concrete Database struct
// and enables testing with mock implementations.
type Store interface {
	// CreateModel creates a model from a name and field definitions.
	CreateModel(
		name string,
		fieldDefs []database.FieldDef,
	) (*models.Model, error)

	// GetModel returns a model and its fields by external id.
	GetModel(modelUUID string) (*models.Model, error)

	// ListModels returns one page of models and the total count.
	ListModels(page, count int) ([]models.Model, int64, error)

	// UpdateModel renames a model and reconciles its field set.
	UpdateModel(
		modelUUID string,
		name string,
		fieldDefs []database.FieldDef,
	) (*models.Model, error)

	// DeleteModel deletes a model and everything belonging to it.
	DeleteModel(modelUUID string) error

	// CreateObject validates raw values and creates an object.
	CreateObject(
		modelUUID string,
		rawValues map[string]any,
	) (*database.ObjectRecord, error)

	// GetObject returns an object and its stored values.
	GetObject(objectUUID string) (*database.ObjectRecord, error)

	// ListObjects returns one page of a model's objects, optionally
	// restricted to objects holding a matching value.
	ListObjects(
		modelUUID string,
		valueFilter string,
		page, count int,
	) ([]database.ObjectRecord, int64, error)

	// UpdateObject validates raw values and applies a partial update.
	UpdateObject(
		objectUUID string,
		rawValues map[string]any,
	) (*database.ObjectRecord, error)

	// DeleteObject deletes an object and its values.
	DeleteObject(objectUUID string) error
}
