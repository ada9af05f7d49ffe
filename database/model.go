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

	"github.com/blinklabs-io/anyvalue/database/models"
	"github.com/blinklabs-io/anyvalue/fieldtype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FieldDef is a submitted field definition for model creation or update. A
// zero FieldID marks the field as new; a non-zero FieldID addresses an
// existing field during reconciliation.
type FieldDef struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Choices    string `json:"choices,omitempty"`
	Slug       string `json:"slug,omitempty"`
	FieldID    uint   `json:"field_id,omitempty"`
	IsRequired bool   `json:"is_required,omitempty"`
}

// validateDefinition checks a model name and its field definitions against
// the field type registry. All problems are collected; the returned error is
// nil when the definition is acceptable.
func validateDefinition(name string, fieldDefs []FieldDef) *SchemaErrors {
	schemaErrs := &SchemaErrors{}
	if name == "" {
		schemaErrs.Name = MsgNameEmpty
	}
	// One error map per submitted field, preserving input order so the
	// caller can correlate error position with field position
	for _, def := range fieldDefs {
		fieldErrs := map[string]string{}
		if def.Name == "" {
			fieldErrs["name"] = MsgNameEmpty
		}
		if def.Type == "" {
			fieldErrs["type"] = MsgTypeEmpty
		} else if _, err := fieldtype.Parse(def.Type); err != nil {
			fieldErrs["type"] = MsgTypeInvalid
		} else if def.Type == string(fieldtype.Enum) && def.Choices == "" {
			fieldErrs["choices"] = MsgChoicesEmpty
		}
		schemaErrs.Fields = append(schemaErrs.Fields, fieldErrs)
	}
	// When no field has an error, the field list is omitted entirely
	// rather than serialized as a list of empty maps
	fieldErrsFound := false
	for _, fieldErrs := range schemaErrs.Fields {
		if len(fieldErrs) > 0 {
			fieldErrsFound = true
			break
		}
	}
	if !fieldErrsFound {
		schemaErrs.Fields = nil
	}
	if !schemaErrs.hasErrors() {
		return nil
	}
	return schemaErrs
}

// fieldChoices returns the choice list to persist for a definition. Choices
// are only meaningful on enum fields and are dropped otherwise.
func fieldChoices(fieldType, choices string) string {
	if fieldType == string(fieldtype.Enum) {
		return choices
	}
	return ""
}

// CreateModel validates the definition, assigns field ids from the model's
// own sequence and derives unique slugs, then persists the model and its
// fields in one transaction.
func (d *Database) CreateModel(
	name string,
	fieldDefs []FieldDef,
) (*models.Model, error) {
	if schemaErrs := validateDefinition(name, fieldDefs); schemaErrs != nil {
		d.countValidationFailure("model")
		return nil, schemaErrs
	}
	ret := &models.Model{
		UUID: uuid.NewString(),
		Name: name,
	}
	err := d.Transaction(func(txn *gorm.DB) error {
		if err := txn.Create(ret).Error; err != nil {
			return fmt.Errorf("failed to create model: %w", err)
		}
		seq := models.FieldSequence{ModelID: ret.ID}
		if err := txn.Create(&seq).Error; err != nil {
			return fmt.Errorf("failed to create field sequence: %w", err)
		}
		taken := make(map[string]bool)
		for _, def := range fieldDefs {
			field, err := createField(txn, ret.ID, def, taken)
			if err != nil {
				return err
			}
			ret.Fields = append(ret.Fields, *field)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if d.metrics != nil {
		d.metrics.modelsCreated.Inc()
	}
	d.publishEvent(ModelCreatedEventType, ModelEvent{
		UUID: ret.UUID,
		Name: ret.Name,
	})
	return ret, nil
}

// createField assigns a fresh field id and a unique slug, then persists the
// field. The caller seeds taken with the slugs already present on the model.
func createField(
	txn *gorm.DB,
	modelID uint,
	def FieldDef,
	taken map[string]bool,
) (*models.Field, error) {
	fieldID, err := nextFieldID(txn, modelID)
	if err != nil {
		return nil, err
	}
	slugBase := def.Slug
	if slugBase == "" {
		slugBase = Slugify(def.Name)
	}
	field := &models.Field{
		ModelID:    modelID,
		FieldID:    fieldID,
		Slug:       uniqueSlug(taken, slugBase),
		Name:       def.Name,
		Type:       def.Type,
		Choices:    fieldChoices(def.Type, def.Choices),
		IsRequired: def.IsRequired,
	}
	if err := txn.Create(field).Error; err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}
	return field, nil
}

// GetModel returns a model and its fields by external id
func (d *Database) GetModel(modelUUID string) (*models.Model, error) {
	ret := &models.Model{}
	result := d.db.Preload(
		"Fields",
		func(db *gorm.DB) *gorm.DB {
			return db.Order("field.id")
		},
	).First(ret, "uuid = ?", modelUUID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, result.Error
	}
	return ret, nil
}

// ListModels returns one page of models ordered by creation time, newest
// first, along with the total model count.
func (d *Database) ListModels(page, count int) ([]models.Model, int64, error) {
	var total int64
	if err := d.db.Model(&models.Model{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ret []models.Model
	result := d.db.Preload(
		"Fields",
		func(db *gorm.DB) *gorm.DB {
			return db.Order("field.id")
		},
	).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * count).
		Limit(count).
		Find(&ret)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return ret, total, nil
}

// UpdateModel renames the model and reconciles its field set against the
// submitted definitions. Reconciliation is keyed by field id: definitions
// with a known id update the existing field (the stored type always wins),
// definitions without one become new fields, and existing fields absent
// from the input are deleted along with their values.
func (d *Database) UpdateModel(
	modelUUID string,
	name string,
	fieldDefs []FieldDef,
) (*models.Model, error) {
	model, err := d.GetModel(modelUUID)
	if err != nil {
		return nil, err
	}
	if schemaErrs := validateDefinition(name, fieldDefs); schemaErrs != nil {
		d.countValidationFailure("model")
		return nil, schemaErrs
	}
	err = d.Transaction(func(txn *gorm.DB) error {
		if err := txn.Model(model).Update("name", name).Error; err != nil {
			return fmt.Errorf("failed to rename model: %w", err)
		}
		existingByFieldID := make(map[uint]*models.Field)
		for i := range model.Fields {
			existingByFieldID[model.Fields[i].FieldID] = &model.Fields[i]
		}
		kept := make(map[uint]bool)
		for _, def := range fieldDefs {
			if def.FieldID != 0 && existingByFieldID[def.FieldID] != nil {
				kept[def.FieldID] = true
			}
		}
		// Seed the slug set with every surviving slug before any override
		// or new field is processed
		taken := make(map[string]bool)
		for _, field := range model.Fields {
			if kept[field.FieldID] {
				taken[field.Slug] = true
			}
		}
		// First pass: update existing fields and delete the ones missing
		// from the input, so freed slugs are known before any new field is
		// created
		for _, def := range fieldDefs {
			existing, ok := existingByFieldID[def.FieldID]
			if def.FieldID == 0 || !ok {
				continue
			}
			existing.Name = def.Name
			existing.IsRequired = def.IsRequired
			// Type changes are ignored; the stored type is retained.
			// Choices only apply to enum fields
			existing.Choices = fieldChoices(existing.Type, def.Choices)
			if def.Slug != "" && def.Slug != existing.Slug {
				delete(taken, existing.Slug)
				existing.Slug = uniqueSlug(taken, def.Slug)
			}
			if err := txn.Save(existing).Error; err != nil {
				return fmt.Errorf("failed to update field: %w", err)
			}
		}
		for _, field := range model.Fields {
			if kept[field.FieldID] {
				continue
			}
			// Deleting a field cascades to its values
			if err := txn.Where("field_id = ?", field.ID).
				Delete(&models.Value{}).Error; err != nil {
				return fmt.Errorf("failed to delete field values: %w", err)
			}
			if err := txn.Delete(&models.Field{}, field.ID).Error; err != nil {
				return fmt.Errorf("failed to delete field: %w", err)
			}
		}
		// Second pass: create new fields. A definition without a field id
		// is new; so is one with an id this model never assigned, which
		// gets a fresh id from the sequence rather than the submitted one
		for _, def := range fieldDefs {
			if kept[def.FieldID] {
				continue
			}
			if _, err := createField(txn, model.ID, def, taken); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ret, err := d.GetModel(modelUUID)
	if err != nil {
		return nil, err
	}
	d.publishEvent(ModelUpdatedEventType, ModelEvent{
		UUID: ret.UUID,
		Name: ret.Name,
	})
	return ret, nil
}

// DeleteModel deletes a model and cascades to its fields, objects, and
// values.
func (d *Database) DeleteModel(modelUUID string) error {
	model, err := d.GetModel(modelUUID)
	if err != nil {
		return err
	}
	err = d.Transaction(func(txn *gorm.DB) error {
		fieldIDs := txn.Model(&models.Field{}).
			Select("id").
			Where("model_id = ?", model.ID)
		if err := txn.Where("field_id IN (?)", fieldIDs).
			Delete(&models.Value{}).Error; err != nil {
			return fmt.Errorf("failed to delete values: %w", err)
		}
		if err := txn.Where("model_id = ?", model.ID).
			Delete(&models.Object{}).Error; err != nil {
			return fmt.Errorf("failed to delete objects: %w", err)
		}
		if err := txn.Where("model_id = ?", model.ID).
			Delete(&models.Field{}).Error; err != nil {
			return fmt.Errorf("failed to delete fields: %w", err)
		}
		if err := txn.Delete(
			&models.FieldSequence{},
			"model_id = ?",
			model.ID,
		).Error; err != nil {
			return fmt.Errorf("failed to delete field sequence: %w", err)
		}
		if err := txn.Delete(&models.Model{}, model.ID).Error; err != nil {
			return fmt.Errorf("failed to delete model: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if d.metrics != nil {
		d.metrics.modelsDeleted.Inc()
	}
	d.publishEvent(ModelDeletedEventType, ModelEvent{
		UUID: model.UUID,
		Name: model.Name,
	})
	return nil
}
