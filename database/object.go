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
	"strconv"
	"strings"

	"github.com/blinklabs-io/anyvalue/database/models"
	"github.com/blinklabs-io/anyvalue/fieldtype"
	"github.com/blinklabs-io/anyvalue/validate"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ObjectRecord pairs an object row with its model and its values keyed by
// field slug.
type ObjectRecord struct {
	Object *models.Object
	Model  *models.Model
	Values map[string]fieldtype.Value
}

// CreateObject validates raw input against the model's field set, then
// creates the object and writes all of its values in one transaction.
// Validation failures return a validate.FieldErrors and perform no writes.
func (d *Database) CreateObject(
	modelUUID string,
	rawValues map[string]any,
) (*ObjectRecord, error) {
	model, err := d.GetModel(modelUUID)
	if err != nil {
		return nil, err
	}
	coerced, fieldErrs := validate.ForCreate(model.Fields, rawValues)
	if fieldErrs != nil {
		d.countValidationFailure("object")
		return nil, fieldErrs
	}
	obj := &models.Object{
		UUID:    uuid.NewString(),
		ModelID: model.ID,
	}
	err = d.Transaction(func(txn *gorm.DB) error {
		if err := txn.Create(obj).Error; err != nil {
			return fmt.Errorf("failed to create object: %w", err)
		}
		return d.writeValues(txn, obj.ID, model.Fields, coerced)
	})
	if err != nil {
		return nil, err
	}
	if d.metrics != nil {
		d.metrics.objectsCreated.Inc()
	}
	d.publishEvent(ObjectCreatedEventType, ObjectEvent{
		UUID:      obj.UUID,
		ModelUUID: model.UUID,
	})
	return &ObjectRecord{
		Object: obj,
		Model:  model,
		Values: coerced,
	}, nil
}

// writeValues persists the coerced values in field declaration order
func (d *Database) writeValues(
	txn *gorm.DB,
	objectID uint,
	fields []models.Field,
	coerced map[string]fieldtype.Value,
) error {
	for _, field := range fields {
		val, ok := coerced[field.Slug]
		if !ok {
			continue
		}
		if err := d.SetValue(objectID, field.ID, val, txn); err != nil {
			return err
		}
	}
	return nil
}

// GetObject returns an object, its model's field set, and its stored values
// keyed by field slug.
func (d *Database) GetObject(objectUUID string) (*ObjectRecord, error) {
	obj := &models.Object{}
	result := d.db.First(obj, "uuid = ?", objectUUID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, result.Error
	}
	return d.loadRecord(obj, nil)
}

// loadRecord assembles an ObjectRecord. The model is fetched when not
// supplied by the caller.
func (d *Database) loadRecord(
	obj *models.Object,
	model *models.Model,
) (*ObjectRecord, error) {
	if model == nil {
		model = &models.Model{}
		result := d.db.Preload(
			"Fields",
			func(db *gorm.DB) *gorm.DB {
				return db.Order("field.id")
			},
		).First(model, obj.ModelID)
		if result.Error != nil {
			return nil, result.Error
		}
	}
	slugByFieldID := make(map[uint]string)
	for _, field := range model.Fields {
		slugByFieldID[field.ID] = field.Slug
	}
	var valueRows []models.Value
	if err := d.db.Where("object_id = ?", obj.ID).
		Find(&valueRows).Error; err != nil {
		return nil, err
	}
	values := make(map[string]fieldtype.Value)
	for i := range valueRows {
		slug, ok := slugByFieldID[valueRows[i].FieldID]
		if !ok {
			continue
		}
		if val, ok := valueRows[i].GetValue(); ok {
			values[slug] = val
		}
	}
	return &ObjectRecord{
		Object: obj,
		Model:  model,
		Values: values,
	}, nil
}

// ListObjects returns one page of a model's objects ordered by creation
// time, newest first, along with the total count. A non-empty valueFilter
// restricts the result to objects holding at least one value the raw string
// can coerce into.
func (d *Database) ListObjects(
	modelUUID string,
	valueFilter string,
	page, count int,
) ([]ObjectRecord, int64, error) {
	model, err := d.GetModel(modelUUID)
	if err != nil {
		return nil, 0, err
	}
	query := d.db.Model(&models.Object{}).
		Where("model_id = ?", model.ID)
	if valueFilter != "" {
		query = query.Where(
			"id IN (?)",
			d.valueMatchQuery(valueFilter),
		)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var objs []models.Object
	result := query.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * count).
		Limit(count).
		Find(&objs)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	ret := make([]ObjectRecord, 0, len(objs))
	for i := range objs {
		record, err := d.loadRecord(&objs[i], model)
		if err != nil {
			return nil, 0, err
		}
		ret = append(ret, *record)
	}
	return ret, total, nil
}

// valueMatchQuery builds a subquery selecting object ids with at least one
// value matching the raw string under any coercion that accepts it.
func (d *Database) valueMatchQuery(raw string) *gorm.DB {
	query := d.db.Model(&models.Value{}).
		Select("object_id").
		Where(
			d.db.Where("value_text = ?", raw).
				Or("value_enum = ?", raw),
		)
	if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		query = query.Or("value_number = ?", n)
	}
	if val, err := fieldtype.Date.Coerce(raw, ""); err == nil {
		query = query.Or("value_date = ?", val.Date)
	}
	return query
}

// UpdateObject validates raw input for a partial update, then overwrites or
// creates the supplied values in one transaction. Required fields are not
// enforced, but any supplied value must still be valid.
func (d *Database) UpdateObject(
	objectUUID string,
	rawValues map[string]any,
) (*ObjectRecord, error) {
	record, err := d.GetObject(objectUUID)
	if err != nil {
		return nil, err
	}
	coerced, fieldErrs := validate.ForUpdate(record.Model.Fields, rawValues)
	if fieldErrs != nil {
		d.countValidationFailure("object")
		return nil, fieldErrs
	}
	err = d.Transaction(func(txn *gorm.DB) error {
		return d.writeValues(
			txn,
			record.Object.ID,
			record.Model.Fields,
			coerced,
		)
	})
	if err != nil {
		return nil, err
	}
	if d.metrics != nil {
		d.metrics.objectsUpdated.Inc()
	}
	d.publishEvent(ObjectUpdatedEventType, ObjectEvent{
		UUID:      record.Object.UUID,
		ModelUUID: record.Model.UUID,
	})
	return d.loadRecord(record.Object, record.Model)
}

// DeleteObject deletes an object and cascades to its values
func (d *Database) DeleteObject(objectUUID string) error {
	record, err := d.GetObject(objectUUID)
	if err != nil {
		return err
	}
	err = d.Transaction(func(txn *gorm.DB) error {
		if err := txn.Where("object_id = ?", record.Object.ID).
			Delete(&models.Value{}).Error; err != nil {
			return fmt.Errorf("failed to delete values: %w", err)
		}
		if err := txn.Delete(
			&models.Object{},
			record.Object.ID,
		).Error; err != nil {
			return fmt.Errorf("failed to delete object: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if d.metrics != nil {
		d.metrics.objectsDeleted.Inc()
	}
	d.publishEvent(ObjectDeletedEventType, ObjectEvent{
		UUID:      record.Object.UUID,
		ModelUUID: record.Model.UUID,
	})
	return nil
}
