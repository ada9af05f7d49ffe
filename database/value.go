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
	"gorm.io/gorm"
)

// GetValue returns the stored value for one (object, field) pair. A missing
// row, or a row whose populated slot does not match its type tag, is
// reported as absent.
func (d *Database) GetValue(
	objectID uint,
	fieldID uint,
	txn *gorm.DB,
) (fieldtype.Value, bool, error) {
	if txn == nil {
		txn = d.db
	}
	var row models.Value
	result := txn.First(
		&row,
		"object_id = ? AND field_id = ?",
		objectID,
		fieldID,
	)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fieldtype.Value{}, false, nil
		}
		return fieldtype.Value{}, false, result.Error
	}
	val, ok := row.GetValue()
	return val, ok, nil
}

// SetValue stores a canonical value for one (object, field) pair, creating
// the row on first write and overwriting in place afterwards. The type tag
// is copied from the value's kind.
func (d *Database) SetValue(
	objectID uint,
	fieldID uint,
	val fieldtype.Value,
	txn *gorm.DB,
) error {
	if txn == nil {
		txn = d.db
	}
	var row models.Value
	result := txn.First(
		&row,
		"object_id = ? AND field_id = ?",
		objectID,
		fieldID,
	)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		row = models.Value{
			ObjectID: objectID,
			FieldID:  fieldID,
		}
		row.SetValue(val)
		if err := txn.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create value: %w", err)
		}
		return nil
	}
	row.SetValue(val)
	if err := txn.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to update value: %w", err)
	}
	return nil
}
