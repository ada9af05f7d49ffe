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
	"fmt"

	"github.com/blinklabs-io/anyvalue/database/models"
	"gorm.io/gorm"
)

// nextFieldID returns the next field id from the model's own sequence. The
// increment happens as a single UPDATE inside the caller's transaction, so
// two concurrent field creations on one model can never be assigned the
// same id: the second writer blocks on the counter row until the first
// transaction commits.
func nextFieldID(txn *gorm.DB, modelID uint) (uint, error) {
	result := txn.Model(&models.FieldSequence{}).
		Where("model_id = ?", modelID).
		UpdateColumn("next_field_id", gorm.Expr("next_field_id + ?", 1))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to increment field sequence: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// The counter row is created with the model, so this only happens
		// for models persisted before the sequence table existed
		seq := models.FieldSequence{ModelID: modelID, NextFieldID: 1}
		if err := txn.Create(&seq).Error; err != nil {
			return 0, fmt.Errorf("failed to create field sequence: %w", err)
		}
		return 1, nil
	}
	var seq models.FieldSequence
	if err := txn.First(&seq, "model_id = ?", modelID).Error; err != nil {
		return 0, fmt.Errorf("failed to read field sequence: %w", err)
	}
	return seq.NextFieldID, nil
}
