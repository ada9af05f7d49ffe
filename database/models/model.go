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
)

// Model is a user-defined record schema. Its fields carry the typed column
// definitions that objects under the model must conform to.
type Model struct {
	CreatedAt time.Time
	UUID      string  `gorm:"size:36;uniqueIndex;not null"`
	Name      string  `gorm:"size:64;not null"`
	Fields    []Field `gorm:"foreignKey:ModelID"`
	ID        uint    `gorm:"primarykey"`
}

func (Model) TableName() string {
	return "model"
}

// Field is one named, typed column definition within a Model. FieldID is
// assigned from the model's own sequence and is stable across renames and
// reorders; Slug is the external key used for values.
type Field struct {
	Slug       string `gorm:"size:128;uniqueIndex:idx_field_model_slug,priority:2;not null"`
	Name       string `gorm:"size:128;not null"`
	Type       string `gorm:"size:64;not null"`
	Choices    string
	ID         uint `gorm:"primarykey"`
	ModelID    uint `gorm:"uniqueIndex:idx_field_model_slug,priority:1;uniqueIndex:idx_field_model_field_id,priority:1;not null"`
	FieldID    uint `gorm:"uniqueIndex:idx_field_model_field_id,priority:2;not null"`
	IsRequired bool `gorm:"default:false"`
}

func (Field) TableName() string {
	return "field"
}

// FieldSequence is the per-model counter used to assign FieldID values.
// One row exists per model; increments happen atomically within the
// transaction that creates the field.
type FieldSequence struct {
	ModelID     uint `gorm:"primarykey"`
	NextFieldID uint `gorm:"not null;default:0"`
}

func (FieldSequence) TableName() string {
	return "field_sequence"
}

// Object is one record instance conforming to a Model.
type Object struct {
	CreatedAt time.Time
	UUID      string `gorm:"size:36;uniqueIndex;not null"`
	ID        uint   `gorm:"primarykey"`
	ModelID   uint   `gorm:"index;not null"`
}

func (Object) TableName() string {
	return "object"
}
