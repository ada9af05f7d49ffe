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
	"testing"

	"github.com/blinklabs-io/anyvalue/database/models"
)

// newTestDatabase creates a database backed by a fresh on-disk store so
// tests don't share state through the process-wide in-memory connection
func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(WithDataDir(t.TempDir()))
	if err != nil {
		t.Fatalf("unexpected error creating database: %s", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("unexpected error closing database: %s", err)
		}
	})
	return db
}

// carFieldDefs is the standard test model definition
func carFieldDefs() []FieldDef {
	return []FieldDef{
		{Name: "Brand", Type: "text", IsRequired: true},
		{Name: "Purchased", Type: "date"},
		{Name: "Seats", Type: "number"},
		{Name: "Type of Car", Type: "enum", Choices: "Sedan,SUV,Eco,Sport"},
	}
}

func createCarModel(t *testing.T, db *Database) *models.Model {
	t.Helper()
	model, err := db.CreateModel("Car", carFieldDefs())
	if err != nil {
		t.Fatalf("unexpected error creating model: %s", err)
	}
	return model
}

func TestNewCreatesSchema(t *testing.T) {
	db := newTestDatabase(t)
	for _, model := range models.MigrateModels {
		if !db.DB().Migrator().HasTable(model) {
			t.Fatalf("expected table for %T to exist", model)
		}
	}
}

func TestNewInMemory(t *testing.T) {
	db, err := New()
	if err != nil {
		t.Fatalf("unexpected error creating database: %s", err)
	}
	defer db.Close()
	if db.DataDir() != "" {
		t.Fatalf("expected empty data dir, got %q", db.DataDir())
	}
}
