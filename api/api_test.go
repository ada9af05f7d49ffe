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
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/anyvalue/database"
	"github.com/blinklabs-io/anyvalue/database/models"
	"github.com/blinklabs-io/anyvalue/fieldtype"
	"github.com/blinklabs-io/anyvalue/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore implements Store for testing.
type mockStore struct {
	model     *models.Model
	modelList []models.Model
	record    *database.ObjectRecord
	records   []database.ObjectRecord
	total     int64
	err       error
}

func (m *mockStore) CreateModel(
	name string,
	fieldDefs []database.FieldDef,
) (*models.Model, error) {
	return m.model, m.err
}

func (m *mockStore) GetModel(modelUUID string) (*models.Model, error) {
	return m.model, m.err
}

func (m *mockStore) ListModels(
	page, count int,
) ([]models.Model, int64, error) {
	return m.modelList, m.total, m.err
}

func (m *mockStore) UpdateModel(
	modelUUID string,
	name string,
	fieldDefs []database.FieldDef,
) (*models.Model, error) {
	return m.model, m.err
}

func (m *mockStore) DeleteModel(modelUUID string) error {
	return m.err
}

func (m *mockStore) CreateObject(
	modelUUID string,
	rawValues map[string]any,
) (*database.ObjectRecord, error) {
	return m.record, m.err
}

func (m *mockStore) GetObject(
	objectUUID string,
) (*database.ObjectRecord, error) {
	return m.record, m.err
}

func (m *mockStore) ListObjects(
	modelUUID string,
	valueFilter string,
	page, count int,
) ([]database.ObjectRecord, int64, error) {
	return m.records, m.total, m.err
}

func (m *mockStore) UpdateObject(
	objectUUID string,
	rawValues map[string]any,
) (*database.ObjectRecord, error) {
	return m.record, m.err
}

func (m *mockStore) DeleteObject(objectUUID string) error {
	return m.err
}

func testModel() *models.Model {
	return &models.Model{
		UUID: "model-uuid",
		Name: "Car",
		Fields: []models.Field{
			{
				FieldID:    1,
				Slug:       "brand",
				Name:       "Brand",
				Type:       "text",
				IsRequired: true,
			},
			{
				FieldID: 2,
				Slug:    "seats",
				Name:    "Seats",
				Type:    "number",
			},
		},
	}
}

func testRecord() *database.ObjectRecord {
	return &database.ObjectRecord{
		Object: &models.Object{UUID: "object-uuid"},
		Model:  testModel(),
		Values: map[string]fieldtype.Value{
			"brand": {Kind: fieldtype.Text, Text: "Toyota"},
			"seats": {Kind: fieldtype.Number, Number: 5},
		},
	}
}

func newTestApi(store Store) *Api {
	return New(
		ApiConfig{
			ListenAddress: ":0",
		},
		store,
		slog.Default(),
	)
}

func TestStartStop(t *testing.T) {
	a := newTestApi(&mockStore{})

	err := a.Start(t.Context())
	require.NoError(t, err)

	// Verify server is running
	a.mu.Lock()
	assert.NotNil(t, a.httpServer)
	a.mu.Unlock()

	// Stop the server
	stopCtx, stopCancel := context.WithTimeout(
		context.Background(),
		5*time.Second,
	)
	defer stopCancel()
	err = a.Stop(stopCtx)
	require.NoError(t, err)

	// Verify server is stopped
	a.mu.Lock()
	assert.Nil(t, a.httpServer)
	a.mu.Unlock()
}

func TestStartAlreadyStarted(t *testing.T) {
	a := newTestApi(&mockStore{})

	ctx := t.Context()
	err := a.Start(ctx)
	require.NoError(t, err)
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(
			context.Background(),
			5*time.Second,
		)
		defer stopCancel()
		//nolint:errcheck
		a.Stop(stopCtx)
	}()

	err = a.Start(ctx)
	require.Error(t, err)
}

func TestStopIdempotent(t *testing.T) {
	a := newTestApi(&mockStore{})
	// Stopping a server that never started is a no-op
	err := a.Stop(t.Context())
	require.NoError(t, err)
}

func TestHandleRoot(t *testing.T) {
	a := newTestApi(&mockStore{})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	a.handleRoot(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp RootResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apiVersion, resp.Version)
}

func TestHandleHealth(t *testing.T) {
	a := newTestApi(&mockStore{})
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	a.handleHealth(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsHealthy)
}

func TestHandleCreateModel(t *testing.T) {
	a := newTestApi(&mockStore{model: testModel()})
	body := `{"name":"Car","fields":[{"name":"Brand","type":"text"}]}`
	r := httptest.NewRequest(
		http.MethodPost,
		"/api/v0/models",
		strings.NewReader(body),
	)
	w := httptest.NewRecorder()

	a.handleCreateModel(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp ModelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "model-uuid", resp.UUID)
	assert.Equal(t, "Car", resp.Name)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, "brand", resp.Fields[0].Slug)
}

func TestHandleCreateModelInvalidJSON(t *testing.T) {
	a := newTestApi(&mockStore{})
	r := httptest.NewRequest(
		http.MethodPost,
		"/api/v0/models",
		strings.NewReader("{not json"),
	)
	w := httptest.NewRecorder()

	a.handleCreateModel(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateModelSchemaErrors(t *testing.T) {
	a := newTestApi(&mockStore{
		err: &database.SchemaErrors{
			Name: database.MsgNameEmpty,
			Fields: []map[string]string{
				{"type": database.MsgTypeInvalid},
			},
		},
	})
	body := `{"name":"","fields":[{"name":"Brand","type":"color"}]}`
	r := httptest.NewRequest(
		http.MethodPost,
		"/api/v0/models",
		strings.NewReader(body),
	)
	w := httptest.NewRecorder()

	a.handleCreateModel(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp database.SchemaErrors
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, database.MsgNameEmpty, resp.Name)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, database.MsgTypeInvalid, resp.Fields[0]["type"])
}

func TestHandleGetModelNotFound(t *testing.T) {
	a := newTestApi(&mockStore{err: database.ErrModelNotFound})
	r := httptest.NewRequest(
		http.MethodGet,
		"/api/v0/models/missing",
		nil,
	)
	r.SetPathValue("uuid", "missing")
	w := httptest.NewRecorder()

	a.handleGetModel(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleListModels(t *testing.T) {
	a := newTestApi(&mockStore{
		modelList: []models.Model{*testModel()},
		total:     7,
	})
	r := httptest.NewRequest(
		http.MethodGet,
		"/api/v0/models?page=2&count=1",
		nil,
	)
	w := httptest.NewRecorder()

	a.handleListModels(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ModelListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Count)
	require.Len(t, resp.Results, 1)
}

func TestHandleDeleteModel(t *testing.T) {
	a := newTestApi(&mockStore{})
	r := httptest.NewRequest(
		http.MethodDelete,
		"/api/v0/models/model-uuid",
		nil,
	)
	r.SetPathValue("uuid", "model-uuid")
	w := httptest.NewRecorder()

	a.handleDeleteModel(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandleCreateObject(t *testing.T) {
	a := newTestApi(&mockStore{record: testRecord()})
	body := `{"brand":"Toyota","seats":5}`
	r := httptest.NewRequest(
		http.MethodPost,
		"/api/v0/models/model-uuid/objects",
		strings.NewReader(body),
	)
	r.SetPathValue("uuid", "model-uuid")
	w := httptest.NewRecorder()

	a.handleCreateObject(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp ObjectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "object-uuid", resp.UUID)
	assert.Equal(t, "model-uuid", resp.Model)
	assert.Equal(t, "Toyota", resp.Values["brand"])
	// Numbers stay numeric in JSON
	assert.Equal(t, float64(5), resp.Values["seats"])
}

func TestHandleCreateObjectFieldErrors(t *testing.T) {
	a := newTestApi(&mockStore{
		err: validate.FieldErrors{
			"brand": validate.MsgFieldRequired,
		},
	})
	r := httptest.NewRequest(
		http.MethodPost,
		"/api/v0/models/model-uuid/objects",
		strings.NewReader(`{}`),
	)
	r.SetPathValue("uuid", "model-uuid")
	w := httptest.NewRecorder()

	a.handleCreateObject(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, validate.MsgFieldRequired, resp["brand"])
}

func TestHandleGetObjectNotFound(t *testing.T) {
	a := newTestApi(&mockStore{err: database.ErrObjectNotFound})
	r := httptest.NewRequest(
		http.MethodGet,
		"/api/v0/objects/missing",
		nil,
	)
	r.SetPathValue("uuid", "missing")
	w := httptest.NewRecorder()

	a.handleGetObject(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleListObjects(t *testing.T) {
	a := newTestApi(&mockStore{
		records: []database.ObjectRecord{*testRecord()},
		total:   1,
	})
	r := httptest.NewRequest(
		http.MethodGet,
		"/api/v0/models/model-uuid/objects?value=Toyota",
		nil,
	)
	r.SetPathValue("uuid", "model-uuid")
	w := httptest.NewRecorder()

	a.handleListObjects(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ObjectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Count)
	require.Len(t, resp.Results, 1)
}

func TestHandleUpdateObject(t *testing.T) {
	a := newTestApi(&mockStore{record: testRecord()})
	r := httptest.NewRequest(
		http.MethodPut,
		"/api/v0/objects/object-uuid",
		strings.NewReader(`{"seats":7}`),
	)
	r.SetPathValue("uuid", "object-uuid")
	w := httptest.NewRecorder()

	a.handleUpdateObject(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandleDeleteObject(t *testing.T) {
	a := newTestApi(&mockStore{})
	r := httptest.NewRequest(
		http.MethodDelete,
		"/api/v0/objects/object-uuid",
		nil,
	)
	r.SetPathValue("uuid", "object-uuid")
	w := httptest.NewRecorder()

	a.handleDeleteObject(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestNilLogger(t *testing.T) {
	a := New(ApiConfig{}, &mockStore{}, nil)
	require.NotNil(t, a.logger)
}

func TestDefaultListenAddress(t *testing.T) {
	a := New(ApiConfig{}, &mockStore{}, nil)
	require.Equal(t, ":8080", a.config.ListenAddress)
}
