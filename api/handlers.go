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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blinklabs-io/anyvalue/database"
	"github.com/blinklabs-io/anyvalue/validate"
)

const apiVersion = "0.1.0"

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeError writes a generic error response.
func writeError(
	w http.ResponseWriter,
	status int,
	errStr string,
	message string,
) {
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      errStr,
		Message:    message,
	})
}

// writeStoreError maps store errors onto HTTP responses. Validation errors
// carry their structured payload through as the response body.
func (a *Api) writeStoreError(w http.ResponseWriter, err error) {
	var schemaErrs *database.SchemaErrors
	var fieldErrs validate.FieldErrors
	switch {
	case errors.Is(err, database.ErrModelNotFound):
		writeError(
			w,
			http.StatusNotFound,
			"Not Found",
			"model not found",
		)
	case errors.Is(err, database.ErrObjectNotFound):
		writeError(
			w,
			http.StatusNotFound,
			"Not Found",
			"object not found",
		)
	case errors.As(err, &schemaErrs):
		writeJSON(w, http.StatusBadRequest, schemaErrs)
	case errors.As(err, &fieldErrs):
		writeJSON(w, http.StatusBadRequest, fieldErrs)
	default:
		a.logger.Error("store error", "error", err)
		writeError(
			w,
			http.StatusInternalServerError,
			"Internal Server Error",
			"unexpected error",
		)
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// handleRoot handles GET / and returns API metadata.
func (a *Api) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		URL:     "https://blinklabs.io/",
		Version: apiVersion,
	})
}

// handleHealth handles GET /health.
func (a *Api) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: true,
	})
}

// handleListModels handles GET /api/v0/models.
func (a *Api) handleListModels(w http.ResponseWriter, r *http.Request) {
	params, err := ParsePagination(r)
	if err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			err.Error(),
		)
		return
	}
	page, total, err := a.store.ListModels(params.Page, params.Count)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	results := make([]ModelResponse, 0, len(page))
	for i := range page {
		results = append(results, newModelResponse(&page[i]))
	}
	writeJSON(w, http.StatusOK, ModelListResponse{
		Count:   total,
		Results: results,
	})
}

// handleCreateModel handles POST /api/v0/models.
func (a *Api) handleCreateModel(w http.ResponseWriter, r *http.Request) {
	var req ModelRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid JSON payload",
		)
		return
	}
	model, err := a.store.CreateModel(req.Name, req.Fields)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newModelResponse(model))
}

// handleGetModel handles GET /api/v0/models/{uuid}.
func (a *Api) handleGetModel(w http.ResponseWriter, r *http.Request) {
	model, err := a.store.GetModel(r.PathValue("uuid"))
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newModelResponse(model))
}

// handleUpdateModel handles PUT /api/v0/models/{uuid}.
func (a *Api) handleUpdateModel(w http.ResponseWriter, r *http.Request) {
	var req ModelRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid JSON payload",
		)
		return
	}
	model, err := a.store.UpdateModel(
		r.PathValue("uuid"),
		req.Name,
		req.Fields,
	)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newModelResponse(model))
}

// handleDeleteModel handles DELETE /api/v0/models/{uuid}.
func (a *Api) handleDeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteModel(r.PathValue("uuid")); err != nil {
		a.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListObjects handles GET /api/v0/models/{uuid}/objects. The optional
// value query parameter restricts the result to objects holding a matching
// value.
func (a *Api) handleListObjects(w http.ResponseWriter, r *http.Request) {
	params, err := ParsePagination(r)
	if err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			err.Error(),
		)
		return
	}
	records, total, err := a.store.ListObjects(
		r.PathValue("uuid"),
		r.URL.Query().Get("value"),
		params.Page,
		params.Count,
	)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	results := make([]ObjectResponse, 0, len(records))
	for i := range records {
		results = append(results, newObjectResponse(&records[i]))
	}
	writeJSON(w, http.StatusOK, ObjectListResponse{
		Count:   total,
		Results: results,
	})
}

// handleCreateObject handles POST /api/v0/models/{uuid}/objects. The payload
// is a JSON object mapping field slugs to raw values.
func (a *Api) handleCreateObject(w http.ResponseWriter, r *http.Request) {
	var rawValues map[string]any
	if err := decodeBody(r, &rawValues); err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid JSON payload",
		)
		return
	}
	record, err := a.store.CreateObject(r.PathValue("uuid"), rawValues)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newObjectResponse(record))
}

// handleGetObject handles GET /api/v0/objects/{uuid}.
func (a *Api) handleGetObject(w http.ResponseWriter, r *http.Request) {
	record, err := a.store.GetObject(r.PathValue("uuid"))
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newObjectResponse(record))
}

// handleUpdateObject handles PUT /api/v0/objects/{uuid}. Supplied values are
// overwritten; omitted fields are left untouched.
func (a *Api) handleUpdateObject(w http.ResponseWriter, r *http.Request) {
	var rawValues map[string]any
	if err := decodeBody(r, &rawValues); err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			"Bad Request",
			"invalid JSON payload",
		)
		return
	}
	record, err := a.store.UpdateObject(r.PathValue("uuid"), rawValues)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newObjectResponse(record))
}

// handleDeleteObject handles DELETE /api/v0/objects/{uuid}.
func (a *Api) handleDeleteObject(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteObject(r.PathValue("uuid")); err != nil {
		a.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
