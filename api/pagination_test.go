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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaginationDefaultValues(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v0/models", nil)
	params, err := ParsePagination(r)
	require.NoError(t, err)
	assert.Equal(t, DefaultPaginationCount, params.Count)
	assert.Equal(t, DefaultPaginationPage, params.Page)
}

func TestParsePaginationValid(t *testing.T) {
	r := httptest.NewRequest(
		http.MethodGet,
		"/api/v0/models?count=10&page=3",
		nil,
	)
	params, err := ParsePagination(r)
	require.NoError(t, err)
	assert.Equal(t, 10, params.Count)
	assert.Equal(t, 3, params.Page)
}

func TestParsePaginationClampBounds(t *testing.T) {
	r := httptest.NewRequest(
		http.MethodGet,
		"/api/v0/models?count=9999&page=-5",
		nil,
	)
	params, err := ParsePagination(r)
	require.NoError(t, err)
	assert.Equal(t, MaxPaginationCount, params.Count)
	assert.Equal(t, DefaultPaginationPage, params.Page)
}

func TestParsePaginationInvalid(t *testing.T) {
	for _, query := range []string{
		"count=abc",
		"page=abc",
	} {
		r := httptest.NewRequest(
			http.MethodGet,
			"/api/v0/models?"+query,
			nil,
		)
		_, err := ParsePagination(r)
		require.ErrorIs(t, err, ErrInvalidPaginationParameters)
	}
}
