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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type storeMetrics struct {
	modelsCreated      prometheus.Counter
	modelsDeleted      prometheus.Counter
	objectsCreated     prometheus.Counter
	objectsUpdated     prometheus.Counter
	objectsDeleted     prometheus.Counter
	validationFailures *prometheus.CounterVec // Failures by entity kind
}

func (d *Database) initMetrics() {
	promautoFactory := promauto.With(d.promRegistry)
	d.metrics = &storeMetrics{}
	d.metrics.modelsCreated = promautoFactory.NewCounter(
		prometheus.CounterOpts{
			Name: "anyvalue_models_created_total",
			Help: "number of models created",
		},
	)
	d.metrics.modelsDeleted = promautoFactory.NewCounter(
		prometheus.CounterOpts{
			Name: "anyvalue_models_deleted_total",
			Help: "number of models deleted",
		},
	)
	d.metrics.objectsCreated = promautoFactory.NewCounter(
		prometheus.CounterOpts{
			Name: "anyvalue_objects_created_total",
			Help: "number of objects created",
		},
	)
	d.metrics.objectsUpdated = promautoFactory.NewCounter(
		prometheus.CounterOpts{
			Name: "anyvalue_objects_updated_total",
			Help: "number of objects updated",
		},
	)
	d.metrics.objectsDeleted = promautoFactory.NewCounter(
		prometheus.CounterOpts{
			Name: "anyvalue_objects_deleted_total",
			Help: "number of objects deleted",
		},
	)
	d.metrics.validationFailures = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anyvalue_validation_failures_total",
			Help: "number of rejected create/update requests by entity",
		},
		[]string{"entity"},
	)
}

func (d *Database) countValidationFailure(entity string) {
	if d.metrics == nil {
		return
	}
	d.metrics.validationFailures.WithLabelValues(entity).Inc()
}
