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
	"log/slog"

	"github.com/blinklabs-io/anyvalue/event"
	"github.com/prometheus/client_golang/prometheus"
)

type OptionFunc func(*Database)

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(d *Database) {
		d.logger = logger
	}
}

// WithDataDir specifies the data directory to use for storage. The default
// is to store everything in memory
func WithDataDir(dataDir string) OptionFunc {
	return func(d *Database) {
		d.dataDir = dataDir
	}
}

// WithPromRegistry specifies the prometheus registry to use for metrics
func WithPromRegistry(registry prometheus.Registerer) OptionFunc {
	return func(d *Database) {
		d.promRegistry = registry
	}
}

// WithEventBus specifies the event bus used to publish schema and object
// lifecycle events
func WithEventBus(eventBus *event.EventBus) OptionFunc {
	return func(d *Database) {
		d.eventBus = eventBus
	}
}
