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
	"github.com/blinklabs-io/anyvalue/event"
)

const (
	ModelCreatedEventType  event.EventType = "database.model.created"
	ModelUpdatedEventType  event.EventType = "database.model.updated"
	ModelDeletedEventType  event.EventType = "database.model.deleted"
	ObjectCreatedEventType event.EventType = "database.object.created"
	ObjectUpdatedEventType event.EventType = "database.object.updated"
	ObjectDeletedEventType event.EventType = "database.object.deleted"
)

// ModelEvent is the payload for model lifecycle events
type ModelEvent struct {
	UUID string
	Name string
}

// ObjectEvent is the payload for object lifecycle events
type ObjectEvent struct {
	UUID      string
	ModelUUID string
}
