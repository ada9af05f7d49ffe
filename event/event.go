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

// Package event provides a simple in-process pub/sub bus used to broadcast
// schema and object lifecycle changes to interested subsystems.
package event

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const EventQueueSize = 20

type EventType string

type EventSubscriberId int

type EventHandlerFunc func(Event)

type Event struct {
	Timestamp time.Time
	Data      any
	Type      EventType
}

func NewEvent(eventType EventType, eventData any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      eventData,
	}
}

type eventMetrics struct {
	published   *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	subscribers *prometheus.GaugeVec
}

type EventBus struct {
	subscribers map[EventType]map[EventSubscriberId]chan Event
	metrics     *eventMetrics
	handlerWg   sync.WaitGroup
	lastSubId   EventSubscriberId
	mu          sync.RWMutex
	stopped     bool
}

// NewEventBus creates a new EventBus. Metrics are registered when a
// prometheus registry is provided.
func NewEventBus(promRegistry prometheus.Registerer) *EventBus {
	e := &EventBus{
		subscribers: make(map[EventType]map[EventSubscriberId]chan Event),
	}
	if promRegistry != nil {
		e.initMetrics(promRegistry)
	}
	return e
}

func (e *EventBus) initMetrics(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	e.metrics = &eventMetrics{}
	e.metrics.published = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anyvalue_events_published_total",
			Help: "number of events published by type",
		},
		[]string{"type"},
	)
	e.metrics.dropped = promautoFactory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anyvalue_events_dropped_total",
			Help: "number of events dropped due to a full subscriber queue by type",
		},
		[]string{"type"},
	)
	e.metrics.subscribers = promautoFactory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "anyvalue_event_subscribers",
			Help: "number of active event subscribers by type",
		},
		[]string{"type"},
	)
}

// Subscribe allows a consumer to receive events of a particular type via a channel
func (e *EventBus) Subscribe(
	eventType EventType,
) (EventSubscriberId, <-chan Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	subId := e.lastSubId + 1
	e.lastSubId = subId
	if _, ok := e.subscribers[eventType]; !ok {
		e.subscribers[eventType] = make(
			map[EventSubscriberId]chan Event,
		)
	}
	evtCh := make(chan Event, EventQueueSize)
	e.subscribers[eventType][subId] = evtCh
	if e.metrics != nil {
		e.metrics.subscribers.WithLabelValues(string(eventType)).Inc()
	}
	return subId, evtCh
}

// SubscribeFunc allows a consumer to receive events of a particular type via a callback function
func (e *EventBus) SubscribeFunc(
	eventType EventType,
	handlerFunc EventHandlerFunc,
) EventSubscriberId {
	subId, evtCh := e.Subscribe(eventType)
	e.handlerWg.Add(1)
	go func() {
		defer e.handlerWg.Done()
		for evt := range evtCh {
			handlerFunc(evt)
		}
	}()
	return subId
}

// Unsubscribe stops delivery of events of a particular type for an existing subscriber
func (e *EventBus) Unsubscribe(
	eventType EventType,
	subId EventSubscriberId,
) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if evtTypeSubs, ok := e.subscribers[eventType]; ok {
		if evtCh, ok := evtTypeSubs[subId]; ok {
			delete(evtTypeSubs, subId)
			close(evtCh)
			if e.metrics != nil {
				e.metrics.subscribers.WithLabelValues(
					string(eventType),
				).Dec()
			}
		}
	}
}

// Publish allows a producer to send an event of a particular type to all subscribers
func (e *EventBus) Publish(eventType EventType, evt Event) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stopped {
		return
	}
	for _, evtCh := range e.subscribers[eventType] {
		// A subscriber that has stopped draining its queue must not be
		// allowed to stall publishers, so the event is dropped instead
		select {
		case evtCh <- evt:
		default:
			if e.metrics != nil {
				e.metrics.dropped.WithLabelValues(string(eventType)).Inc()
			}
		}
	}
	if e.metrics != nil {
		e.metrics.published.WithLabelValues(string(eventType)).Inc()
	}
}

// Stop closes all subscriber channels and waits for callback handlers to
// drain. The bus must not be used after Stop.
func (e *EventBus) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	for eventType, evtTypeSubs := range e.subscribers {
		for subId, evtCh := range evtTypeSubs {
			delete(evtTypeSubs, subId)
			close(evtCh)
		}
		delete(e.subscribers, eventType)
	}
	e.mu.Unlock()
	e.handlerWg.Wait()
}
