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

// Package anyvalue implements a dynamic record service: user-defined models
// with typed fields, and objects validated and stored against them.
package anyvalue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blinklabs-io/anyvalue/api"
	"github.com/blinklabs-io/anyvalue/database"
	"github.com/blinklabs-io/anyvalue/event"
)

type Service struct {
	eventBus      *event.EventBus
	db            *database.Database
	api           *api.Api
	shutdownFuncs []func(context.Context) error
	config        Config
	done          chan struct{}
	shutdownOnce  sync.Once
}

func New(cfg Config) (*Service, error) {
	eventBus := event.NewEventBus(cfg.promRegistry)
	s := &Service{
		config:   cfg,
		eventBus: eventBus,
		done:     make(chan struct{}),
	}
	return s, nil
}

func (s *Service) Run() error {
	// Configure tracing
	if s.config.tracing {
		if err := s.setupTracing(); err != nil {
			return err
		}
	}
	// Load database
	db, err := database.New(
		database.WithLogger(s.config.logger),
		database.WithDataDir(s.config.dataDir),
		database.WithPromRegistry(s.config.promRegistry),
		database.WithEventBus(s.eventBus),
	)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	// Start API listener
	s.api = api.New(
		api.ApiConfig{
			ListenAddress: s.config.apiListenAddress,
		},
		s.db,
		s.config.logger,
	)
	apiCtx, apiCancel := context.WithCancel(context.Background())
	s.shutdownFuncs = append(
		s.shutdownFuncs,
		func(context.Context) error {
			apiCancel()
			return nil
		},
	)
	if err := s.api.Start(apiCtx); err != nil {
		apiCancel()
		return err
	}

	// Wait for shutdown signal
	<-s.done
	return nil
}

// Database returns the service's database instance.
func (s *Service) Database() *database.Database {
	return s.db
}

func (s *Service) Stop() error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.shutdown()
	})
	return err
}

func (s *Service) shutdown() error {
	// Create shutdown context with timeout (default 30s if not configured)
	shutdownTimeout := 30 * time.Second
	if s.config.shutdownTimeout > 0 {
		shutdownTimeout = s.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	s.config.logger.Debug("starting graceful shutdown")

	// Phase 1: Stop accepting new work
	s.config.logger.Debug("shutdown phase 1: stopping new work")

	if s.api != nil {
		if stopErr := s.api.Stop(ctx); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("api shutdown: %w", stopErr))
		}
	}

	// Phase 2: Flush state and close database
	s.config.logger.Debug("shutdown phase 2: flushing state")

	if s.db != nil {
		if closeErr := s.db.Close(); closeErr != nil {
			err = errors.Join(
				err,
				fmt.Errorf("database close: %w", closeErr),
			)
		}
	}

	// Phase 3: Cleanup resources
	s.config.logger.Debug("shutdown phase 3: cleanup resources")

	// Call registered shutdown functions
	for _, fn := range s.shutdownFuncs {
		if fnErr := fn(ctx); fnErr != nil {
			err = errors.Join(err, fmt.Errorf("shutdown function: %w", fnErr))
		}
	}
	s.shutdownFuncs = nil

	if s.eventBus != nil {
		s.eventBus.Stop()
	}

	s.config.logger.Debug("graceful shutdown complete")
	close(s.done)
	return err
}
