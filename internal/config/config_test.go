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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.BindAddr)
	assert.Equal(t, uint(8080), cfg.ApiPort)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
}

func TestLoadConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "anyvalue.yaml")
	content := "bindAddr: 127.0.0.1\napiPort: 9000\ntracing: true\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.BindAddr)
	assert.Equal(t, uint(9000), cfg.ApiPort)
	assert.True(t, cfg.Tracing)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ANYVALUE_DATABASE_PATH", "/var/lib/anyvalue")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/anyvalue", cfg.DatabasePath)
}

func TestConfigContext(t *testing.T) {
	cfg := &Config{BindAddr: "127.0.0.1"}
	ctx := WithContext(t.Context(), cfg)
	assert.Equal(t, cfg, FromContext(ctx))
	assert.Nil(t, FromContext(t.Context()))
}

func TestListenAddresses(t *testing.T) {
	cfg := &Config{
		BindAddr:        "0.0.0.0",
		ApiPort:         8080,
		MetricsBindAddr: "127.0.0.1",
		MetricsPort:     12798,
	}
	assert.Equal(t, "0.0.0.0:8080", cfg.ApiListenAddress())
	assert.Equal(t, "127.0.0.1:12798", cfg.MetricsListenAddress())
}
