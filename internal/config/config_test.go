// Copyright 2025 Blink Labs Software
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
	assert.Equal(t, DefaultBlobPlugin, cfg.BlobPlugin)
	assert.Equal(t, DefaultMetadataPlugin, cfg.MetadataPlugin)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docstore.yaml")
	require.NoError(t, os.WriteFile(
		path,
		[]byte("dataDir: /var/lib/docstore\nblobPlugin: badger\n"),
		0o600,
	))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/docstore", cfg.DataDir)
	assert.Equal(t, "badger", cfg.BlobPlugin)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DOCSTORE_DATA_DIR", "/tmp/docstore-env")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/docstore-env", cfg.DataDir)
}
