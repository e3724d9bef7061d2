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

package metadata

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/docstore/database/models"
	"github.com/blinklabs-io/docstore/database/plugin/metadata/sqlite"
	"github.com/blinklabs-io/docstore/database/types"
	"github.com/blinklabs-io/docstore/document"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	Transaction() *gorm.DB

	// Documents
	CreateDocument(*models.Document, *gorm.DB) error
	GetDocument(
		string, // id
		*gorm.DB,
	) (*models.Document, error)
	GetDocuments(
		document.Category, // empty Category matches all
		types.DocumentOrder,
		*gorm.DB,
	) ([]models.Document, error)
	UpdateDocument(
		string, // id
		map[string]any,
		*gorm.DB,
	) error
	DeleteDocument(
		string, // id
		*gorm.DB,
	) error
	AllocateSequenceNo(
		document.Category,
		*gorm.DB,
	) (int, error)
	CountDocuments(*gorm.DB) (map[document.Category]int64, error)

	// User permissions
	GetUserPermission(
		string, // email
		*gorm.DB,
	) (*models.UserPermission, error)
	SetUserPermission(*models.UserPermission, *gorm.DB) error
	ListUserPermissions(*gorm.DB) ([]models.UserPermission, error)

	// Executor suggestions
	AddExecutorSuggestion(
		string, // name
		*gorm.DB,
	) error
	RemoveExecutorSuggestion(
		string, // name
		*gorm.DB,
	) error
	ListExecutorSuggestions(*gorm.DB) ([]string, error)
}

// New returns the metadata store selected by plugin name
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	switch pluginName {
	case "sqlite", "":
		return sqlite.New(dataDir, logger, promRegistry)
	default:
		return nil, fmt.Errorf("unknown metadata plugin: %s", pluginName)
	}
}
