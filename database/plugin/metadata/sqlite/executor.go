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

package sqlite

import (
	"fmt"

	"github.com/blinklabs-io/docstore/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddExecutorSuggestion records a new executor name for input assistance.
// Duplicate names are silently ignored.
func (d *MetadataStoreSqlite) AddExecutorSuggestion(
	name string,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ExecutorSuggestion{Name: name})
	if result.Error != nil {
		return fmt.Errorf("failed to add executor suggestion: %w", result.Error)
	}
	return nil
}

// RemoveExecutorSuggestion removes an executor name
func (d *MetadataStoreSqlite) RemoveExecutorSuggestion(
	name string,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Where("name = ?", name).
		Delete(&models.ExecutorSuggestion{})
	if result.Error != nil {
		return fmt.Errorf(
			"failed to remove executor suggestion: %w",
			result.Error,
		)
	}
	return nil
}

// ListExecutorSuggestions returns all executor names ordered alphabetically
func (d *MetadataStoreSqlite) ListExecutorSuggestions(
	txn *gorm.DB,
) ([]string, error) {
	if txn == nil {
		txn = d.DB()
	}
	var ret []string
	result := txn.Model(&models.ExecutorSuggestion{}).
		Order("name ASC").
		Pluck("name", &ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}
