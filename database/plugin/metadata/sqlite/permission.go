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
	"errors"
	"fmt"

	"github.com/blinklabs-io/docstore/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetUserPermission gets the permission row for a user. Returns nil without
// error when the user is unknown.
func (d *MetadataStoreSqlite) GetUserPermission(
	email string,
	txn *gorm.DB,
) (*models.UserPermission, error) {
	ret := &models.UserPermission{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("email = ?", email).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetUserPermission creates or replaces the permission row for a user
func (d *MetadataStoreSqlite) SetUserPermission(
	perm *models.UserPermission,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		UpdateAll: true,
	}).Create(perm)
	if result.Error != nil {
		return fmt.Errorf("failed to set user permission: %w", result.Error)
	}
	return nil
}

// ListUserPermissions returns all permission rows ordered by email
func (d *MetadataStoreSqlite) ListUserPermissions(
	txn *gorm.DB,
) ([]models.UserPermission, error) {
	if txn == nil {
		txn = d.DB()
	}
	var ret []models.UserPermission
	result := txn.Order("email ASC").Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}
