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

package database

import (
	"github.com/blinklabs-io/docstore/database/models"
	"github.com/blinklabs-io/docstore/database/types"
)

// UserPermission returns the stored permission record for an email, or nil
// when the user has never been recorded
func (d *Database) UserPermission(
	email string,
) (*models.UserPermission, error) {
	return d.metadata.GetUserPermission(email, nil)
}

// SetUserPermission creates or replaces a user permission record
func (d *Database) SetUserPermission(perm *models.UserPermission) error {
	return d.metadata.SetUserPermission(perm, nil)
}

// UserPermissions lists all recorded user permissions
func (d *Database) UserPermissions() ([]models.UserPermission, error) {
	return d.metadata.ListUserPermissions(nil)
}

// SetAllowSave sets the save-permission flag on an existing user record
func (d *Database) SetAllowSave(email string, allow bool) error {
	return d.setPermissionFlag(email, func(perm *models.UserPermission) {
		perm.AllowSave = &allow
	})
}

// SetAllowLogin sets the login-permission flag on an existing user record
func (d *Database) SetAllowLogin(email string, allow bool) error {
	return d.setPermissionFlag(email, func(perm *models.UserPermission) {
		perm.AllowLogin = &allow
	})
}

func (d *Database) setPermissionFlag(
	email string,
	update func(*models.UserPermission),
) error {
	txn := d.Transaction(true)
	defer txn.Release()

	perm, err := d.metadata.GetUserPermission(email, txn.Metadata())
	if err != nil {
		return err
	}
	if perm == nil {
		return types.ErrNotFound
	}
	update(perm)
	if err := d.metadata.SetUserPermission(perm, txn.Metadata()); err != nil {
		return err
	}
	return txn.Commit()
}
