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

// Package access decides whether a known user identity may log in or write.
// It only reads the permission table; provisioning and mutation of the table
// happen elsewhere.
package access

import (
	"errors"

	"github.com/blinklabs-io/docstore/database/models"
)

// ErrPermissionDenied is returned when an operation is blocked by the
// permission table
var ErrPermissionDenied = errors.New("permission denied")

// User is an authenticated identity as supplied by the identity collaborator.
// A nil *User means no authenticated user.
type User struct {
	Email string
	Role  string
}

// PermissionReader looks up a stored permission record by email, returning
// nil when the user has never been recorded
type PermissionReader interface {
	UserPermission(email string) (*models.UserPermission, error)
}

// Gate performs read-only permission checks against a permission table
type Gate struct {
	perms PermissionReader
}

func NewGate(perms PermissionReader) *Gate {
	return &Gate{perms: perms}
}

// CanSave reports whether the user may write to the document store. An
// unauthenticated or unrecorded user may not; a recorded user may unless
// the save flag was explicitly revoked.
func (g *Gate) CanSave(user *User) (bool, error) {
	if user == nil {
		return false, nil
	}
	perm, err := g.perms.UserPermission(user.Email)
	if err != nil {
		return false, err
	}
	if perm == nil {
		return false, nil
	}
	return perm.SaveAllowed(), nil
}

// CanLogin reports whether the user may start a session. With no explicit
// login flag, admins are allowed and clients are not.
func (g *Gate) CanLogin(user *User) (bool, error) {
	if user == nil {
		return false, nil
	}
	perm, err := g.perms.UserPermission(user.Email)
	if err != nil {
		return false, err
	}
	if perm == nil {
		return false, nil
	}
	return perm.LoginAllowed(), nil
}

// AuthorizeSave is CanSave expressed as an error, for gating write paths
func (g *Gate) AuthorizeSave(user *User) error {
	ok, err := g.CanSave(user)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	return nil
}
