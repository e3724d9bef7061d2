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

package models

// User roles
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// UserPermission is one row of the trusted permission table, keyed by email.
// AllowSave and AllowLogin are tri-state: nil means "not explicitly set" and
// the defaults differ (AllowSave defaults to allowed; AllowLogin defaults by
// role: admin allowed, client denied).
type UserPermission struct {
	Email       string `gorm:"primarykey;size:255"`
	DisplayName string
	Role        string `gorm:"size:16"`
	AllowSave   *bool
	AllowLogin  *bool
}

func (UserPermission) TableName() string {
	return "user_permission"
}

// SaveAllowed resolves the AllowSave tri-state: absent means allowed
func (u *UserPermission) SaveAllowed() bool {
	return u.AllowSave == nil || *u.AllowSave
}

// LoginAllowed resolves the AllowLogin tri-state with the role-dependent
// default. The asymmetry is intentional policy: an admin row with no
// explicit flag may log in, a client row may not.
func (u *UserPermission) LoginAllowed() bool {
	if u.AllowLogin != nil {
		return *u.AllowLogin
	}
	return u.Role == RoleAdmin
}
