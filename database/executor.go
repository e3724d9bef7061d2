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

// AddExecutor records an executor name for autocomplete suggestions.
// Duplicate names are absorbed silently.
func (d *Database) AddExecutor(name string) error {
	return d.metadata.AddExecutorSuggestion(name, nil)
}

// RemoveExecutor removes an executor name from the suggestion list
func (d *Database) RemoveExecutor(name string) error {
	return d.metadata.RemoveExecutorSuggestion(name, nil)
}

// Executors lists recorded executor names in alphabetical order
func (d *Database) Executors() ([]string, error) {
	return d.metadata.ListExecutorSuggestions(nil)
}
