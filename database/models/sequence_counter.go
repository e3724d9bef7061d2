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

import (
	"github.com/blinklabs-io/docstore/document"
)

// SequenceCounter is the per-category sequence high-water mark. It only
// ever increases, so a deleted record's number is never handed out again.
type SequenceCounter struct {
	Category  document.Category `gorm:"primarykey;size:32"`
	LastValue int
}

func (SequenceCounter) TableName() string {
	return "sequence_counter"
}
