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
	"time"

	"github.com/blinklabs-io/docstore/document"
)

// Document represents one submitted document record. Attachment bytes are
// stored in the blob store under the record ID; only the metadata lives
// here. SequenceNo is unique within a category and never reused.
type Document struct {
	ID             string            `gorm:"primarykey;size:36"`
	Category       document.Category `gorm:"size:32;index;uniqueIndex:idx_document_category_seq"`
	SequenceNo     int               `gorm:"uniqueIndex:idx_document_category_seq"`
	Note           string
	Executor       string `gorm:"index"`
	Year           int
	AdminNote      string
	AttachmentName string
	AttachmentMime string `gorm:"size:255"`
	AttachmentSize int64
	IssuanceName   string
	IssuanceMime   string `gorm:"size:255"`
	IssuanceSize   int64
	AuthorEmail    string    `gorm:"size:255"`
	CreatedAt      time.Time `gorm:"index"`
}

func (Document) TableName() string {
	return "document"
}

// HasAttachment returns true if the record carries a primary attachment
func (d *Document) HasAttachment() bool {
	return d.AttachmentName != ""
}

// HasIssuance returns true if the record carries an issuance attachment
func (d *Document) HasIssuance() bool {
	return d.IssuanceName != ""
}
