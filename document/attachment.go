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

package document

// File is an opaque handle to an uploaded file as received from the caller.
// Size is carried separately from Bytes so validation can decide without
// reading the full content.
type File struct {
	Name     string
	MimeType string
	Size     int64
	Bytes    []byte
}

// Submission describes a new document record before it is persisted. The
// sequence number is allocated by the store, never supplied by the caller.
type Submission struct {
	Category   Category
	Note       string
	Executor   string
	Year       int
	Attachment *File // primary attachment, validated per category
	Issuance   *File // issued/promulgated version, always PDF
}

// Patch describes a partial update to a document record. Nil fields are left
// untouched. CreatedAt, AuthorEmail, Category and SequenceNo are not
// patchable.
type Patch struct {
	Note      *string
	Executor  *string
	Year      *int
	AdminNote *string // admin role only
	// Attachment replaces the primary attachment; it is re-validated
	// against the record's category before anything is written
	Attachment *File
}
