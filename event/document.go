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

package event

import (
	"github.com/blinklabs-io/docstore/document"
)

const (
	DocumentSubmittedEventType EventType = "document.submitted"
	DocumentUpdatedEventType   EventType = "document.updated"
	DocumentDeletedEventType   EventType = "document.deleted"
	IssuanceSetEventType       EventType = "document.issuance-set"
	IssuanceClearedEventType   EventType = "document.issuance-cleared"
)

// DocumentEvent carries the identity of the record an archive mutation
// touched. Attachment content is never carried on the bus.
type DocumentEvent struct {
	Id          string
	Category    document.Category
	SequenceNo  int
	AuthorEmail string
}
