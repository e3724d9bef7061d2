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

package types

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by operations on an unknown record ID
var ErrNotFound = errors.New("record not found")

// ErrQuotaExceeded is returned when the storage engine reports capacity
// exhaustion. Distinct from ErrNotFound and validation failures so callers
// can suggest pruning old records.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrSequenceConflict is returned when sequence allocation retries are
// exhausted due to concurrent submissions in the same category
var ErrSequenceConflict = errors.New("sequence number allocation conflict")

// ErrStoreBusy is returned when the storage engine stays locked by a
// concurrent writer past the retry budget. The operation is safe to retry.
var ErrStoreBusy = errors.New("store busy")

// ErrBlobKeyNotFound is returned by blob operations when a key is missing
var ErrBlobKeyNotFound = errors.New("blob key not found")

// ErrTxnWrongType is returned when a transaction has the wrong type
var ErrTxnWrongType = errors.New("invalid transaction type")

// ErrNilTxn is returned when a nil transaction is provided where a valid transaction is required
var ErrNilTxn = errors.New("nil transaction")

// ErrNoStoreAvailable is returned when no blob or metadata store is available
var ErrNoStoreAvailable = errors.New("no store available")

// DocumentOrder selects the read ordering for document listings
type DocumentOrder int

const (
	// OrderNewestFirst is the canonical browse order (created_at descending)
	OrderNewestFirst DocumentOrder = iota
	// OrderBySequence is ascending numeric sequence, used for export
	OrderBySequence
)

// Txn is a simple transaction handle for commit/rollback only.
// The database layer coordinates metadata and blob transactions separately.
type Txn interface {
	Commit() error
	Rollback() error
}

// IsDuplicateKeyError returns true if the error is a uniqueness constraint
// violation. The sqlite driver does not always translate constraint errors
// to gorm's sentinel, so we also match on the engine's message.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsQuotaError returns true if the error indicates storage capacity
// exhaustion (SQLITE_FULL or a badger transaction exceeding its size limits)
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database or disk is full") ||
		strings.Contains(msg, "Txn is too big")
}

// IsLockedError returns true if the error is a transient SQLITE_BUSY or
// SQLITE_LOCKED condition from a concurrent writer. Such operations are
// safe to retry.
func IsLockedError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
