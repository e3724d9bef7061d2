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
	"errors"
	"fmt"

	"github.com/blinklabs-io/docstore/database/models"
	"github.com/blinklabs-io/docstore/database/types"
	"github.com/blinklabs-io/docstore/document"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxSequenceRetries bounds how often an insert is reattempted after a lost
// allocation race or a transient storage lock before giving up
const maxSequenceRetries = 2

// Blob key prefixes for the two attachment slots of a record
const (
	blobKeyPrefixAttachment = "att/"
	blobKeyPrefixIssuance   = "iss/"
)

func AttachmentBlobKey(id string) []byte {
	return []byte(blobKeyPrefixAttachment + id)
}

func IssuanceBlobKey(id string) []byte {
	return []byte(blobKeyPrefixIssuance + id)
}

// InsertDocument persists a new document record and its attachment content.
// The sequence number is drawn from the category's persistent counter inside
// the same transaction as the insert, so numbers only ever move forward and
// are never reissued after a deletion. A lost allocation race surfaces as a
// uniqueness violation and is retried with a fresh number. The record's
// SequenceNo, ID and CreatedAt are filled in on success.
func (d *Database) InsertDocument(
	doc *models.Document,
	attachment *document.File,
	issuance *document.File,
) error {
	if !doc.Category.Valid() {
		return fmt.Errorf("invalid category: %q", doc.Category)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	// Attachment metadata columns are derived here so that presence of the
	// metadata and presence of the blob can never disagree
	if attachment != nil {
		doc.AttachmentName = attachment.Name
		doc.AttachmentMime = attachment.MimeType
		doc.AttachmentSize = attachment.Size
	}
	if issuance != nil {
		doc.IssuanceName = issuance.Name
		doc.IssuanceMime = issuance.MimeType
		doc.IssuanceSize = issuance.Size
	}
	for attempt := 0; ; attempt++ {
		err := d.insertDocumentOnce(doc, attachment, issuance)
		if err == nil {
			if d.metrics != nil {
				d.metrics.inserts.
					WithLabelValues(string(doc.Category)).
					Inc()
				if attachment != nil {
					d.metrics.attachmentBytes.
						Add(float64(len(attachment.Bytes)))
				}
				if issuance != nil {
					d.metrics.attachmentBytes.
						Add(float64(len(issuance.Bytes)))
				}
			}
			return nil
		}
		if types.IsQuotaError(err) {
			if d.metrics != nil {
				d.metrics.quotaFailures.Inc()
			}
			return fmt.Errorf("%w: %w", types.ErrQuotaExceeded, err)
		}
		isConflict := types.IsDuplicateKeyError(err) ||
			errors.Is(err, gorm.ErrDuplicatedKey)
		isLocked := types.IsLockedError(err)
		if !isConflict && !isLocked {
			return err
		}
		// Lost the allocation race or hit a transient lock; retry with a
		// fresh transaction
		if attempt >= maxSequenceRetries {
			if isLocked {
				return fmt.Errorf("%w: %w", types.ErrStoreBusy, err)
			}
			if d.metrics != nil {
				d.metrics.sequenceConflicts.Inc()
			}
			return fmt.Errorf("%w: %w", types.ErrSequenceConflict, err)
		}
		if d.metrics != nil {
			d.metrics.sequenceRetries.Inc()
		}
		d.logger.Debug(
			"insert retry",
			"component", "database",
			"category", doc.Category,
			"locked", isLocked,
			"attempt", attempt+1,
		)
	}
}

func (d *Database) insertDocumentOnce(
	doc *models.Document,
	attachment *document.File,
	issuance *document.File,
) error {
	txn := d.Transaction(true)
	defer txn.Release()

	seq, err := d.metadata.AllocateSequenceNo(doc.Category, txn.Metadata())
	if err != nil {
		return err
	}
	doc.SequenceNo = seq

	if err := d.metadata.CreateDocument(doc, txn.Metadata()); err != nil {
		return err
	}
	if attachment != nil {
		if err := d.blob.Set(
			txn.Blob(),
			AttachmentBlobKey(doc.ID),
			attachment.Bytes,
		); err != nil {
			return err
		}
	}
	if issuance != nil {
		if err := d.blob.Set(
			txn.Blob(),
			IssuanceBlobKey(doc.ID),
			issuance.Bytes,
		); err != nil {
			return err
		}
	}
	return txn.Commit()
}

// GetDocument returns a document record by ID
func (d *Database) GetDocument(id string) (*models.Document, error) {
	doc, err := d.metadata.GetDocument(id, nil)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, types.ErrNotFound
	}
	return doc, nil
}

// GetDocuments lists document records for a category (empty category matches
// all) in the requested order
func (d *Database) GetDocuments(
	category document.Category,
	order types.DocumentOrder,
) ([]models.Document, error) {
	return d.metadata.GetDocuments(category, order, nil)
}

// GetAttachment returns the primary attachment content of a record
func (d *Database) GetAttachment(id string) ([]byte, error) {
	return d.getBlob(id, AttachmentBlobKey(id))
}

// GetIssuanceAttachment returns the issuance attachment content of a record
func (d *Database) GetIssuanceAttachment(id string) ([]byte, error) {
	return d.getBlob(id, IssuanceBlobKey(id))
}

func (d *Database) getBlob(id string, key []byte) ([]byte, error) {
	// Confirm the record exists first so an unknown ID and a record
	// without the attachment both report cleanly
	if _, err := d.GetDocument(id); err != nil {
		return nil, err
	}
	txn := d.Transaction(false)
	defer txn.Release()
	ret, err := d.blob.Get(txn.Blob(), key)
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return ret, nil
}

// UpdateDocument applies a partial update to a record, optionally replacing
// the primary attachment content in the same transaction. Immutable fields
// (ID, category, sequence number, author, creation time) are not accepted.
// The whole mutation lands or none of it does. Validation of a replacement
// attachment is the caller's responsibility.
func (d *Database) UpdateDocument(
	id string,
	updates map[string]any,
	attachment *document.File,
) (*models.Document, error) {
	if len(updates) == 0 && attachment == nil {
		return d.GetDocument(id)
	}
	txn := d.Transaction(true)
	defer txn.Release()

	existing, err := d.metadata.GetDocument(id, txn.Metadata())
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, types.ErrNotFound
	}
	if attachment != nil {
		if updates == nil {
			updates = map[string]any{}
		}
		updates["attachment_name"] = attachment.Name
		updates["attachment_mime"] = attachment.MimeType
		updates["attachment_size"] = attachment.Size
	}
	if err := d.metadata.UpdateDocument(id, updates, txn.Metadata()); err != nil {
		if types.IsQuotaError(err) {
			return nil, fmt.Errorf("%w: %w", types.ErrQuotaExceeded, err)
		}
		return nil, err
	}
	if attachment != nil {
		if err := d.blob.Set(
			txn.Blob(),
			AttachmentBlobKey(id),
			attachment.Bytes,
		); err != nil {
			return nil, err
		}
	}
	updated, err := d.metadata.GetDocument(id, txn.Metadata())
	if err != nil {
		return nil, err
	}
	if err := txn.Commit(); err != nil {
		if types.IsQuotaError(err) {
			return nil, fmt.Errorf("%w: %w", types.ErrQuotaExceeded, err)
		}
		return nil, err
	}
	if attachment != nil && d.metrics != nil {
		d.metrics.attachmentBytes.Add(float64(len(attachment.Bytes)))
	}
	return updated, nil
}

// SetIssuanceAttachment attaches (or replaces) the issued version of a
// record. Validation of the file is the caller's responsibility.
func (d *Database) SetIssuanceAttachment(
	id string,
	file *document.File,
) error {
	txn := d.Transaction(true)
	defer txn.Release()

	existing, err := d.metadata.GetDocument(id, txn.Metadata())
	if err != nil {
		return err
	}
	if existing == nil {
		return types.ErrNotFound
	}
	updates := map[string]any{
		"issuance_name": file.Name,
		"issuance_mime": file.MimeType,
		"issuance_size": file.Size,
	}
	if err := d.metadata.UpdateDocument(id, updates, txn.Metadata()); err != nil {
		return err
	}
	if err := d.blob.Set(txn.Blob(), IssuanceBlobKey(id), file.Bytes); err != nil {
		return err
	}
	if err := txn.Commit(); err != nil {
		if types.IsQuotaError(err) {
			if d.metrics != nil {
				d.metrics.quotaFailures.Inc()
			}
			return fmt.Errorf("%w: %w", types.ErrQuotaExceeded, err)
		}
		return err
	}
	if d.metrics != nil {
		d.metrics.attachmentBytes.Add(float64(len(file.Bytes)))
	}
	return nil
}

// DeleteIssuanceAttachment clears only the issuance attachment of a record,
// leaving the rest of the record intact
func (d *Database) DeleteIssuanceAttachment(id string) error {
	txn := d.Transaction(true)
	defer txn.Release()

	existing, err := d.metadata.GetDocument(id, txn.Metadata())
	if err != nil {
		return err
	}
	if existing == nil {
		return types.ErrNotFound
	}
	updates := map[string]any{
		"issuance_name": "",
		"issuance_mime": "",
		"issuance_size": int64(0),
	}
	if err := d.metadata.UpdateDocument(id, updates, txn.Metadata()); err != nil {
		return err
	}
	if existing.HasIssuance() {
		if err := d.blob.Delete(txn.Blob(), IssuanceBlobKey(id)); err != nil {
			return err
		}
	}
	if err := txn.Commit(); err != nil {
		return err
	}
	if d.metrics != nil {
		d.metrics.issuanceDeletions.Inc()
	}
	return nil
}

// DeleteDocument removes a record and all of its attachment content. The
// category's sequence counter is untouched, so the deleted record's number
// stays retired forever.
func (d *Database) DeleteDocument(id string) error {
	txn := d.Transaction(true)
	defer txn.Release()

	existing, err := d.metadata.GetDocument(id, txn.Metadata())
	if err != nil {
		return err
	}
	if existing == nil {
		return types.ErrNotFound
	}
	if err := d.metadata.DeleteDocument(id, txn.Metadata()); err != nil {
		return err
	}
	if existing.HasAttachment() {
		if err := d.blob.Delete(txn.Blob(), AttachmentBlobKey(id)); err != nil {
			return err
		}
	}
	if existing.HasIssuance() {
		if err := d.blob.Delete(txn.Blob(), IssuanceBlobKey(id)); err != nil {
			return err
		}
	}
	if err := txn.Commit(); err != nil {
		return err
	}
	if d.metrics != nil {
		d.metrics.deletes.WithLabelValues(string(existing.Category)).Inc()
	}
	return nil
}

// CountDocuments returns the number of records per category
func (d *Database) CountDocuments() (map[document.Category]int64, error) {
	return d.metadata.CountDocuments(nil)
}
