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

// Package docstore is a document archive with typed records, validated
// binary attachments and collision-free per-category sequence numbers.
// Writes pass through attachment validation and a permission gate before
// landing in durable storage; reads come back through filtered archive
// views and a spreadsheet export.
package docstore

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/docstore/access"
	"github.com/blinklabs-io/docstore/archive"
	"github.com/blinklabs-io/docstore/database"
	"github.com/blinklabs-io/docstore/database/models"
	"github.com/blinklabs-io/docstore/database/types"
	"github.com/blinklabs-io/docstore/document"
	"github.com/blinklabs-io/docstore/event"
	"github.com/blinklabs-io/docstore/export"
	"github.com/blinklabs-io/docstore/internal/config"
	"github.com/prometheus/client_golang/prometheus"
)

// Typed error kinds surfaced by the store. Callers match with errors.Is.
var (
	ErrValidationFailed = document.ErrValidationFailed
	ErrPermissionDenied = access.ErrPermissionDenied
	ErrNotFound         = types.ErrNotFound
	ErrQuotaExceeded    = types.ErrQuotaExceeded
	ErrSequenceConflict = types.ErrSequenceConflict
)

type Config struct {
	// Logger defaults to a discarding slog handler
	Logger *slog.Logger
	// PromRegistry enables metrics registration when set
	PromRegistry prometheus.Registerer
	// DataDir holds the durable stores; empty means in-memory only
	DataDir        string
	BlobPlugin     string
	MetadataPlugin string
}

// Docstore ties the attachment validator, permission gate, document store,
// archive view and export projector together behind one surface
type Docstore struct {
	logger    *slog.Logger
	db        *database.Database
	gate      *access.Gate
	view      *archive.View
	projector *export.Projector
	eventBus  *event.EventBus
}

// New opens (or creates) the document store described by cfg
func New(cfg *Config) (*Docstore, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	db, err := database.New(&database.Config{
		Logger:         logger,
		PromRegistry:   cfg.PromRegistry,
		DataDir:        cfg.DataDir,
		BlobPlugin:     cfg.BlobPlugin,
		MetadataPlugin: cfg.MetadataPlugin,
	})
	if err != nil {
		return nil, err
	}
	view := archive.NewView(db)
	return &Docstore{
		logger:    logger,
		db:        db,
		gate:      access.NewGate(db),
		view:      view,
		projector: export.NewProjector(view),
		eventBus:  event.NewEventBus(cfg.PromRegistry, logger),
	}, nil
}

// NewFromConfigFile opens a store configured from an optional YAML file
// plus environment variables
func NewFromConfigFile(path string) (*Docstore, error) {
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(&Config{
		DataDir:        fileCfg.DataDir,
		BlobPlugin:     fileCfg.BlobPlugin,
		MetadataPlugin: fileCfg.MetadataPlugin,
	})
}

// Close releases the underlying stores and stops event delivery
func (d *Docstore) Close() error {
	d.eventBus.Stop()
	return d.db.Close()
}

// EventBus exposes the archive's lifecycle event bus
func (d *Docstore) EventBus() *event.EventBus {
	return d.eventBus
}

func (d *Docstore) publishDocumentEvent(
	eventType event.EventType,
	doc *models.Document,
) {
	d.eventBus.Publish(eventType, event.NewEvent(eventType, event.DocumentEvent{
		Id:          doc.ID,
		Category:    doc.Category,
		SequenceNo:  doc.SequenceNo,
		AuthorEmail: doc.AuthorEmail,
	}))
}

// Database exposes the underlying database for advanced callers
func (d *Docstore) Database() *database.Database {
	return d.db
}

// Submit validates and persists a new document record. The record's
// sequence number is allocated by the store; callers never choose it.
func (d *Docstore) Submit(
	user *access.User,
	sub document.Submission,
) (*models.Document, error) {
	if !sub.Category.Valid() {
		return nil, &document.ValidationError{
			Rule:   document.RuleFileType,
			Detail: fmt.Sprintf("unknown category %q", sub.Category),
		}
	}
	if err := document.ValidateAttachment(sub.Category, sub.Attachment); err != nil {
		return nil, err
	}
	if err := document.ValidateIssuance(sub.Issuance); err != nil {
		return nil, err
	}
	if err := d.gate.AuthorizeSave(user); err != nil {
		return nil, err
	}
	doc := &models.Document{
		Category:    sub.Category,
		Note:        sub.Note,
		Executor:    sub.Executor,
		Year:        sub.Year,
		AuthorEmail: user.Email,
	}
	if err := d.db.InsertDocument(doc, sub.Attachment, sub.Issuance); err != nil {
		return nil, err
	}
	if sub.Executor != "" {
		// Suggestion bookkeeping never fails a submission
		if err := d.db.AddExecutor(sub.Executor); err != nil {
			d.logger.Warn(
				"failed to record executor suggestion",
				"component", "docstore",
				"error", err,
			)
		}
	}
	d.logger.Info(
		"document submitted",
		"component", "docstore",
		"category", doc.Category,
		"sequence_no", doc.SequenceNo,
		"id", doc.ID,
	)
	d.publishDocumentEvent(event.DocumentSubmittedEventType, doc)
	return doc, nil
}

// Document returns a single record by ID
func (d *Docstore) Document(id string) (*models.Document, error) {
	return d.db.GetDocument(id)
}

// Documents lists a category's records newest first. An empty category
// lists everything.
func (d *Docstore) Documents(
	category document.Category,
) ([]models.Document, error) {
	return d.db.GetDocuments(category, types.OrderNewestFirst)
}

// Update applies a partial edit to a record. A replacement attachment is
// re-validated against the record's category. The admin note field is
// reserved for admins; identity, category, sequence number and creation
// time are never editable.
func (d *Docstore) Update(
	user *access.User,
	id string,
	patch document.Patch,
) (*models.Document, error) {
	if err := d.gate.AuthorizeSave(user); err != nil {
		return nil, err
	}
	if patch.Attachment != nil {
		existing, err := d.db.GetDocument(id)
		if err != nil {
			return nil, err
		}
		if err := document.ValidateAttachment(
			existing.Category,
			patch.Attachment,
		); err != nil {
			return nil, err
		}
	}
	updates := map[string]any{}
	if patch.Note != nil {
		updates["note"] = *patch.Note
	}
	if patch.Executor != nil {
		updates["executor"] = *patch.Executor
	}
	if patch.Year != nil {
		updates["year"] = *patch.Year
	}
	if patch.AdminNote != nil {
		if err := d.requireAdmin(user); err != nil {
			return nil, err
		}
		updates["admin_note"] = *patch.AdminNote
	}
	updated, err := d.db.UpdateDocument(id, updates, patch.Attachment)
	if err != nil {
		return nil, err
	}
	d.publishDocumentEvent(event.DocumentUpdatedEventType, updated)
	return updated, nil
}

// SetIssuanceAttachment attaches the issued (always PDF) version to a
// record of any category
func (d *Docstore) SetIssuanceAttachment(
	user *access.User,
	id string,
	file *document.File,
) error {
	if file == nil {
		return &document.ValidationError{
			Rule:   document.RuleFileType,
			Detail: "issuance attachment required",
		}
	}
	if err := document.ValidateIssuance(file); err != nil {
		return err
	}
	if err := d.gate.AuthorizeSave(user); err != nil {
		return err
	}
	if err := d.db.SetIssuanceAttachment(id, file); err != nil {
		return err
	}
	if doc, err := d.db.GetDocument(id); err == nil {
		d.publishDocumentEvent(event.IssuanceSetEventType, doc)
	}
	return nil
}

// Delete removes a record and its attachments. Admin only.
func (d *Docstore) Delete(user *access.User, id string) error {
	if err := d.requireAdmin(user); err != nil {
		return err
	}
	doc, err := d.db.GetDocument(id)
	if err != nil {
		return err
	}
	if err := d.db.DeleteDocument(id); err != nil {
		return err
	}
	d.publishDocumentEvent(event.DocumentDeletedEventType, doc)
	return nil
}

// DeleteIssuanceAttachment clears only the issuance attachment of a record
func (d *Docstore) DeleteIssuanceAttachment(
	user *access.User,
	id string,
) error {
	if err := d.gate.AuthorizeSave(user); err != nil {
		return err
	}
	if err := d.db.DeleteIssuanceAttachment(id); err != nil {
		return err
	}
	if doc, err := d.db.GetDocument(id); err == nil {
		d.publishDocumentEvent(event.IssuanceClearedEventType, doc)
	}
	return nil
}

// Attachment returns the primary attachment content of a record
func (d *Docstore) Attachment(id string) ([]byte, error) {
	return d.db.GetAttachment(id)
}

// IssuanceAttachment returns the issuance attachment content of a record
func (d *Docstore) IssuanceAttachment(id string) ([]byte, error) {
	return d.db.GetIssuanceAttachment(id)
}

// Archive returns the read-only archive view for filtered listings
func (d *Docstore) Archive() *archive.View {
	return d.view
}

// Export writes the full archive as a multi-sheet spreadsheet to w
func (d *Docstore) Export(w io.Writer) error {
	return d.projector.ExportAll(w)
}

// ExportFilename returns the dated filename for an export produced now
func (d *Docstore) ExportFilename() string {
	return d.projector.Filename()
}

// Counts returns per-category record totals
func (d *Docstore) Counts() (map[document.Category]int64, error) {
	return d.db.CountDocuments()
}

// CanLogin reports whether the user may start a session
func (d *Docstore) CanLogin(user *access.User) (bool, error) {
	return d.gate.CanLogin(user)
}

// SetAllowSave toggles a user's write permission. Admin only.
func (d *Docstore) SetAllowSave(
	admin *access.User,
	email string,
	allow bool,
) error {
	if err := d.requireAdmin(admin); err != nil {
		return err
	}
	return d.db.SetAllowSave(email, allow)
}

// SetAllowLogin toggles a user's login permission. Admin only.
func (d *Docstore) SetAllowLogin(
	admin *access.User,
	email string,
	allow bool,
) error {
	if err := d.requireAdmin(admin); err != nil {
		return err
	}
	return d.db.SetAllowLogin(email, allow)
}

// Permissions lists all recorded user permissions. Admin only.
func (d *Docstore) Permissions(
	admin *access.User,
) ([]models.UserPermission, error) {
	if err := d.requireAdmin(admin); err != nil {
		return nil, err
	}
	return d.db.UserPermissions()
}

// Executors lists recorded executor names for input assistance
func (d *Docstore) Executors() ([]string, error) {
	return d.db.Executors()
}

// AddExecutor records an executor name suggestion
func (d *Docstore) AddExecutor(name string) error {
	return d.db.AddExecutor(name)
}

// RemoveExecutor removes an executor name suggestion. Admin only.
func (d *Docstore) RemoveExecutor(user *access.User, name string) error {
	if err := d.requireAdmin(user); err != nil {
		return err
	}
	return d.db.RemoveExecutor(name)
}

func (d *Docstore) requireAdmin(user *access.User) error {
	if user == nil {
		return ErrPermissionDenied
	}
	perm, err := d.db.UserPermission(user.Email)
	if err != nil {
		return err
	}
	if perm == nil || perm.Role != models.RoleAdmin {
		return ErrPermissionDenied
	}
	return nil
}
