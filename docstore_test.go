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

package docstore_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/blinklabs-io/docstore"
	"github.com/blinklabs-io/docstore/access"
	"github.com/blinklabs-io/docstore/archive"
	"github.com/blinklabs-io/docstore/database/models"
	"github.com/blinklabs-io/docstore/database/types"
	"github.com/blinklabs-io/docstore/document"
	"github.com/blinklabs-io/docstore/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	adminUser = &access.User{
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	}
	clerkUser = &access.User{
		Email: "clerk@example.com",
		Role:  models.RoleClient,
	}
)

func testStore(t *testing.T) *docstore.Docstore {
	t.Helper()
	store, err := docstore.New(&docstore.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	require.NoError(t, store.Database().SetUserPermission(
		&models.UserPermission{
			Email:       adminUser.Email,
			DisplayName: "Admin",
			Role:        models.RoleAdmin,
		},
	))
	require.NoError(t, store.Database().SetUserPermission(
		&models.UserPermission{
			Email:       clerkUser.Email,
			DisplayName: "Clerk",
			Role:        models.RoleClient,
		},
	))
	return store
}

func wordFile(name string, content []byte) *document.File {
	return &document.File{
		Name:     name,
		MimeType: "application/msword",
		Size:     int64(len(content)),
		Bytes:    content,
	}
}

func pdfFile(name string, content []byte) *document.File {
	return &document.File{
		Name:     name,
		MimeType: "application/pdf",
		Size:     int64(len(content)),
		Bytes:    content,
	}
}

func TestSubmitRoundTrip(t *testing.T) {
	store := testStore(t)
	content := []byte("proposal body")
	doc, err := store.Submit(clerkUser, document.Submission{
		Category:   document.CategoryProposal,
		Note:       "office supplies",
		Executor:   "Nguyen Van A",
		Year:       2025,
		Attachment: wordFile("proposal.docx", content),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, doc.SequenceNo)
	assert.Equal(t, clerkUser.Email, doc.AuthorEmail)

	fetched, err := store.Document(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "office supplies", fetched.Note)

	blob, err := store.Attachment(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, content, blob)

	// Submitting records the executor for later suggestions
	names, err := store.Executors()
	require.NoError(t, err)
	assert.Contains(t, names, "Nguyen Van A")
}

func TestSubmitValidation(t *testing.T) {
	store := testStore(t)
	// PDF is reserved for promulgation records
	_, err := store.Submit(clerkUser, document.Submission{
		Category:   document.CategoryProposal,
		Attachment: pdfFile("wrong.pdf", []byte("x")),
	})
	assert.ErrorIs(t, err, docstore.ErrValidationFailed)
	// And promulgation takes nothing else
	_, err = store.Submit(clerkUser, document.Submission{
		Category:   document.CategoryPromulgation,
		Attachment: wordFile("wrong.docx", []byte("x")),
	})
	assert.ErrorIs(t, err, docstore.ErrValidationFailed)
	_, err = store.Submit(clerkUser, document.Submission{
		Category:   document.CategoryPromulgation,
		Attachment: pdfFile("right.pdf", []byte("x")),
	})
	assert.NoError(t, err)
}

func TestSubmitPermission(t *testing.T) {
	store := testStore(t)
	// Unknown and unauthenticated users cannot write
	_, err := store.Submit(
		&access.User{Email: "stranger@example.com"},
		document.Submission{Category: document.CategoryProposal},
	)
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)
	_, err = store.Submit(nil, document.Submission{
		Category: document.CategoryProposal,
	})
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)

	// Revoking the save flag blocks a previously recorded user
	require.NoError(
		t,
		store.SetAllowSave(adminUser, clerkUser.Email, false),
	)
	_, err = store.Submit(clerkUser, document.Submission{
		Category: document.CategoryProposal,
	})
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)
}

func TestUpdateAdminNote(t *testing.T) {
	store := testStore(t)
	doc, err := store.Submit(clerkUser, document.Submission{
		Category: document.CategoryDecision,
		Note:     "initial",
	})
	require.NoError(t, err)

	note := "revised"
	updated, err := store.Update(clerkUser, doc.ID, document.Patch{
		Note: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Note)
	assert.Equal(t, doc.SequenceNo, updated.SequenceNo)
	assert.Equal(t, doc.AuthorEmail, updated.AuthorEmail)

	// Admin note is reserved for admins
	adminNote := "needs follow-up"
	_, err = store.Update(clerkUser, doc.ID, document.Patch{
		AdminNote: &adminNote,
	})
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)
	updated, err = store.Update(adminUser, doc.ID, document.Patch{
		AdminNote: &adminNote,
	})
	require.NoError(t, err)
	assert.Equal(t, adminNote, updated.AdminNote)
}

func TestUpdateReplaceAttachment(t *testing.T) {
	store := testStore(t)
	doc, err := store.Submit(clerkUser, document.Submission{
		Category:   document.CategoryProposal,
		Attachment: wordFile("v1.docx", []byte("first")),
	})
	require.NoError(t, err)

	// A replacement is re-validated against the record's category
	_, err = store.Update(clerkUser, doc.ID, document.Patch{
		Attachment: pdfFile("wrong.pdf", []byte("nope")),
	})
	assert.ErrorIs(t, err, docstore.ErrValidationFailed)
	blob, err := store.Attachment(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), blob)

	updated, err := store.Update(clerkUser, doc.ID, document.Patch{
		Attachment: wordFile("v2.docx", []byte("second")),
	})
	require.NoError(t, err)
	assert.Equal(t, "v2.docx", updated.AttachmentName)
	blob, err = store.Attachment(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), blob)
}

func TestIssuanceFlow(t *testing.T) {
	store := testStore(t)
	doc, err := store.Submit(clerkUser, document.Submission{
		Category:   document.CategoryDecision,
		Attachment: wordFile("draft.docx", []byte("draft")),
	})
	require.NoError(t, err)

	// Issuance must be PDF regardless of the record's category
	err = store.SetIssuanceAttachment(
		clerkUser,
		doc.ID,
		wordFile("issued.docx", []byte("issued")),
	)
	assert.ErrorIs(t, err, docstore.ErrValidationFailed)

	require.NoError(t, store.SetIssuanceAttachment(
		clerkUser,
		doc.ID,
		pdfFile("issued.pdf", []byte("issued")),
	))
	blob, err := store.IssuanceAttachment(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("issued"), blob)

	// Clearing the issuance leaves the record and its draft intact
	require.NoError(t, store.DeleteIssuanceAttachment(clerkUser, doc.ID))
	fetched, err := store.Document(doc.ID)
	require.NoError(t, err)
	assert.False(t, fetched.HasIssuance())
	assert.True(t, fetched.HasAttachment())
}

func TestDeleteAdminOnly(t *testing.T) {
	store := testStore(t)
	doc, err := store.Submit(clerkUser, document.Submission{
		Category: document.CategoryReport,
	})
	require.NoError(t, err)
	assert.ErrorIs(
		t,
		store.Delete(clerkUser, doc.ID),
		docstore.ErrPermissionDenied,
	)
	require.NoError(t, store.Delete(adminUser, doc.ID))
	_, err = store.Document(doc.ID)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestCanLoginAsymmetry(t *testing.T) {
	store := testStore(t)
	// Role defaults: admins in, clients out
	ok, err := store.CanLogin(adminUser)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.CanLogin(clerkUser)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(
		t,
		store.SetAllowLogin(adminUser, clerkUser.Email, true),
	)
	ok, err = store.CanLogin(clerkUser)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArchiveAndExport(t *testing.T) {
	store := testStore(t)
	for _, note := range []string{"one", "two", "three"} {
		_, err := store.Submit(clerkUser, document.Submission{
			Category: document.CategoryAward,
			Note:     note,
			Executor: "Tran Thi B",
		})
		require.NoError(t, err)
	}
	summaries, err := store.Archive().List(
		document.CategoryAward,
		archive.Filter{Executor: "tran"},
		types.OrderNewestFirst,
	)
	require.NoError(t, err)
	assert.Len(t, summaries, 3)

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[document.CategoryAward])

	var buf bytes.Buffer
	require.NoError(t, store.Export(&buf))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(document.CategoryAward.Label())
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "one", rows[1][1])

	assert.Contains(t, store.ExportFilename(), "Documents_")
}

func TestSubmitPublishesEvent(t *testing.T) {
	store := testStore(t)
	_, evtCh := store.EventBus().Subscribe(event.DocumentSubmittedEventType)
	doc, err := store.Submit(clerkUser, document.Submission{
		Category: document.CategoryProposal,
	})
	require.NoError(t, err)
	select {
	case evt := <-evtCh:
		data, ok := evt.Data.(event.DocumentEvent)
		require.True(t, ok)
		assert.Equal(t, doc.ID, data.Id)
		assert.Equal(t, doc.SequenceNo, data.SequenceNo)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for submit event")
	}
}

func TestPermissionsListing(t *testing.T) {
	store := testStore(t)
	_, err := store.Permissions(clerkUser)
	assert.ErrorIs(t, err, docstore.ErrPermissionDenied)
	perms, err := store.Permissions(adminUser)
	require.NoError(t, err)
	assert.Len(t, perms, 2)
}
