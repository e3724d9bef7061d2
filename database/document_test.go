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

package database_test

import (
	"sync"
	"testing"

	"github.com/blinklabs-io/docstore/database"
	"github.com/blinklabs-io/docstore/database/models"
	"github.com/blinklabs-io/docstore/database/types"
	"github.com/blinklabs-io/docstore/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func testFile(name, mime string, content []byte) *document.File {
	return &document.File{
		Name:     name,
		MimeType: mime,
		Size:     int64(len(content)),
		Bytes:    content,
	}
}

func TestInsertDocumentRoundTrip(t *testing.T) {
	db := testDatabase(t)
	content := []byte("attachment content")
	doc := &models.Document{
		Category:    document.CategoryProposal,
		Note:        "quarterly supplies",
		Executor:    "Nguyen Van A",
		Year:        2025,
		AuthorEmail: "author@example.com",
	}
	err := db.InsertDocument(
		doc,
		testFile("proposal.docx", "application/msword", content),
		nil,
	)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, 1, doc.SequenceNo)

	fetched, err := db.GetDocument(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Note, fetched.Note)
	assert.Equal(t, "proposal.docx", fetched.AttachmentName)
	assert.True(t, fetched.HasAttachment())
	assert.False(t, fetched.HasIssuance())

	blob, err := db.GetAttachment(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, content, blob)
}

func TestInsertDocumentSequencePerCategory(t *testing.T) {
	db := testDatabase(t)
	for i := 1; i <= 3; i++ {
		doc := &models.Document{Category: document.CategoryDecision}
		require.NoError(t, db.InsertDocument(doc, nil, nil))
		assert.Equal(t, i, doc.SequenceNo)
	}
	// Another category starts its own sequence
	doc := &models.Document{Category: document.CategoryReport}
	require.NoError(t, db.InsertDocument(doc, nil, nil))
	assert.Equal(t, 1, doc.SequenceNo)
}

func TestInsertDocumentConcurrentUniqueness(t *testing.T) {
	db := testDatabase(t)
	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	docs := make([]*models.Document, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			docs[i] = &models.Document{Category: document.CategoryAward}
			errs[i] = db.InsertDocument(docs[i], nil, nil)
		}()
	}
	wg.Wait()
	// Losing writers may error out, but no two winners may share a number
	seen := map[int]bool{}
	var succeeded int
	for i := range workers {
		if errs[i] != nil {
			continue
		}
		succeeded++
		assert.False(
			t,
			seen[docs[i].SequenceNo],
			"duplicate sequence %d",
			docs[i].SequenceNo,
		)
		seen[docs[i].SequenceNo] = true
	}
	assert.Greater(t, succeeded, 0)
}

func TestGetDocumentNotFound(t *testing.T) {
	db := testDatabase(t)
	_, err := db.GetDocument("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = db.GetAttachment("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetAttachmentAbsent(t *testing.T) {
	db := testDatabase(t)
	doc := &models.Document{Category: document.CategoryProposal}
	require.NoError(t, db.InsertDocument(doc, nil, nil))
	_, err := db.GetAttachment(doc.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdateDocument(t *testing.T) {
	db := testDatabase(t)
	doc := &models.Document{
		Category: document.CategoryProposal,
		Note:     "original",
	}
	require.NoError(t, db.InsertDocument(doc, nil, nil))

	updated, err := db.UpdateDocument(doc.ID, map[string]any{
		"note": "revised",
		"year": 2026,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Note)
	assert.Equal(t, 2026, updated.Year)
	assert.Equal(t, doc.SequenceNo, updated.SequenceNo)

	_, err = db.UpdateDocument("missing", map[string]any{"note": "x"}, nil)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdateDocumentReplaceAttachment(t *testing.T) {
	db := testDatabase(t)
	doc := &models.Document{Category: document.CategoryProposal}
	require.NoError(t, db.InsertDocument(
		doc,
		testFile("v1.docx", "application/msword", []byte("first draft")),
		nil,
	))

	replacement := testFile("v2.docx", "application/msword", []byte("second draft"))
	updated, err := db.UpdateDocument(doc.ID, nil, replacement)
	require.NoError(t, err)
	assert.Equal(t, "v2.docx", updated.AttachmentName)
	assert.Equal(t, replacement.Size, updated.AttachmentSize)

	// Blob content is overwritten in the same transaction
	blob, err := db.GetAttachment(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("second draft"), blob)
}

func TestIssuanceAttachmentLifecycle(t *testing.T) {
	db := testDatabase(t)
	attContent := []byte("draft bytes")
	issContent := []byte("issued bytes")
	doc := &models.Document{Category: document.CategoryDecision}
	require.NoError(t, db.InsertDocument(
		doc,
		testFile("draft.docx", "application/msword", attContent),
		nil,
	))

	err := db.SetIssuanceAttachment(
		doc.ID,
		testFile("issued.pdf", "application/pdf", issContent),
	)
	require.NoError(t, err)

	fetched, err := db.GetDocument(doc.ID)
	require.NoError(t, err)
	assert.True(t, fetched.HasIssuance())
	assert.Equal(t, "issued.pdf", fetched.IssuanceName)

	blob, err := db.GetIssuanceAttachment(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, issContent, blob)

	// Removing the issuance leaves the primary attachment alone
	require.NoError(t, db.DeleteIssuanceAttachment(doc.ID))
	fetched, err = db.GetDocument(doc.ID)
	require.NoError(t, err)
	assert.False(t, fetched.HasIssuance())
	assert.True(t, fetched.HasAttachment())
	_, err = db.GetIssuanceAttachment(doc.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	blob, err = db.GetAttachment(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, attContent, blob)

	assert.ErrorIs(
		t,
		db.SetIssuanceAttachment(
			"missing",
			testFile("issued.pdf", "application/pdf", issContent),
		),
		types.ErrNotFound,
	)
}

func TestDeleteDocument(t *testing.T) {
	db := testDatabase(t)
	doc := &models.Document{Category: document.CategoryReport}
	require.NoError(t, db.InsertDocument(
		doc,
		testFile("report.doc", "application/msword", []byte("abc")),
		nil,
	))
	require.NoError(t, db.DeleteDocument(doc.ID))
	_, err := db.GetDocument(doc.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, db.DeleteDocument(doc.ID), types.ErrNotFound)

	// A deleted record's number stays retired, even when it held the
	// category's highest number
	next := &models.Document{Category: document.CategoryReport}
	require.NoError(t, db.InsertDocument(next, nil, nil))
	assert.Equal(t, doc.SequenceNo+1, next.SequenceNo)
}

func TestSequenceNotReusedAfterDelete(t *testing.T) {
	db := testDatabase(t)
	first := &models.Document{Category: document.CategoryDecision}
	require.NoError(t, db.InsertDocument(first, nil, nil))
	second := &models.Document{Category: document.CategoryDecision}
	require.NoError(t, db.InsertDocument(second, nil, nil))
	require.Equal(t, 2, second.SequenceNo)

	require.NoError(t, db.DeleteDocument(second.ID))

	// The next insert must not collide with the deleted record's number
	third := &models.Document{Category: document.CategoryDecision}
	require.NoError(t, db.InsertDocument(third, nil, nil))
	assert.Equal(t, 3, third.SequenceNo)

	// Other categories keep their own independent counters
	other := &models.Document{Category: document.CategoryProposal}
	require.NoError(t, db.InsertDocument(other, nil, nil))
	assert.Equal(t, 1, other.SequenceNo)
}

func TestCountDocuments(t *testing.T) {
	db := testDatabase(t)
	for range 2 {
		require.NoError(
			t,
			db.InsertDocument(
				&models.Document{Category: document.CategoryProposal},
				nil,
				nil,
			),
		)
	}
	require.NoError(
		t,
		db.InsertDocument(
			&models.Document{Category: document.CategoryAward},
			nil,
			nil,
		),
	)
	counts, err := db.CountDocuments()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[document.CategoryProposal])
	assert.Equal(t, int64(1), counts[document.CategoryAward])
}
