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

// Package archive builds filtered, sorted projections over stored document
// records for browsing and reporting. It holds no state of its own; every
// call reads the store fresh.
package archive

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/blinklabs-io/docstore/database/models"
	"github.com/blinklabs-io/docstore/database/types"
	"github.com/blinklabs-io/docstore/document"
)

// DocumentReader is the slice of the database the view reads from
type DocumentReader interface {
	GetDocuments(
		category document.Category,
		order types.DocumentOrder,
	) ([]models.Document, error)
	CountDocuments() (map[document.Category]int64, error)
}

// Filter narrows a listing. The zero value matches everything in the
// requested category (or all categories when Category is empty).
type Filter struct {
	// SequenceText matches the sequence number by normalized text
	// equality, so "07" only matches a record whose number renders
	// as "07" after trimming
	SequenceText string
	// Executor matches case-insensitively as a substring
	Executor string
}

// Summary is one row of a listing
type Summary struct {
	ID             string
	Category       document.Category
	SequenceNo     int
	Note           string
	Executor       string
	Year           int
	AdminNote      string
	AttachmentName string
	IssuanceName   string
	AuthorEmail    string
	CreatedAt      time.Time
}

// ExecutorCount is one entry of the per-executor aggregate
type ExecutorCount struct {
	Executor string
	Count    int
}

// View projects document records into display and report shapes
type View struct {
	reader DocumentReader
}

func NewView(reader DocumentReader) *View {
	return &View{reader: reader}
}

// List returns record summaries for a category (empty category matches all)
// with the filter applied. Browsing order is newest first; OrderBySequence
// switches to ascending sequence number for reporting.
func (v *View) List(
	category document.Category,
	filter Filter,
	order types.DocumentOrder,
) ([]Summary, error) {
	docs, err := v.reader.GetDocuments(category, order)
	if err != nil {
		return nil, err
	}
	ret := make([]Summary, 0, len(docs))
	for _, doc := range docs {
		if !filter.matches(&doc) {
			continue
		}
		ret = append(ret, Summary{
			ID:             doc.ID,
			Category:       doc.Category,
			SequenceNo:     doc.SequenceNo,
			Note:           doc.Note,
			Executor:       doc.Executor,
			Year:           doc.Year,
			AdminNote:      doc.AdminNote,
			AttachmentName: doc.AttachmentName,
			IssuanceName:   doc.IssuanceName,
			AuthorEmail:    doc.AuthorEmail,
			CreatedAt:      doc.CreatedAt,
		})
	}
	return ret, nil
}

// ExecutorCounts aggregates the filtered view by executor, most frequent
// first. Ties break alphabetically so the output is stable.
func (v *View) ExecutorCounts(
	category document.Category,
	filter Filter,
) ([]ExecutorCount, error) {
	summaries, err := v.List(category, filter, types.OrderNewestFirst)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, summary := range summaries {
		// Records without an executor are left out of the aggregate
		if summary.Executor == "" {
			continue
		}
		counts[summary.Executor]++
	}
	ret := make([]ExecutorCount, 0, len(counts))
	for executor, count := range counts {
		ret = append(ret, ExecutorCount{Executor: executor, Count: count})
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Count != ret[j].Count {
			return ret[i].Count > ret[j].Count
		}
		return ret[i].Executor < ret[j].Executor
	})
	return ret, nil
}

// Counts returns the number of records per category
func (v *View) Counts() (map[document.Category]int64, error) {
	return v.reader.CountDocuments()
}

func (f Filter) matches(doc *models.Document) bool {
	if f.SequenceText != "" {
		want := strings.TrimSpace(f.SequenceText)
		if want != strconv.Itoa(doc.SequenceNo) {
			return false
		}
	}
	if f.Executor != "" {
		if !strings.Contains(
			strings.ToLower(doc.Executor),
			strings.ToLower(f.Executor),
		) {
			return false
		}
	}
	return true
}
