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

package sqlite

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/docstore/database/models"
	"github.com/blinklabs-io/docstore/database/types"
	"github.com/blinklabs-io/docstore/document"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateDocument inserts a new document record. A uniqueness violation on
// (category, sequence_no) is returned to the caller as-is so the allocation
// retry loop can detect it.
func (d *MetadataStoreSqlite) CreateDocument(
	doc *models.Document,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	if result := db.Create(doc); result.Error != nil {
		return result.Error
	}
	return nil
}

// GetDocument gets a document record by ID. Returns nil without error when
// the ID is unknown.
func (d *MetadataStoreSqlite) GetDocument(
	id string,
	txn *gorm.DB,
) (*models.Document, error) {
	ret := &models.Document{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("id = ?", id).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// GetDocuments lists document records, optionally restricted to a category
// (empty category matches all), in the requested order
func (d *MetadataStoreSqlite) GetDocuments(
	category document.Category,
	order types.DocumentOrder,
	txn *gorm.DB,
) ([]models.Document, error) {
	if txn == nil {
		txn = d.DB()
	}
	query := txn.Model(&models.Document{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	switch order {
	case types.OrderBySequence:
		query = query.Order("sequence_no ASC")
	default:
		// Newest-first is the canonical browse order; sequence breaks ties
		// deterministically for records created in the same instant
		query = query.Order("created_at DESC").Order("sequence_no DESC")
	}
	var ret []models.Document
	if result := query.Find(&ret); result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// UpdateDocument applies the given column updates to a document record.
// Column names are gorm naming (snake_case). The caller is responsible for
// checking existence and for never including immutable columns.
func (d *MetadataStoreSqlite) UpdateDocument(
	id string,
	updates map[string]any,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Model(&models.Document{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update document: %w", result.Error)
	}
	return nil
}

// DeleteDocument removes a document record
func (d *MetadataStoreSqlite) DeleteDocument(
	id string,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}
	return nil
}

// AllocateSequenceNo increments and returns the category's sequence
// counter. The counter is a persistent high-water mark that survives record
// deletion, so a number is never handed out twice even after the record
// that held it is gone. Run inside the same transaction as the insert so a
// failed insert rolls the counter back.
func (d *MetadataStoreSqlite) AllocateSequenceNo(
	category document.Category,
	txn *gorm.DB,
) (int, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	// Single-statement upsert-increment so concurrent allocations serialize
	// on the counter row
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "category"}},
		DoUpdates: clause.Assignments(map[string]any{
			"last_value": gorm.Expr("last_value + 1"),
		}),
	}).Create(&models.SequenceCounter{Category: category, LastValue: 1})
	if result.Error != nil {
		return 0, result.Error
	}
	var counter models.SequenceCounter
	if result := db.Where("category = ?", category).
		First(&counter); result.Error != nil {
		return 0, result.Error
	}
	return counter.LastValue, nil
}

// CountDocuments returns the number of records per category
func (d *MetadataStoreSqlite) CountDocuments(
	txn *gorm.DB,
) (map[document.Category]int64, error) {
	if txn == nil {
		txn = d.DB()
	}
	var rows []struct {
		Category document.Category
		Total    int64
	}
	result := txn.Model(&models.Document{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	ret := make(map[document.Category]int64, len(rows))
	for _, row := range rows {
		ret[row.Category] = row.Total
	}
	return ret, nil
}
