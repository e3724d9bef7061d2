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

// Package export flattens the full archive into a multi-sheet spreadsheet,
// one sheet per document category, rows in ascending sequence order
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/blinklabs-io/docstore/archive"
	"github.com/blinklabs-io/docstore/database/types"
	"github.com/blinklabs-io/docstore/document"
	"github.com/xuri/excelize/v2"
)

// createdAtLayout renders timestamps day-first, matching the locale the
// archive is kept in
const createdAtLayout = "02/01/2006 15:04"

var headerRow = []any{
	"No.",
	"Note",
	"Attachment",
	"Issuance attachment",
	"Executor",
	"Year",
	"Created",
}

// Projector renders archive listings into spreadsheet form. It only reads;
// the store is never touched beyond listing.
type Projector struct {
	view *archive.View
	now  func() time.Time
}

func NewProjector(view *archive.View) *Projector {
	return &Projector{
		view: view,
		now:  time.Now,
	}
}

// Filename returns the dated name for an export produced now
func (p *Projector) Filename() string {
	return fmt.Sprintf("Documents_%s.xlsx", p.now().Format("20060102"))
}

// ExportAll writes a workbook with one sheet per category to w. Every
// category gets a sheet even when it holds no records.
func (p *Projector) ExportAll(w io.Writer) error {
	f, err := p.Workbook()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Workbook builds the export workbook without serializing it
func (p *Projector) Workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	for i, category := range document.Categories() {
		sheet := category.Label()
		if i == 0 {
			// Rename the default sheet rather than leaving it empty
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
		}
		summaries, err := p.view.List(
			category,
			archive.Filter{},
			types.OrderBySequence,
		)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := writeSheet(f, sheet, summaries); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(
	f *excelize.File,
	sheet string,
	summaries []archive.Summary,
) error {
	if err := setRow(f, sheet, 1, headerRow); err != nil {
		return err
	}
	for i, summary := range summaries {
		row := []any{
			strconv.Itoa(summary.SequenceNo),
			summary.Note,
			summary.AttachmentName,
			summary.IssuanceName,
			summary.Executor,
			yearCell(summary.Year),
			summary.CreatedAt.Format(createdAtLayout),
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// Missing optional fields render as empty strings
func yearCell(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
