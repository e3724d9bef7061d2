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

// Category classifies a document record. The set is fixed; sequence numbers
// are scoped per category.
type Category string

const (
	CategoryProposal     Category = "proposal"
	CategoryDecision     Category = "decision"
	CategoryAward        Category = "award"
	CategoryReport       Category = "report"
	CategoryPromulgation Category = "promulgation"
)

// categoryPolicy holds the per-category attachment rules
type categoryPolicy struct {
	label             string
	allowedExtensions []string
	allowedMimeTypes  []string
}

var categoryPolicies = map[Category]categoryPolicy{
	CategoryProposal: {
		label:             "Proposal",
		allowedExtensions: wordExtensions,
		allowedMimeTypes:  wordMimeTypes,
	},
	CategoryDecision: {
		label:             "Decision",
		allowedExtensions: wordExtensions,
		allowedMimeTypes:  wordMimeTypes,
	},
	CategoryAward: {
		label:             "Award",
		allowedExtensions: wordExtensions,
		allowedMimeTypes:  wordMimeTypes,
	},
	CategoryReport: {
		label:             "Report",
		allowedExtensions: wordExtensions,
		allowedMimeTypes:  wordMimeTypes,
	},
	// Promulgated documents are the issued artifact and must be PDF
	CategoryPromulgation: {
		label:             "Promulgation",
		allowedExtensions: pdfExtensions,
		allowedMimeTypes:  pdfMimeTypes,
	},
}

var (
	wordExtensions = []string{".doc", ".docx"}
	wordMimeTypes  = []string{
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	pdfExtensions = []string{".pdf"}
	pdfMimeTypes  = []string{"application/pdf"}
)

// Categories returns all valid categories in display order
func Categories() []Category {
	return []Category{
		CategoryProposal,
		CategoryDecision,
		CategoryAward,
		CategoryReport,
		CategoryPromulgation,
	}
}

// Valid returns true if the Category is a member of the fixed set
func (c Category) Valid() bool {
	_, ok := categoryPolicies[c]
	return ok
}

// Label returns the human-readable name used for display and export sheets
func (c Category) Label() string {
	if p, ok := categoryPolicies[c]; ok {
		return p.label
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}
