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

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// MaxAttachmentSize is the upper bound for a single attachment. A file of
// exactly this size is accepted.
const MaxAttachmentSize = 50 << 20 // 50 MiB

// ErrValidationFailed is the sentinel for all attachment validation
// failures. Use errors.Is against it and errors.As against ValidationError
// for the specific rule.
var ErrValidationFailed = errors.New("attachment validation failed")

// ValidationError reports which rule rejected an attachment. The message
// names the offending constraint so callers can surface it directly.
type ValidationError struct {
	Rule   string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("attachment validation failed: %s: %s", e.Rule, e.Detail)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

const (
	RuleSizeLimit = "size limit"
	RuleFileType  = "file type"
)

// ValidateAttachment checks a primary attachment against the category's
// policy. It is a pure function over file metadata and never reads Bytes.
func ValidateAttachment(category Category, file *File) error {
	if file == nil {
		return nil
	}
	policy, ok := categoryPolicies[category]
	if !ok {
		return &ValidationError{
			Rule:   RuleFileType,
			Detail: fmt.Sprintf("unknown category %q", category),
		}
	}
	return validateFile(file, policy.allowedExtensions, policy.allowedMimeTypes)
}

// ValidateIssuance checks an issuance attachment. The issued version is
// always PDF regardless of the record's own category.
func ValidateIssuance(file *File) error {
	if file == nil {
		return nil
	}
	return validateFile(file, pdfExtensions, pdfMimeTypes)
}

func validateFile(file *File, extensions, mimeTypes []string) error {
	if file.Size > MaxAttachmentSize {
		return &ValidationError{
			Rule: RuleSizeLimit,
			Detail: fmt.Sprintf(
				"%q is %d bytes, limit is %d bytes",
				file.Name,
				file.Size,
				MaxAttachmentSize,
			),
		}
	}
	ext := strings.ToLower(filepath.Ext(file.Name))
	if ext != "" {
		if !slices.Contains(extensions, ext) {
			return &ValidationError{
				Rule: RuleFileType,
				Detail: fmt.Sprintf(
					"extension %q not allowed, expected one of %s",
					ext,
					strings.Join(extensions, ", "),
				),
			}
		}
		return nil
	}
	// No extension to go on, fall back to the declared MIME type
	if !slices.Contains(mimeTypes, strings.ToLower(file.MimeType)) {
		return &ValidationError{
			Rule: RuleFileType,
			Detail: fmt.Sprintf(
				"MIME type %q not allowed, expected one of %s",
				file.MimeType,
				strings.Join(mimeTypes, ", "),
			),
		}
	}
	return nil
}
