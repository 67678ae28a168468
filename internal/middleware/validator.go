package middleware

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Input validation and sanitization utilities

const (
	// MinJobDescriptionChars matches the shortest job description worth analyzing
	MinJobDescriptionChars = 50
)

// ValidateResumeFilename checks the uploaded file has a supported extension
func ValidateResumeFilename(name string) error {
	if name == "" {
		return fmt.Errorf("resume filename cannot be empty")
	}

	allowed := map[string]bool{
		".pdf":  true,
		".doc":  true,
		".docx": true,
		".txt":  true,
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !allowed[ext] {
		return fmt.Errorf("unsupported file type: %s (allowed: pdf, doc, docx, txt)", ext)
	}
	return nil
}

// ValidateFileSize checks the upload against the configured ceiling
func ValidateFileSize(size, maxBytes int64) error {
	if size <= 0 {
		return fmt.Errorf("resume file cannot be empty")
	}
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("file too large: %d bytes (max %d)", size, maxBytes)
	}
	return nil
}

// ValidateJobDescription checks the posting text is substantial enough
func ValidateJobDescription(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("job description cannot be empty")
	}
	if len(trimmed) < MinJobDescriptionChars {
		return fmt.Errorf("job description too short: %d chars (min %d)", len(trimmed), MinJobDescriptionChars)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidatePageSize validates pagination page size
func ValidatePageSize(size int) int {
	if size <= 0 {
		return 20 // default
	}
	if size > 100 {
		return 100 // max page size
	}
	return size
}

// ValidatePage validates pagination page number
func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}
