package errors

import (
	"strings"
	"unicode"
)

// maxFilenameLength bounds names handed to sources and sinks.
const maxFilenameLength = 255

// ValidateFilename validates a bundle or schema filename for safety.
// It ensures the name is a plain basename that cannot escape the directory
// or URL prefix it is resolved against.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 255 bytes
//   - No control characters or null bytes
//   - No path separators (/ or \)
//   - Not "." or ".."
//
// Spaces and parentheses are allowed; duplicate suffixes such as
// "componentPositions (7).json" contain both.
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	if len(name) > maxFilenameLength {
		return New(ErrCodeInvalidPath, "filename too long (max %d characters)", maxFilenameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "filename cannot be %q", name)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
