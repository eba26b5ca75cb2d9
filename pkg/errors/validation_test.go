package errors

import (
	"strings"
	"testing"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"bare bundle file", "componentConfig_edit.json", false},
		{"duplicate suffix", "componentPositions (7).json", false},
		{"schema file", "metadataSchema_3.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"slash", "downloads/componentConfig_edit.json", true},
		{"backslash", "downloads\\componentConfig_edit.json", true},
		{"parent", "..", true},
		{"dot", ".", true},
		{"null byte", "foo\x00.json", true},
		{"newline", "foo\n.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateFilename(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"http", "http://localhost:5173/downloads", false},
		{"https", "https://example.org/schemas", false},

		{"empty", "", true},
		{"file scheme", "file:///tmp/downloads", true},
		{"no scheme", "localhost/downloads", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
