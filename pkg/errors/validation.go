package errors

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxPayloadBytes is the largest payload any QR symbol can carry
// (version 40, low error correction, byte mode).
const MaxPayloadBytes = 2953

// ValidatePayload validates text destined for the symbol encoder.
//
// The rules are intentionally conservative:
//   - No empty payloads
//   - Must be valid UTF-8
//   - No null bytes
//   - Maximum length of MaxPayloadBytes
//
// Capacity for a specific error-correction level is checked by the encoder.
func ValidatePayload(text string) error {
	if text == "" {
		return New(ErrCodeInvalidInput, "payload cannot be empty")
	}
	if len(text) > MaxPayloadBytes {
		return New(ErrCodeInvalidInput, "payload too long (max %d bytes)", MaxPayloadBytes)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "payload is not valid UTF-8")
	}
	if strings.ContainsRune(text, '\x00') {
		return New(ErrCodeInvalidInput, "payload contains null bytes")
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI writes an artifact to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
