// Package errorcodes defines the plugin tool error taxonomy using a
// structured type. ToolError holds a short machine code and a
// human-readable description.
package errorcodes

import "errors"

// Predefined tool error instances. All of these describe deterministic
// content problems; none are transient and none are retried.
var (
	ErrManifestUnreadable = ToolError{
		"manifest_unreadable",
		"manifest file cannot be found, opened or parsed",
	}
	ErrManifestFieldMissing = ToolError{
		"manifest_field_missing",
		"required manifest field is absent or empty",
	}
	ErrManifestFieldInvalid = ToolError{
		"manifest_field_invalid",
		"manifest field is present but malformed",
	}
	ErrChecksumMismatch = ToolError{
		"checksum_mismatch",
		"recomputed package checksum does not match the recorded value",
	}
	ErrArchiveUnreadable = ToolError{
		"archive_unreadable",
		"package archive cannot be opened or lacks an embedded manifest",
	}
)

// ToolError represents a plugin tool error with its code and description.
type ToolError struct {
	Code        string // short snake_case error code
	Description string // human-readable description
}

// Error implements the Go error interface: "<Code>: <Description>".
func (e ToolError) Error() string {
	return e.Code + ": " + e.Description
}

// CodeOnly returns only the error code (e.g., "checksum_mismatch"), for
// structured log fields.
func (e ToolError) CodeOnly() string {
	return e.Code
}

// Is reports whether target is the same taxonomy entry, so wrapped errors
// match with errors.Is.
func (e ToolError) Is(target error) bool {
	var te ToolError
	if !errors.As(target, &te) {
		return false
	}

	return te.Code == e.Code
}
