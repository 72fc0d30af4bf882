package manifest

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/picard-community/plugin-tools/internal/errorcodes"
)

// dottedNumeric matches over-long dotted version strings such as "1.2.3.4"
// that legacy manifests carry; they are truncated to three parts before
// semver parsing.
var dottedNumeric = regexp.MustCompile(`^\d+(\.\d+)+$`)

// Violation describes a single manifest validation failure.
type Violation struct {
	Field  string
	Err    errorcodes.ToolError
	Reason string
}

// String renders the violation as "<code>: <field> (<reason>)".
func (v Violation) String() string {
	if v.Reason == "" {
		return fmt.Sprintf("%s: %s", v.Err.Code, v.Field)
	}

	return fmt.Sprintf("%s: %s (%s)", v.Err.Code, v.Field, v.Reason)
}

// ValidationError carries the full violation list when an operation aborts
// on an invalid manifest.
type ValidationError struct {
	Violations []Violation
}

// Error lists every violation, one per line.
func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = v.String()
	}

	return "manifest validation failed:\n  " + strings.Join(lines, "\n  ")
}

// Validate checks the manifest against the schema and returns the complete
// list of violations. A nil result means the manifest is valid. The check is
// pure: it never touches the filesystem and never fails fatally.
func Validate(m *Manifest) []Violation {
	var violations []Violation

	for _, field := range Schema {
		value := m.FieldValue(field.Key)
		if strings.TrimSpace(value) == "" {
			if !field.Required {
				continue
			}

			// A field present with an empty value is malformed; an absent
			// one is missing.
			if m.FieldPresent(field.Key) {
				violations = append(violations, Violation{
					Field:  field.Key,
					Err:    errorcodes.ErrManifestFieldInvalid,
					Reason: "empty value",
				})
			} else {
				violations = append(violations, Violation{
					Field:  field.Key,
					Err:    errorcodes.ErrManifestFieldMissing,
					Reason: "required field is missing",
				})
			}

			continue
		}

		if reason := CheckFieldValue(field, value); reason != "" {
			violations = append(violations, Violation{
				Field:  field.Key,
				Err:    errorcodes.ErrManifestFieldInvalid,
				Reason: reason,
			})
		}
	}

	return violations
}

// CheckFieldValue applies the field kind rule to a non-empty value and
// returns a reason string, or "" when the value is well-formed. The wizard
// uses it for inline feedback; Validate uses it for the violation list.
func CheckFieldValue(field Field, value string) string {
	switch field.Kind {
	case KindVersion:
		if err := checkVersion(value); err != nil {
			return err.Error()
		}
	case KindVersionList:
		versions := splitVersions(value)
		if len(versions) == 0 {
			return "no versions listed"
		}
		for _, v := range versions {
			if err := checkVersion(v); err != nil {
				return err.Error()
			}
		}
	case KindURL:
		u, err := url.Parse(value)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("%q is not a valid http(s) URL", value)
		}
	case KindText:
		// Any non-empty string is fine.
	}

	return ""
}

// checkVersion parses a semantic-version-like identifier. Legacy manifests
// use loose forms ("1.0", "1.2.3.4"); both are accepted.
func checkVersion(value string) error {
	candidate := value
	if parts := strings.Split(value, "."); len(parts) > 3 && dottedNumeric.MatchString(value) {
		candidate = strings.Join(parts[:3], ".")
	}

	if _, err := semver.NewVersion(candidate); err != nil {
		return fmt.Errorf("%q is not a valid version string", value)
	}

	return nil
}

func splitVersions(value string) []string {
	var versions []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			versions = append(versions, part)
		}
	}

	return versions
}

func joinVersions(versions []string) string {
	return strings.Join(versions, ", ")
}
