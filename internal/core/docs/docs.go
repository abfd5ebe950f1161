// Package docs validates the documentation section of a project descriptor.
package docs

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nightconcept/tt-setup/internal/core/project"
)

var (
	ErrMissingField   = errors.New("missing documentation field")
	ErrInvalidDiscord = errors.New("invalid format for discord username")
)

var discriminator = regexp.MustCompile(`^[0-9]{4}$`)

// Check returns an error for the first required field that is absent or empty,
// or for a discord handle that is not of the form name#1234.
func Check(doc *project.Documentation) error {
	for _, key := range project.RequiredFields {
		value, ok := doc.Field(key)
		if !ok {
			return fmt.Errorf("%w: missing key %s in documentation", ErrMissingField, key)
		}
		if value == "" {
			return fmt.Errorf("%w: missing value for %s in documentation", ErrMissingField, key)
		}
	}

	if doc.Discord != "" {
		if err := CheckDiscord(doc.Discord); err != nil {
			return err
		}
	}
	return nil
}

// CheckDiscord validates a single discord handle.
func CheckDiscord(handle string) error {
	parts := strings.Split(handle, "#")
	if len(parts) != 2 || parts[0] == "" || !discriminator.MatchString(parts[1]) {
		return fmt.Errorf("%w: %q", ErrInvalidDiscord, handle)
	}
	return nil
}
