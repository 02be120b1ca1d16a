package appname

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxLength is the longest application name or agent id, in UTF-8 bytes, the collector accepts.
const MaxLength = 24

var (
	ErrEmpty            = errors.New("appname: id is empty")
	ErrPattern          = errors.New("appname: id contains characters outside [a-zA-Z0-9._-]")
	ErrTooLong          = errors.New("appname: id is too long")
	ErrInvalidMaxLength = errors.New("appname: max length must be positive")
)

var (
	classNameReplacer = strings.NewReplacer(".", "_", "^", "_", ":", "_")
	idPattern         = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
)

// ClassName turns an application name into a token usable as a CSS class.
// Every '.', '^' and ':' becomes '_'; nothing else changes.
// Example: ClassName("com.test.domain") => "com_test_domain"
func ClassName(name string) string {
	return classNameReplacer.Replace(name)
}

// Validate reports whether id is acceptable as an application name or agent id.
func Validate(id string) error {
	return ValidateLength(id, MaxLength)
}

// ValidateLength is Validate with a caller supplied byte limit.
func ValidateLength(id string, maxLength int) error {
	if maxLength <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxLength, maxLength)
	}
	if id == "" {
		return ErrEmpty
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrPattern, id)
	}
	if n := len(id); n > maxLength {
		return fmt.Errorf("%w: %q is %d bytes, limit %d", ErrTooLong, id, n, maxLength)
	}
	return nil
}
