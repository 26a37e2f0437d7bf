package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// Sentinel errors for the compile failures. Every error returned by Compile
// matches exactly one of them with errors.Is.
var (
	// ErrDuplicateEntityName indicates two descriptions, or a description and
	// the base model, share an entity name.
	ErrDuplicateEntityName = errors.New("modeldesc: duplicate entity name")
	// ErrDuplicatePropertyName indicates two properties of one entity share a name.
	ErrDuplicatePropertyName = errors.New("modeldesc: duplicate property name")
	// ErrUnresolvedEntityReference indicates a relationship destination names
	// a nonexistent entity.
	ErrUnresolvedEntityReference = errors.New("modeldesc: unresolved entity reference")
	// ErrUnresolvedParentEntity indicates a parent entity name does not resolve.
	ErrUnresolvedParentEntity = errors.New("modeldesc: unresolved parent entity")
	// ErrUnresolvedInverseRelationship indicates a named inverse does not exist
	// on the destination entity, or is not a relationship.
	ErrUnresolvedInverseRelationship = errors.New("modeldesc: unresolved inverse relationship")
	// ErrUnresolvedIndexProperty indicates an index element names a nonexistent property.
	ErrUnresolvedIndexProperty = errors.New("modeldesc: unresolved index property")
	// ErrUnsupportedIndexExpression indicates an expression-typed index element.
	ErrUnsupportedIndexExpression = errors.New("modeldesc: unsupported index expression")
	// ErrInheritanceCycle indicates a parent chain that loops back on itself.
	ErrInheritanceCycle = errors.New("modeldesc: inheritance cycle")
	// ErrConflictingInverse indicates two relationships declaring inconsistent inverses.
	ErrConflictingInverse = errors.New("modeldesc: conflicting inverse relationship")
	// ErrUnresolvedConstraintProperty indicates a uniqueness constraint names
	// a nonexistent property.
	ErrUnresolvedConstraintProperty = errors.New("modeldesc: unresolved constraint property")
	// ErrInvalidDescription indicates a malformed description.
	ErrInvalidDescription = errors.New("modeldesc: invalid description")
	// ErrInvalidConfig indicates an invalid compile option.
	ErrInvalidConfig = errors.New("modeldesc: invalid config")
)

// EntityError represents an entity level error: duplicate names, parent
// resolution and inheritance cycles.
type EntityError struct {
	Kind    error
	Entity  string
	Ref     string // referenced entity name, if any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *EntityError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Ref != "" {
		fmt.Fprintf(&b, " (ref %q)", e.Ref)
	}
	writeTail(&b, e.Message, e.Cause)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *EntityError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the kind of the error.
func (e *EntityError) Is(target error) bool { return target == e.Kind }

// PropertyError represents an error on an attribute or fetched property, or
// on a uniqueness constraint.
type PropertyError struct {
	Kind     error
	Entity   string
	Property string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *PropertyError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Property != "" {
		b.WriteString(" property ")
		b.WriteString(e.Property)
	}
	writeTail(&b, e.Message, e.Cause)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *PropertyError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the kind of the error.
func (e *PropertyError) Is(target error) bool { return target == e.Kind }

// RelationshipError represents a relationship error: destination and inverse
// resolution.
type RelationshipError struct {
	Kind         error
	Entity       string
	Relationship string
	Destination  string
	Inverse      string
	Message      string
	Cause        error
}

// Error implements the error interface.
func (e *RelationshipError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Relationship != "" {
		b.WriteString(" on relationship ")
		b.WriteString(e.Relationship)
	}
	if e.Entity != "" && e.Destination != "" {
		fmt.Fprintf(&b, " (%s -> %s)", e.Entity, e.Destination)
	} else if e.Entity != "" {
		b.WriteString(" of ")
		b.WriteString(e.Entity)
	}
	if e.Inverse != "" {
		fmt.Fprintf(&b, " inverse %q", e.Inverse)
	}
	writeTail(&b, e.Message, e.Cause)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RelationshipError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the kind of the error.
func (e *RelationshipError) Is(target error) bool { return target == e.Kind }

// IndexError represents an error on an index element.
type IndexError struct {
	Kind     error
	Entity   string
	Index    string
	Position int
	Property string
	Message  string
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	fmt.Fprintf(&b, " on index %s of %s, element %d", e.Index, e.Entity, e.Position)
	if e.Property != "" {
		fmt.Fprintf(&b, " (%q)", e.Property)
	}
	writeTail(&b, e.Message, nil)
	return b.String()
}

// Is reports whether the target matches the kind of the error.
func (e *IndexError) Is(target error) bool { return target == e.Kind }

// ConfigError represents an invalid option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("modeldesc: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("modeldesc: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// IsEntityError reports whether the error is an EntityError.
func IsEntityError(err error) bool {
	var entErr *EntityError
	return errors.As(err, &entErr)
}

// IsPropertyError reports whether the error is a PropertyError.
func IsPropertyError(err error) bool {
	var propErr *PropertyError
	return errors.As(err, &propErr)
}

// IsRelationshipError reports whether the error is a RelationshipError.
func IsRelationshipError(err error) bool {
	var relErr *RelationshipError
	return errors.As(err, &relErr)
}

// IsIndexError reports whether the error is an IndexError.
func IsIndexError(err error) bool {
	var idxErr *IndexError
	return errors.As(err, &idxErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

func writeTail(b *strings.Builder, msg string, cause error) {
	if msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
}

// maxSuggestDistance bounds the edit distance of "did you mean" suggestions.
const maxSuggestDistance = 3

// suggest returns a "did you mean" message for name among candidates, or
// an empty string if no candidate is close enough.
func suggest(name string, candidates []string) string {
	best, dist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := levenshtein.Distance(name, c, nil); d < dist {
			best, dist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("did you mean %q?", best)
}
