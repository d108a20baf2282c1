package pbxproj

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateEntry means the file's label is already in the project.
	ErrDuplicateEntry = errors.New("already exists in project")
	// ErrGroupNotFound means no PBXGroup matched the file's parent directory.
	ErrGroupNotFound = errors.New("group not found")
	// ErrBuildPhaseNotFound means the sources build phase or its file list
	// could not be located.
	ErrBuildPhaseNotFound = errors.New("build phase not found")
	// ErrNotSourceFile means the path does not carry a configured source
	// extension.
	ErrNotSourceFile = errors.New("not a source file")
)

// FatalInputError is returned when the project file itself cannot be used.
// Nothing has been modified when it is returned.
type FatalInputError struct {
	Path string
	Err  error
}

func (e *FatalInputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FatalInputError) Unwrap() error {
	return e.Err
}

// SectionNotFoundError reports a missing Begin/End marker pair.
type SectionNotFoundError struct {
	Section string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s section", e.Section)
}

// GroupNotFoundError is an ErrGroupNotFound carrying near matches. An empty
// Group means the file sits at the project root.
type GroupNotFoundError struct {
	Group       string
	Suggestions []string
}

func (e *GroupNotFoundError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("%v: file has no parent directory, left ungrouped", ErrGroupNotFound)
	}
	msg := fmt.Sprintf("%v for '%s'", ErrGroupNotFound, e.Group)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *GroupNotFoundError) Is(target error) bool {
	return target == ErrGroupNotFound
}
