package qerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error by how callers are expected to react to it.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation errors are rejected locally, before any write is attempted.
	KindValidation
	// KindNotFound errors mean a referenced course or enrollment record is absent.
	KindNotFound
	// KindConsistencyWrite errors mean an atomic batch commit failed and nothing was applied.
	KindConsistencyWrite
	// KindConfiguration errors mean a required external service is unavailable.
	KindConfiguration
	KindPermission
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConsistencyWrite:
		return "consistency_write"
	case KindConfiguration:
		return "configuration"
	case KindPermission:
		return "permission"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

// Error is a sentinel error tagged with a Kind.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Kind() Kind    { return e.kind }

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

var (
	// Course errors
	CourseNotFoundError   = newError(KindNotFound, "course not found")
	InvalidCourseError    = newError(KindValidation, "the provided course is not valid")
	NotCourseOwnerError   = newError(KindPermission, "only the course instructor can modify this course")
	LessonNotFoundError   = newError(KindValidation, "lesson is not part of the course curriculum")
	EmptyCurriculumError  = newError(KindValidation, "course must have at least one section with at least one lesson")
	InvalidPriceError     = newError(KindValidation, "price must be a non-negative number")
	InvalidLevelError     = newError(KindValidation, "level must be one of Beginner, Intermediate, Advanced, All Levels")
	InvalidGenerateParams = newError(KindValidation, "topic and keywords are required")
	InvalidFilterError    = newError(KindValidation, "the provided catalog filter is not valid")

	// Enrollment errors
	EnrollmentNotFoundError = newError(KindNotFound, "enrollment not found")
	CourseNotCompletedError = newError(KindValidation, "course must be completed before it can be rated")
	AlreadyRatedError       = newError(KindValidation, "course has already been rated")
	InvalidRatingError      = newError(KindValidation, "rating must be an integer between 1 and 5")
	CheckoutInProgressError = newError(KindConflict, "a checkout is already in progress")

	// User errors
	UserNotFoundError       = newError(KindNotFound, "user not found")
	NotAuthenticatedError   = newError(KindPermission, "you must be authenticated to access this resource")
	NotAdminError           = newError(KindPermission, "you must be an admin to access this resource")
	InvalidBody             = newError(KindValidation, "the request body is not valid")
	TextGenUnavailableError = newError(KindConfiguration, "text generation service is not configured")
)

// ConsistencyWriteError is returned when an atomic batch commit fails. Nothing in the batch was applied.
// It carries enough context to reconstruct what was attempted.
type ConsistencyWriteError struct {
	// Op names the engine operation, e.g. "checkout".
	Op string
	// UserID is the student whose action triggered the batch.
	UserID string
	// Paths lists every document the batch would have written.
	Paths []string
	// Payload maps each path to the data that was attempted.
	Payload map[string]interface{}
	Err     error
}

func (e *ConsistencyWriteError) Error() string {
	return fmt.Sprintf("%s for user %s failed to commit writes to [%s]: %v", e.Op, e.UserID, strings.Join(e.Paths, ", "), e.Err)
}

func (e *ConsistencyWriteError) Unwrap() error { return e.Err }

func (e *ConsistencyWriteError) Kind() Kind { return KindConsistencyWrite }

// KindOf returns the Kind of the first error in err's chain that carries one.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}
