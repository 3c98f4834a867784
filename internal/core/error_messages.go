package core

// error_messages.go maps technical errors to user-friendly messages with
// codes for support reference.
//
// # Size Errors (SIZ001-SIZ099)
//
//	SIZ001 - Unknown size: The size field names a size outside the vocabulary
//	SIZ002 - Bad quantity: A size quantity is not a non-negative whole number
//	SIZ003 - Repeated size: The same size appears twice in one field
//	SIZ004 - Malformed field: The field is not SIZE:QTY pairs joined by commas
//	SIZ005 - Lost sizes: A conversion would drop stock the target vocabulary lacks
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid number: A price could not be parsed
//	VAL002 - Invalid count: A quantity column is not a whole number
//	VAL003 - Required field: A required field is empty
//	VAL004 - Missing column: A required column is missing from the header
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Invalid CSV: The file is not valid CSV
//	FILE002 - Empty file: The file has no data rows
//	FILE003 - No header: No row carries the layout's required columns
//
// # Default Error (ERR000)
//
// Size errors are classified by the *sizes.FormatError kind, never by text:
// the message quotes the raw cell, which may hold anything.
//
// Other errors are matched case-insensitively using strings.Contains. The
// first matching pattern wins, so specific patterns come before general ones.
// File errors come first; their messages embed the header error beneath them.

import (
	"errors"
	"strings"

	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{"parse error", UserMessage{"The file is not valid CSV", "Save the sheet as comma-separated values", "FILE001"}},
	{"empty file", UserMessage{"The file is empty", "Export a sheet with data rows", "FILE002"}},
	{"no header", UserMessage{"No header row found", "Check the file matches the chosen profile's layout", "FILE003"}},

	{"outside the target vocabulary", UserMessage{"The breakdown holds sizes the target profile lacks", "Convert to a profile whose vocabulary covers these sizes", "SIZ005"}},

	{"invalid number", UserMessage{"Invalid number format detected", "Remove stray text and use a plain decimal price", "VAL001"}},
	{"invalid count", UserMessage{"Invalid quantity detected", "Use whole, non-negative numbers", "VAL002"}},
	{"required field", UserMessage{"Required field is empty", "Ensure all required columns have values", "VAL003"}},
	{"missing required column", UserMessage{"Required column is missing", "Check the header matches the layout", "VAL004"}},
}

var sizeMessages = map[sizes.Kind]UserMessage{
	sizes.UnknownSize: {"The size field names an unknown size", "Use only sizes from the configured vocabulary", "SIZ001"},
	sizes.BadQuantity: {"A size quantity is not a whole number", "Write quantities as whole numbers, e.g. S:5", "SIZ002"},
	sizes.Repeated:    {"The same size appears twice", "List each size once", "SIZ003"},
	sizes.Malformed:   {"The size field is malformed", "Use SIZE:QTY pairs separated by commas", "SIZ004"},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logs for details",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ue *UserError
	if errors.As(err, &ue) {
		return ue.UserMessage
	}

	var fe *sizes.FormatError
	if errors.As(err, &fe) {
		if msg, ok := sizeMessages[fe.Kind]; ok {
			return msg
		}
		return sizeMessages[sizes.Malformed]
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}
	return defaultMessage
}

// ErrorCode returns just the support code for err.
func ErrorCode(err error) string {
	return MapError(err).Code
}

// UserError wraps an error with its user-facing message.
type UserError struct {
	UserMessage
	Err error
}

// NewUserError maps err and wraps it. Returns nil for a nil error.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{UserMessage: MapError(err), Err: err}
}

func (e *UserError) Error() string {
	return e.Code + ": " + e.Message + ". " + e.Action
}

func (e *UserError) Unwrap() error {
	return e.Err
}
