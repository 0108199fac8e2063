package plantdb

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures surfaced by the catalog to its callers.
type ErrorCode int

const (
	Unknown ErrorCode = iota
	// InvalidRecord means a record is missing a required field, e.g. an empty common name.
	InvalidRecord
	// DuplicateKey means a plant with the same common (or botanical) name already exists.
	DuplicateKey
	// NotFound means the addressed plant does not exist.
	NotFound
	// Unauthorized means the caller's role may not perform the operation.
	Unauthorized
	// StoreFailure means the external store rejected or failed the call; the index was not touched.
	StoreFailure
	// EmptyQuery means a search was attempted with a blank term.
	EmptyQuery
	// InvalidFilter means a filter expression failed to compile or evaluate.
	InvalidFilter
)

var codeNames = map[ErrorCode]string{
	Unknown:       "unknown",
	InvalidRecord: "invalid record",
	DuplicateKey:  "duplicate key",
	NotFound:      "not found",
	Unauthorized:  "unauthorized",
	StoreFailure:  "store failure",
	EmptyQuery:    "empty query",
	InvalidFilter: "invalid filter",
}

// String returns the readable name of the error code.
func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code %d", int(c))
}

// plantdb custom error.
type Error struct {
	Code     ErrorCode
	Err      error
	UserData any
}

func (e Error) Error() string {
	if e.UserData == nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v, user data: %v", e.Code, e.Err, e.UserData)
}

// Unwrap returns the underlying error so errors.Is can see through the code wrapper.
func (e Error) Unwrap() error {
	return e.Err
}

// NewError is a convenience constructor for a coded Error.
func NewError(code ErrorCode, err error, userData any) error {
	return Error{Code: code, Err: err, UserData: userData}
}

// CodeOf returns the code of the first plantdb Error in err's chain, or Unknown.
func CodeOf(err error) ErrorCode {
	var e Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}

var (
	// ErrRecordNotFound is returned by stores when deleting an id they do not hold.
	ErrRecordNotFound = errors.New("plant record not found")
	// ErrRecordExists is returned by stores when inserting an id they already hold.
	ErrRecordExists = errors.New("plant record already exists")
)
