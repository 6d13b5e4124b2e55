package httperr

import (
	"errors"
	"fmt"
)

// Kind groups business codes into the outcomes callers act on.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindInvalidDate  Kind = "invalid_date"
	KindPastDate     Kind = "past_date"
	KindSlotConflict Kind = "slot_conflict"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindStorage      Kind = "storage"
	KindUnknown      Kind = "unknown"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness keeps the old single-argument form; the code doubles as a
// validation failure.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrInvalidDate(code string) error {
	return BusinessError{Kind: KindInvalidDate, Code: code}
}

func ErrPastDate(code string) error {
	return BusinessError{Kind: KindPastDate, Code: code}
}

func ErrSlotConflict(code string) error {
	return BusinessError{Kind: KindSlotConflict, Code: code}
}

// ErrConflict is a uniqueness clash outside the slot allocator.
func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// StorageError marks a failure of the underlying store, as opposed to a
// rejected request.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var be BusinessError
	if errors.As(err, &be) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	var se *StorageError
	if errors.As(err, &se) {
		return KindStorage
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// CodeOf returns the business code of err, or "" when err is not a business error.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
