package services

import (
	"errors"
	"fmt"

	"timetrack-backend/internal/repositories"
)

// NotFoundError means a referenced entity does not exist or is not owned by
// the requesting user. Ownership failures deliberately look identical to
// missing rows so IDs cannot be probed.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ValidationError means the request itself is malformed: empty selections,
// non-positive hours, inverted date ranges and the like.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// DuplicateBillingError means a work-hour entry is already billed by another
// invoice that has not been canceled. Linking it again would double-count
// revenue.
type DuplicateBillingError struct {
	WorkHourID int
	InvoiceID  int
}

func (e *DuplicateBillingError) Error() string {
	return fmt.Sprintf("work hour %d is already billed by invoice %d", e.WorkHourID, e.InvoiceID)
}

// TransactionError wraps a failed atomic write.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// mapNotFound converts the store's missing-row error into the service
// taxonomy; any other error passes through untouched.
func mapNotFound(err error, entity string, id int) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
