package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// ValidationError is malformed or semantically invalid input. Nothing has
// touched storage when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field string, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// PreconditionError is a business rule conflict found after reading current
// state and before any write.
type PreconditionError struct {
	Entity    string
	Id        int
	Message   string
	Required  int
	Available int
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func NewPreconditionError(entity string, id int, format string, args ...any) error {
	return &PreconditionError{Entity: entity, Id: id, Message: fmt.Sprintf(format, args...)}
}

func NewInsufficientStockError(inventoryItemId int, name string, required int, available int) error {
	return &PreconditionError{
		Entity:    "inventory_item",
		Id:        inventoryItemId,
		Message:   fmt.Sprintf("not enough stock for %s. Required: %d, Available: %d", name, required, available),
		Required:  required,
		Available: available,
	}
}

// NotFoundError names the missing record by Id, or by Key for lookups that
// are not by id.
type NotFoundError struct {
	Entity string
	Id     int
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.Id)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrorRecordNotFound
}

func NewNotFoundError(entity string, id int) error {
	return &NotFoundError{Entity: entity, Id: id}
}

func NewNotFoundByKeyError(entity string, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// StorageError wraps a failure of the underlying transaction. It is the only
// kind worth retrying unmodified.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsPrecondition(err error) bool {
	var target *PreconditionError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrorRecordNotFound)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

// IsRetryable reports whether the caller may retry the same request.
func IsRetryable(err error) bool {
	return IsStorage(err)
}
