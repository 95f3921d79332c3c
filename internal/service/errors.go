package service

import (
	"errors"
	"fmt"
)

// Классы ошибок. Конкретные ошибки оборачивают их через %w,
// транспорт (HTTP, CLI) сопоставляет код ответа по errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrPrecondition    = errors.New("precondition failed")
	ErrConflict        = errors.New("conflict")
)

var (
	ErrAppointmentNotPending = fmt.Errorf("%w: appointment is not pending", ErrPrecondition)
	ErrVisitNotPayable       = fmt.Errorf("%w: visit is not awaiting payment", ErrPrecondition)
	ErrStaffAlreadyInactive  = fmt.Errorf("%w: staff member is already inactive", ErrPrecondition)
	ErrConfirmationRequired  = fmt.Errorf("%w: termination must be confirmed", ErrPrecondition)
	ErrScheduleConflict      = fmt.Errorf("%w: room is already assigned for this shift", ErrConflict)
)

// ValidationError — некорректное или ссылающееся в никуда поле запроса.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func notFound(what string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, what, id)
}
