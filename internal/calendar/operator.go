package calendar

import (
	"context"
	"errors"
)

// Ошибки проверки оператора (сотрудника, от имени которого идёт запрос).
var (
	ErrInvalidOperatorID = errors.New("invalid operator id")
	ErrOperatorNotFound  = errors.New("operator not found")
	ErrOperatorInactive  = errors.New("operator is inactive")
)

// Роль оператора в системе. Совпадает с должностью сотрудника,
// плюс "Patient" для публичных запросов.
type OperatorRole string

const (
	OperatorRolePatient OperatorRole = "Patient"
	OperatorRoleDoctor  OperatorRole = "Doctor"
	OperatorRoleNurse   OperatorRole = "Nurse"
	OperatorRoleCashier OperatorRole = "Cashier"
	OperatorRoleAdmin   OperatorRole = "Admin"
)

// Operator — минимальная проекция сотрудника для авторизации.
type Operator struct {
	StaffID  int64
	Role     OperatorRole
	IsActive bool
}

// Источник данных об операторах.
// В реале это обёртка над таблицей staff, в тестах мок.
type OperatorStore interface {
	FindOperator(ctx context.Context, staffID int64) (*Operator, error)
}

// ValidateOperator:
//   - проверяет корректность идентификатора;
//   - вытаскивает сотрудника из хранилища;
//   - отклоняет уволенных (is_active = false);
//   - возвращает актуальную роль из базы, а не из токена.
func ValidateOperator(ctx context.Context, store OperatorStore, staffID int64) (*Operator, error) {
	if staffID <= 0 {
		return nil, ErrInvalidOperatorID
	}

	op, err := store.FindOperator(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrOperatorNotFound
	}
	if !op.IsActive {
		return nil, ErrOperatorInactive
	}

	return op, nil
}
