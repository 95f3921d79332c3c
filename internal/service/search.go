package service

import (
	"context"
	"fmt"

	"github.com/Leganyst/clinic-desk/internal/repository"
)

// SearchPatients ищет приёмы по подстроке в имени, телефоне, паспорте
// или номере кабинета. Пустой запрос и отсутствие совпадений дают пустой список.
func (c *Clinic) SearchPatients(ctx context.Context, term string) ([]repository.PatientRecord, error) {
	rows, err := c.Visits.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}
	if rows == nil {
		rows = []repository.PatientRecord{}
	}
	return rows, nil
}
