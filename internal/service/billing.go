package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/Leganyst/clinic-desk/internal/model"
	"github.com/Leganyst/clinic-desk/internal/repository"
)

// maxFee — верхняя граница колонки decimal(10,2).
const maxFee = 99_999_999.99

// SettleRequest — оплата приёма на кассе.
type SettleRequest struct {
	VisitID       int64               `json:"-"`
	Fee           float64             `json:"fee" binding:"gte=0"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
}

// SettleVisit переводит приём ToPay -> Finished, записывая сумму, способ оплаты
// и время завершения. Статус проверяется в самом UPDATE, поэтому из двух
// одновременных оплат проходит ровно одна.
func (c *Clinic) SettleVisit(ctx context.Context, req SettleRequest) (*model.Visit, error) {
	if req.VisitID <= 0 {
		return nil, invalid("visit_id", "is required")
	}
	if math.IsNaN(req.Fee) || math.IsInf(req.Fee, 0) || req.Fee < 0 {
		return nil, invalid("fee", "must be a non-negative amount")
	}
	if req.Fee > maxFee {
		return nil, invalid("fee", "is too large")
	}
	fee := math.Round(req.Fee*100) / 100
	if req.PaymentMethod != "" && !req.PaymentMethod.Valid() {
		return nil, invalid("payment_method", "must be Insurance, Mobile or Cash")
	}

	receipt := uuid.New()
	at := c.now().UTC()

	var visit *model.Visit
	err := c.Tx.InTx(ctx, func(ctx context.Context) error {
		n, err := c.Visits.Settle(ctx, req.VisitID, fee, req.PaymentMethod, receipt, at)
		if err != nil {
			return fmt.Errorf("settle visit: %w", err)
		}

		v, err := c.Visits.GetByID(ctx, req.VisitID)
		if err != nil {
			if repository.IsNotFound(err) {
				return notFound("visit", req.VisitID)
			}
			return fmt.Errorf("get visit: %w", err)
		}
		if n != 1 {
			return fmt.Errorf("%w (visit %d is %s)", ErrVisitNotPayable, v.ID, v.Status)
		}
		visit = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.rec.VisitSettled(string(req.PaymentMethod), visit.TotalFee)
	c.log.InfoContext(ctx, "visit settled",
		"visit_id", visit.ID,
		"fee", visit.TotalFee,
		"method", req.PaymentMethod,
		"receipt", receipt.String(),
	)
	return visit, nil
}

// ListUnpaidVisits — очередь кассы.
func (c *Clinic) ListUnpaidVisits(ctx context.Context) ([]repository.UnpaidVisit, error) {
	rows, err := c.Visits.ListUnpaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unpaid visits: %w", err)
	}
	if rows == nil {
		rows = []repository.UnpaidVisit{}
	}
	return rows, nil
}
