package ledger

import (
	"context"

	"github.com/mmdatafocus/workshop_backend/models"
)

// LogPayment appends a payment and re-derives the order's payment status
// from the new paid amount in the same unit. Overpayment is accepted.
func (l *Ledger) LogPayment(ctx context.Context, input *models.NewPayment) (*models.Payment, *models.SalesOrder, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, l.fail("LogPayment", err)
	}
	release, err := l.lockOrder(ctx, lockTypeSalesOrder, input.SalesOrderId, "LogPayment")
	if err != nil {
		return nil, nil, l.fail("LogPayment", err)
	}
	defer release()

	var (
		payment *models.Payment
		order   *models.SalesOrder
	)
	err = l.atomic(ctx, "LogPayment", func(tx Tx) error {
		var err error
		order, err = tx.LockSalesOrder(input.SalesOrderId)
		if err != nil {
			return err
		}
		payment = &models.Payment{
			SalesOrderId: order.ID,
			Amount:       input.Amount,
			PaymentDate:  input.PaymentDate,
		}
		if err := tx.Insert(payment); err != nil {
			return err
		}
		order.ApplyPayment(input.Amount)
		if err := tx.Update(order); err != nil {
			return err
		}
		return appendEvent(ctx, tx, "sales_order", order.ID, "payment_logged", map[string]any{
			"payment_id":     payment.ID,
			"amount":         payment.Amount,
			"paid_amount":    order.PaidAmount,
			"payment_status": order.PaymentStatus,
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, order, nil
}

func (l *Ledger) ListPayments(ctx context.Context, salesOrderId int) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := l.snapshot(ctx, "ListPayments", func(r Reader) error {
		if _, err := r.GetSalesOrder(salesOrderId); err != nil {
			return err
		}
		var err error
		payments, err = r.ListPayments(salesOrderId)
		return err
	})
	return payments, err
}
