package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/workshop_backend/models"
	"gorm.io/gorm"
)

type paymentReader struct {
	db *gorm.DB
}

func (r *paymentReader) getPayments(ctx context.Context, salesOrderIds []int) []*dataloader.Result[[]*models.Payment] {
	var results []models.Payment
	err := r.db.WithContext(ctx).Where("sales_order_id IN ?", salesOrderIds).Order("payment_date, id").Find(&results).Error
	if err != nil {
		return handleError[[]*models.Payment](len(salesOrderIds), err)
	}
	return generateLoaderArrayResults(results, salesOrderIds)
}

// GetPayments returns the payments of each sales order, in the order of
// salesOrderIds, with one query.
func GetPayments(ctx context.Context, salesOrderIds []int) ([][]*models.Payment, error) {
	loaders := For(ctx)
	if loaders == nil {
		return nil, errLoadersMissing
	}
	payments, errs := loaders.paymentLoader.LoadMany(ctx, salesOrderIds)()
	return payments, firstError(errs)
}
