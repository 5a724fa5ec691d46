package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
)

const (
	cacheKeyDashboard     = "dashboard"
	cacheKeyProfitAndLoss = "pnl:%s:%s"
)

// ComputeProfitAndLoss aggregates committed orders and expenses dated within
// [start, end], both ends inclusive at day granularity. Only fulfilled orders
// contribute cost of goods sold.
func (l *Ledger) ComputeProfitAndLoss(ctx context.Context, start time.Time, end time.Time) (*models.ProfitAndLoss, error) {
	start, end = utils.DateOnly(start), utils.DateOnly(end)
	if end.Before(start) {
		return nil, l.fail("ComputeProfitAndLoss", utils.NewValidationError("end_date", "must not be before start_date"))
	}

	key := fmt.Sprintf(cacheKeyProfitAndLoss, start.Format(utils.DateLayout), end.Format(utils.DateLayout))
	generation, cacheable := l.reportGeneration(ctx)
	var cached models.ProfitAndLoss
	if cacheable && l.cache.Get(ctx, generation, key, &cached) {
		return &cached, nil
	}

	report := &models.ProfitAndLoss{StartDate: start, EndDate: end}
	err := l.snapshot(ctx, "ComputeProfitAndLoss", func(r Reader) error {
		var err error
		if report.Revenue, err = r.SumSalesRevenue(start, end); err != nil {
			return err
		}
		if report.Cogs, err = r.SumCostOfGoodsSold(start, end); err != nil {
			return err
		}
		if report.Expenses, err = r.SumExpenses(start, end); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	report.GrossProfit = report.Revenue.Sub(report.Cogs)
	report.NetProfit = report.GrossProfit.Sub(report.Expenses)

	if cacheable {
		l.cache.Set(ctx, generation, key, report)
	}
	return report, nil
}

// ComputeDashboardStats reports headcount, unfulfilled orders, the unpaid
// balance of orders not yet paid, and items below their stock threshold.
func (l *Ledger) ComputeDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	generation, cacheable := l.reportGeneration(ctx)
	var cached models.DashboardStats
	if cacheable && l.cache.Get(ctx, generation, cacheKeyDashboard, &cached) {
		return &cached, nil
	}

	stats := &models.DashboardStats{}
	err := l.snapshot(ctx, "ComputeDashboardStats", func(r Reader) error {
		var err error
		if stats.EmployeeCount, err = r.CountEmployees(); err != nil {
			return err
		}
		if stats.PendingOrders, err = r.CountUnfulfilledSalesOrders(); err != nil {
			return err
		}
		if stats.TotalOutstanding, err = r.SumUnpaidOrderBalances(); err != nil {
			return err
		}
		stats.LowStockItems, err = r.ListLowStockItems()
		return err
	})
	if err != nil {
		return nil, err
	}
	if stats.LowStockItems == nil {
		stats.LowStockItems = []*models.InventoryItem{}
	}

	if cacheable {
		l.cache.Set(ctx, generation, cacheKeyDashboard, stats)
	}
	return stats, nil
}

// reportGeneration must be read before the snapshot so a report is never
// filed under a generation newer than the data it was computed from.
func (l *Ledger) reportGeneration(ctx context.Context) (int64, bool) {
	if l.cache == nil {
		return 0, false
	}
	return l.cache.Generation(ctx)
}
