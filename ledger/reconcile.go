package ledger

import (
	"context"

	"github.com/mmdatafocus/workshop_backend/models"
)

// CheckInventory compares every item's stored quantity with the sum of its
// stock movements. It reads one snapshot and changes nothing.
func (l *Ledger) CheckInventory(ctx context.Context) (*models.InventoryCheckReport, error) {
	report := &models.InventoryCheckReport{CheckedAt: now(), Discrepancies: []*models.InventoryDiscrepancy{}}
	err := l.snapshot(ctx, "CheckInventory", func(r Reader) error {
		items, err := r.ListInventoryItems()
		if err != nil {
			return err
		}
		totals, err := r.StockMovementTotals()
		if err != nil {
			return err
		}
		report.ItemsChecked = len(items)
		for _, item := range items {
			moved := totals[item.ID]
			if item.Quantity != moved || item.Quantity < 0 {
				report.Discrepancies = append(report.Discrepancies, &models.InventoryDiscrepancy{
					InventoryItemId:  item.ID,
					Name:             item.Name,
					StoredQuantity:   item.Quantity,
					MovementQuantity: moved,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !report.Healthy() && l.logger != nil {
		l.logger.WithField("discrepancies", len(report.Discrepancies)).Warn("inventory check found discrepancies")
	}
	return report, nil
}
