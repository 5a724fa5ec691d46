package ledger

import (
	"context"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

// RecordPurchase stores the purchase and receives every line into stock in
// input order. A material named twice is blended twice, the second line
// seeing the first one's result.
func (l *Ledger) RecordPurchase(ctx context.Context, input *models.NewPurchase) (*models.Purchase, error) {
	if err := input.Validate(); err != nil {
		return nil, l.fail("RecordPurchase", err)
	}

	var purchase *models.Purchase
	err := l.atomic(ctx, "RecordPurchase", func(tx Tx) error {
		if input.ContactId > 0 {
			if err := requireContact(tx, input.ContactId, models.ContactTypeSupplier); err != nil {
				return err
			}
		}

		items, err := lockItemsByName(tx, purchaseItemNames(input))
		if err != nil {
			return err
		}

		purchase = &models.Purchase{
			ContactId:    optionalId(input.ContactId),
			PurchaseDate: input.PurchaseDate,
			TotalValue:   input.TotalValue(),
		}
		if err := tx.Insert(purchase); err != nil {
			return err
		}

		for _, line := range input.Items {
			item, ok := items[line.Name]
			if !ok {
				item = &models.InventoryItem{Name: line.Name, AverageCost: decimal.Zero}
				if err := tx.Insert(item); err != nil {
					return err
				}
				items[line.Name] = item
			}

			purchaseItem := &models.PurchaseItem{
				PurchaseId:      purchase.ID,
				InventoryItemId: item.ID,
				Quantity:        line.Quantity,
				UnitCost:        line.UnitCost,
			}
			if err := tx.Insert(purchaseItem); err != nil {
				return err
			}
			purchase.Items = append(purchase.Items, purchaseItem)

			if err := receiveStock(tx, item, line.Quantity, line.UnitCost, models.StockMovementPurchase, purchase.ID); err != nil {
				return err
			}
		}

		return appendEvent(ctx, tx, "purchase", purchase.ID, "recorded", purchase)
	})
	if err != nil {
		return nil, err
	}
	l.info("RecordPurchase", "purchase recorded", map[string]any{"purchase_id": purchase.ID, "lines": len(purchase.Items)})
	return purchase, nil
}

func purchaseItemNames(input *models.NewPurchase) []string {
	names := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		names = append(names, item.Name)
	}
	return utils.UniqueSlice(names)
}

// lockItemsByName locks the already existing items among names and returns
// them keyed by the name they were looked up with, which may differ in case
// from the stored name under a case-insensitive collation. Names without an
// item are left out.
func lockItemsByName(tx Tx, names []string) (map[string]*models.InventoryItem, error) {
	idByName := make(map[string]int, len(names))
	ids := make([]int, 0, len(names))
	for _, name := range names {
		item, err := tx.FindInventoryItemByName(name)
		if err != nil {
			if utils.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		idByName[name] = item.ID
		ids = append(ids, item.ID)
	}

	locked, err := tx.LockInventoryItems(ids)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*models.InventoryItem, len(idByName))
	for name, id := range idByName {
		if item, ok := locked[id]; ok {
			byName[name] = item
		}
	}
	return byName, nil
}

// receiveStock blends an incoming lot into item and records the movement.
// item must be locked by the caller.
func receiveStock(tx Tx, item *models.InventoryItem, qty int, unitCost decimal.Decimal, movementType models.StockMovementType, referenceId int) error {
	item.AverageCost = BlendCost(item.Quantity, item.AverageCost, qty, unitCost)
	item.Quantity += qty
	if err := tx.Update(item); err != nil {
		return err
	}
	return tx.Insert(&models.StockMovement{
		InventoryItemId:  item.ID,
		MovementType:     movementType,
		ReferenceId:      referenceId,
		QuantityDelta:    qty,
		UnitCost:         unitCost,
		QuantityAfter:    item.Quantity,
		AverageCostAfter: item.AverageCost,
	})
}

// issueStock removes qty from item at its current average cost. The average
// cost itself does not change.
func issueStock(tx Tx, item *models.InventoryItem, qty int, movementType models.StockMovementType, referenceId int) error {
	if item.Quantity < qty {
		return utils.NewInsufficientStockError(item.ID, item.Name, qty, item.Quantity)
	}
	item.Quantity -= qty
	if err := tx.Update(item); err != nil {
		return err
	}
	return tx.Insert(&models.StockMovement{
		InventoryItemId:  item.ID,
		MovementType:     movementType,
		ReferenceId:      referenceId,
		QuantityDelta:    -qty,
		UnitCost:         item.AverageCost,
		QuantityAfter:    item.Quantity,
		AverageCostAfter: item.AverageCost,
	})
}

func (l *Ledger) ListInventoryItems(ctx context.Context) ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	err := l.snapshot(ctx, "ListInventoryItems", func(r Reader) error {
		var err error
		items, err = r.ListInventoryItems()
		return err
	})
	return items, err
}

func (l *Ledger) ListStockMovements(ctx context.Context, inventoryItemId int) ([]*models.StockMovement, error) {
	var movements []*models.StockMovement
	err := l.snapshot(ctx, "ListStockMovements", func(r Reader) error {
		if _, err := r.GetInventoryItem(inventoryItemId); err != nil {
			return err
		}
		var err error
		movements, err = r.ListStockMovements(inventoryItemId)
		return err
	})
	return movements, err
}

func (l *Ledger) ListPurchases(ctx context.Context) ([]*models.Purchase, error) {
	var purchases []*models.Purchase
	err := l.snapshot(ctx, "ListPurchases", func(r Reader) error {
		var err error
		purchases, err = r.ListPurchases()
		return err
	})
	return purchases, err
}

// SetStockThreshold sets or, with nil, clears the low-stock threshold. It
// does not touch quantity or cost.
func (l *Ledger) SetStockThreshold(ctx context.Context, inventoryItemId int, threshold *int) (*models.InventoryItem, error) {
	if threshold != nil && *threshold < 0 {
		return nil, l.fail("SetStockThreshold", utils.NewValidationError("stock_threshold", "must be greater than or equal to 0"))
	}
	var item *models.InventoryItem
	err := l.atomic(ctx, "SetStockThreshold", func(tx Tx) error {
		locked, err := tx.LockInventoryItems([]int{inventoryItemId})
		if err != nil {
			return err
		}
		found, ok := locked[inventoryItemId]
		if !ok {
			return utils.NewNotFoundError("inventory_item", inventoryItemId)
		}
		found.StockThreshold = threshold
		if err := tx.Update(found); err != nil {
			return err
		}
		item = found
		return nil
	})
	return item, err
}

func optionalId(id int) *int {
	if id <= 0 {
		return nil
	}
	return &id
}
