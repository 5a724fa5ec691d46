package ledger

import (
	"context"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

// CreateSalesOrder fixes TotalValue from the submitted unit prices. Later
// price changes on the product never touch it.
func (l *Ledger) CreateSalesOrder(ctx context.Context, input *models.NewSalesOrder) (*models.SalesOrder, error) {
	if err := input.Validate(); err != nil {
		return nil, l.fail("CreateSalesOrder", err)
	}

	var order *models.SalesOrder
	err := l.atomic(ctx, "CreateSalesOrder", func(tx Tx) error {
		if input.ContactId > 0 {
			if err := requireContact(tx, input.ContactId, models.ContactTypeCustomer); err != nil {
				return err
			}
		}
		productIds := make([]int, 0, len(input.Items))
		for _, item := range input.Items {
			productIds = append(productIds, item.ProductId)
		}
		products, err := tx.GetProducts(productIds)
		if err != nil {
			return err
		}
		for _, id := range productIds {
			if _, ok := products[id]; !ok {
				return utils.NewNotFoundError("product", id)
			}
		}

		order = &models.SalesOrder{
			ContactId:         optionalId(input.ContactId),
			OrderDate:         input.OrderDate,
			TotalValue:        input.TotalValue(),
			PaidAmount:        decimal.Zero,
			FulfillmentStatus: models.FulfillmentStatusPending,
			PaymentStatus:     models.PaymentStatusUnpaid,
			DeliveryStatus:    models.DeliveryStatusUndelivered,
		}
		if err := tx.Insert(order); err != nil {
			return err
		}
		for _, item := range input.Items {
			line := &models.SalesOrderItem{
				SalesOrderId: order.ID,
				ProductId:    item.ProductId,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
			}
			if err := tx.Insert(line); err != nil {
				return err
			}
			order.Items = append(order.Items, line)
		}
		return appendEvent(ctx, tx, "sales_order", order.ID, "created", order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// FulfillSalesOrder ships every line from stock and records the cost of
// goods sold at the items' current average cost. A shortfall on any line
// aborts the whole order.
func (l *Ledger) FulfillSalesOrder(ctx context.Context, salesOrderId int) (*models.SalesOrder, error) {
	release, err := l.lockOrder(ctx, lockTypeSalesOrder, salesOrderId, "FulfillSalesOrder")
	if err != nil {
		return nil, l.fail("FulfillSalesOrder", err)
	}
	defer release()

	var order *models.SalesOrder
	err = l.atomic(ctx, "FulfillSalesOrder", func(tx Tx) error {
		var err error
		order, err = tx.LockSalesOrder(salesOrderId)
		if err != nil {
			return err
		}
		if order.IsFulfilled() {
			return utils.NewPreconditionError("sales_order", order.ID, "sales order %d is already fulfilled", order.ID)
		}

		itemOf, items, err := lockSalesOrderStock(tx, order)
		if err != nil {
			return err
		}

		cogs := decimal.Zero
		for _, line := range order.Items {
			item := items[itemOf[line.ProductId]]
			cogs = cogs.Add(item.AverageCost.Mul(decimal.NewFromInt(int64(line.Quantity))))
			if err := issueStock(tx, item, line.Quantity, models.StockMovementSale, order.ID); err != nil {
				return err
			}
		}

		fulfilledAt := now()
		order.FulfillmentStatus = models.FulfillmentStatusFulfilled
		order.CostOfGoodsSold = decimal.NullDecimal{Decimal: cogs, Valid: true}
		order.FulfilledAt = &fulfilledAt
		if err := tx.Update(order); err != nil {
			return err
		}
		return appendEvent(ctx, tx, "sales_order", order.ID, "fulfilled", order)
	})
	if err != nil {
		return nil, err
	}
	l.info("FulfillSalesOrder", "sales order fulfilled", map[string]any{
		"sales_order_id":     order.ID,
		"cost_of_goods_sold": order.CostOfGoodsSold.Decimal.String(),
	})
	return order, nil
}

// lockSalesOrderStock resolves each line's inventory item, locks them in id
// order and checks the summed demand per item against stock.
func lockSalesOrderStock(tx Tx, order *models.SalesOrder) (map[int]int, map[int]*models.InventoryItem, error) {
	productIds := make([]int, 0, len(order.Items))
	for _, line := range order.Items {
		productIds = append(productIds, line.ProductId)
	}
	products, err := tx.GetProducts(productIds)
	if err != nil {
		return nil, nil, err
	}

	itemOf := make(map[int]int, len(products))
	required := make(map[int]int, len(order.Items))
	itemOrder := make([]int, 0, len(order.Items))
	for _, line := range order.Items {
		product, ok := products[line.ProductId]
		if !ok || product.InventoryItemId == nil {
			return nil, nil, utils.NewPreconditionError("product", line.ProductId, "product %d not found or not linked to inventory", line.ProductId)
		}
		itemId := *product.InventoryItemId
		if _, seen := required[itemId]; !seen {
			itemOrder = append(itemOrder, itemId)
		}
		itemOf[product.ID] = itemId
		required[itemId] += line.Quantity
	}

	items, err := tx.LockInventoryItems(itemOrder)
	if err != nil {
		return nil, nil, err
	}
	for _, itemId := range itemOrder {
		item, ok := items[itemId]
		if !ok {
			return nil, nil, utils.NewPreconditionError("inventory_item", itemId, "inventory item %d no longer exists", itemId)
		}
		if item.Quantity < required[itemId] {
			return nil, nil, utils.NewInsufficientStockError(item.ID, item.Name, required[itemId], item.Quantity)
		}
	}
	return itemOf, items, nil
}

// MarkDelivered records that a fulfilled order left the workshop.
func (l *Ledger) MarkDelivered(ctx context.Context, salesOrderId int) (*models.SalesOrder, error) {
	release, err := l.lockOrder(ctx, lockTypeSalesOrder, salesOrderId, "MarkDelivered")
	if err != nil {
		return nil, l.fail("MarkDelivered", err)
	}
	defer release()

	var order *models.SalesOrder
	err = l.atomic(ctx, "MarkDelivered", func(tx Tx) error {
		var err error
		order, err = tx.LockSalesOrder(salesOrderId)
		if err != nil {
			return err
		}
		if !order.IsFulfilled() {
			return utils.NewPreconditionError("sales_order", order.ID, "sales order %d must be fulfilled before delivery", order.ID)
		}
		if order.DeliveryStatus == models.DeliveryStatusDelivered {
			return utils.NewPreconditionError("sales_order", order.ID, "sales order %d is already delivered", order.ID)
		}
		order.DeliveryStatus = models.DeliveryStatusDelivered
		if err := tx.Update(order); err != nil {
			return err
		}
		return appendEvent(ctx, tx, "sales_order", order.ID, "delivered", map[string]int{"sales_order_id": order.ID})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (l *Ledger) GetSalesOrder(ctx context.Context, salesOrderId int) (*models.SalesOrder, error) {
	var order *models.SalesOrder
	err := l.snapshot(ctx, "GetSalesOrder", func(r Reader) error {
		var err error
		order, err = r.GetSalesOrder(salesOrderId)
		return err
	})
	return order, err
}

func (l *Ledger) ListSalesOrders(ctx context.Context) ([]*models.SalesOrder, error) {
	var orders []*models.SalesOrder
	err := l.snapshot(ctx, "ListSalesOrders", func(r Reader) error {
		var err error
		orders, err = r.ListSalesOrders()
		return err
	})
	return orders, err
}
