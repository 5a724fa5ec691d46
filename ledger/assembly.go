package ledger

import (
	"context"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

func (l *Ledger) CreateAssemblyOrder(ctx context.Context, input *models.NewAssemblyOrder) (*models.AssemblyOrder, error) {
	if err := input.Validate(); err != nil {
		return nil, l.fail("CreateAssemblyOrder", err)
	}

	var order *models.AssemblyOrder
	err := l.atomic(ctx, "CreateAssemblyOrder", func(tx Tx) error {
		part, err := tx.GetPart(input.PartId)
		if err != nil {
			return err
		}
		if part.Kind != models.PartKindAssembled {
			return utils.NewValidationError("part_id", "part %q is not an assembled part", part.Name)
		}
		order = &models.AssemblyOrder{
			PartId:   part.ID,
			Quantity: input.Quantity,
			Status:   models.AssemblyOrderStatusPending,
		}
		if err := tx.Insert(order); err != nil {
			return err
		}
		return appendEvent(ctx, tx, "assembly_order", order.ID, "created", order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// assemblyPlan is the checked outcome of an assembly order's preconditions.
type assemblyPlan struct {
	order    *models.AssemblyOrder
	part     *models.Part
	recipe   []*models.PartRecipe
	itemOf   map[int]int // component part id → inventory item id
	required map[int]int // inventory item id → total units consumed
	items    map[int]*models.InventoryItem
	outputId int
}

// FulfillAssemblyOrder consumes the recipe components for the whole order
// and receives the assembled units at their component cost. All
// preconditions are checked before the first write, so a failure leaves
// every quantity untouched.
func (l *Ledger) FulfillAssemblyOrder(ctx context.Context, assemblyOrderId int) (*models.AssemblyOrder, error) {
	release, err := l.lockOrder(ctx, lockTypeAssemblyOrder, assemblyOrderId, "FulfillAssemblyOrder")
	if err != nil {
		return nil, l.fail("FulfillAssemblyOrder", err)
	}
	defer release()

	var order *models.AssemblyOrder
	err = l.atomic(ctx, "FulfillAssemblyOrder", func(tx Tx) error {
		plan, err := planAssembly(tx, assemblyOrderId)
		if err != nil {
			return err
		}
		order = plan.order

		orderQty := decimal.NewFromInt(int64(order.Quantity))
		totalComponentCost := decimal.Zero
		for _, line := range plan.recipe {
			item := plan.items[plan.itemOf[line.ComponentPartId]]
			requiredQty := line.Quantity * order.Quantity
			totalComponentCost = totalComponentCost.Add(item.AverageCost.Mul(decimal.NewFromInt(int64(requiredQty))))
			if err := issueStock(tx, item, requiredQty, models.StockMovementAssemblyConsumption, order.ID); err != nil {
				return err
			}
		}

		unitCost := totalComponentCost.Div(orderQty)
		output := plan.items[plan.outputId]
		if err := receiveStock(tx, output, order.Quantity, unitCost, models.StockMovementAssemblyOutput, order.ID); err != nil {
			return err
		}

		fulfilledAt := now()
		order.Status = models.AssemblyOrderStatusFulfilled
		order.UnitCost = decimal.NullDecimal{Decimal: unitCost, Valid: true}
		order.FulfilledAt = &fulfilledAt
		if err := tx.Update(order); err != nil {
			return err
		}
		return appendEvent(ctx, tx, "assembly_order", order.ID, "fulfilled", order)
	})
	if err != nil {
		return nil, err
	}
	l.info("FulfillAssemblyOrder", "assembly order fulfilled", map[string]any{
		"assembly_order_id": order.ID,
		"unit_cost":         order.UnitCost.Decimal.String(),
	})
	return order, nil
}

// planAssembly locks the order and every inventory row it touches (ascending
// id) and checks all preconditions. It never writes.
func planAssembly(tx Tx, assemblyOrderId int) (*assemblyPlan, error) {
	order, err := tx.LockAssemblyOrder(assemblyOrderId)
	if err != nil {
		return nil, err
	}
	if order.IsFulfilled() {
		return nil, utils.NewPreconditionError("assembly_order", order.ID, "assembly order %d is already fulfilled", order.ID)
	}

	part, err := tx.GetPart(order.PartId)
	if err != nil {
		return nil, err
	}
	if part.Kind != models.PartKindAssembled {
		return nil, utils.NewPreconditionError("part", part.ID, "part %q is not an assembled part", part.Name)
	}
	recipe, err := tx.PartRecipe(part.ID)
	if err != nil {
		return nil, err
	}
	if len(recipe) == 0 {
		return nil, utils.NewPreconditionError("part", part.ID, "no recipe found for part %q", part.Name)
	}
	if part.InventoryItemId == nil {
		return nil, utils.NewPreconditionError("part", part.ID, "assembled part %q is not linked to an inventory item", part.Name)
	}

	componentIds := make([]int, 0, len(recipe))
	for _, line := range recipe {
		componentIds = append(componentIds, line.ComponentPartId)
	}
	components, err := tx.GetParts(componentIds)
	if err != nil {
		return nil, err
	}

	plan := &assemblyPlan{
		order:    order,
		part:     part,
		recipe:   recipe,
		itemOf:   make(map[int]int, len(recipe)),
		required: make(map[int]int, len(recipe)),
		outputId: *part.InventoryItemId,
	}
	itemOrder := make([]int, 0, len(recipe))
	for _, line := range recipe {
		component, ok := components[line.ComponentPartId]
		if !ok {
			return nil, utils.NewPreconditionError("part", line.ComponentPartId, "component part %d of %q no longer exists", line.ComponentPartId, part.Name)
		}
		if component.InventoryItemId == nil {
			return nil, utils.NewPreconditionError("part", component.ID, "component part %q is not an inventory item", component.Name)
		}
		itemId := *component.InventoryItemId
		if itemId == plan.outputId {
			return nil, utils.NewPreconditionError("part", component.ID, "component part %q shares its inventory item with the assembled part", component.Name)
		}
		if _, seen := plan.required[itemId]; !seen {
			itemOrder = append(itemOrder, itemId)
		}
		plan.itemOf[component.ID] = itemId
		plan.required[itemId] += line.Quantity * order.Quantity
	}

	plan.items, err = tx.LockInventoryItems(append(itemOrder, plan.outputId))
	if err != nil {
		return nil, err
	}
	if _, ok := plan.items[plan.outputId]; !ok {
		return nil, utils.NewPreconditionError("inventory_item", plan.outputId, "inventory item %d of part %q no longer exists", plan.outputId, part.Name)
	}
	for _, itemId := range itemOrder {
		item, ok := plan.items[itemId]
		if !ok {
			return nil, utils.NewPreconditionError("inventory_item", itemId, "inventory item %d no longer exists", itemId)
		}
		if item.Quantity < plan.required[itemId] {
			return nil, utils.NewInsufficientStockError(item.ID, item.Name, plan.required[itemId], item.Quantity)
		}
	}
	return plan, nil
}

func (l *Ledger) ListAssemblyOrders(ctx context.Context) ([]*models.AssemblyOrderView, error) {
	var orders []*models.AssemblyOrderView
	err := l.snapshot(ctx, "ListAssemblyOrders", func(r Reader) error {
		var err error
		orders, err = r.ListAssemblyOrders()
		return err
	})
	return orders, err
}
