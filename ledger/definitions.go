package ledger

import (
	"context"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

// AddPart creates a part and its recipe in one unit. It has no stock effect
// apart from optionally creating the part's (empty) inventory item.
func (l *Ledger) AddPart(ctx context.Context, input *models.NewPart) (*models.Part, error) {
	if err := input.Validate(); err != nil {
		return nil, l.fail("AddPart", err)
	}

	var part *models.Part
	err := l.atomic(ctx, "AddPart", func(tx Tx) error {
		exists, err := tx.PartNameExists(input.Name)
		if err != nil {
			return err
		}
		if exists {
			return utils.NewValidationError("name", "part %q already exists", input.Name)
		}
		if err := requireParts(tx, recipeComponentIds(input.Recipe)); err != nil {
			return err
		}
		inventoryItemId, err := resolveInventoryLink(tx, input.Name, input.InventoryItemId, input.CreateInventoryItem)
		if err != nil {
			return err
		}

		part = &models.Part{
			Name:            input.Name,
			Kind:            input.Kind,
			InventoryItemId: inventoryItemId,
		}
		if err := tx.Insert(part); err != nil {
			return err
		}
		for _, line := range input.Recipe {
			recipeLine := &models.PartRecipe{
				AssembledPartId: part.ID,
				ComponentPartId: line.ComponentPartId,
				Quantity:        line.Quantity,
			}
			if err := tx.Insert(recipeLine); err != nil {
				return err
			}
			part.Recipe = append(part.Recipe, recipeLine)
		}
		return appendEvent(ctx, tx, "part", part.ID, "created", part)
	})
	if err != nil {
		return nil, err
	}
	return part, nil
}

// SetPartRecipe replaces the recipe of an assembled part. Orders already
// fulfilled keep the cost they were built at; pending orders use the new
// recipe when fulfilled.
func (l *Ledger) SetPartRecipe(ctx context.Context, partId int, input *models.NewPartRecipe) (*models.Part, error) {
	if err := input.Validate(); err != nil {
		return nil, l.fail("SetPartRecipe", err)
	}

	var part *models.Part
	err := l.atomic(ctx, "SetPartRecipe", func(tx Tx) error {
		found, err := tx.GetPart(partId)
		if err != nil {
			return err
		}
		if found.Kind != models.PartKindAssembled {
			return utils.NewValidationError("recipe", "part %q is raw and cannot have a recipe", found.Name)
		}
		componentIds := recipeComponentIds(input.Recipe)
		if err := requireParts(tx, componentIds); err != nil {
			return err
		}
		graph, err := tx.PartRecipeGraph()
		if err != nil {
			return err
		}
		graph[partId] = componentIds
		if err := detectRecipeCycle(graph); err != nil {
			return err
		}

		lines := make([]*models.PartRecipe, 0, len(input.Recipe))
		for _, line := range input.Recipe {
			lines = append(lines, &models.PartRecipe{
				AssembledPartId: partId,
				ComponentPartId: line.ComponentPartId,
				Quantity:        line.Quantity,
			})
		}
		if err := tx.ReplacePartRecipe(partId, lines); err != nil {
			return err
		}
		found.Recipe = lines
		part = found
		return appendEvent(ctx, tx, "part", part.ID, "recipe_replaced", part)
	})
	if err != nil {
		return nil, err
	}
	return part, nil
}

// AddProduct creates a product and its recipe of parts in one unit.
func (l *Ledger) AddProduct(ctx context.Context, input *models.NewProduct) (*models.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, l.fail("AddProduct", err)
	}

	var product *models.Product
	err := l.atomic(ctx, "AddProduct", func(tx Tx) error {
		exists, err := tx.ProductNameExists(input.Name)
		if err != nil {
			return err
		}
		if exists {
			return utils.NewValidationError("name", "product %q already exists", input.Name)
		}
		if err := requireParts(tx, recipeComponentIds(input.Recipe)); err != nil {
			return err
		}
		inventoryItemId, err := resolveInventoryLink(tx, input.Name, input.InventoryItemId, input.CreateInventoryItem)
		if err != nil {
			return err
		}

		product = &models.Product{
			Name:            input.Name,
			SalePrice:       input.SalePrice,
			InventoryItemId: inventoryItemId,
		}
		if err := tx.Insert(product); err != nil {
			return err
		}
		for _, line := range input.Recipe {
			recipeLine := &models.ProductRecipe{
				ProductId: product.ID,
				PartId:    line.ComponentPartId,
				Quantity:  line.Quantity,
			}
			if err := tx.Insert(recipeLine); err != nil {
				return err
			}
			product.Recipe = append(product.Recipe, recipeLine)
		}
		return appendEvent(ctx, tx, "product", product.ID, "created", product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// LinkPartInventory points a part at the inventory item that holds its stock.
func (l *Ledger) LinkPartInventory(ctx context.Context, partId int, inventoryItemId int) (*models.Part, error) {
	var part *models.Part
	err := l.atomic(ctx, "LinkPartInventory", func(tx Tx) error {
		found, err := tx.GetPart(partId)
		if err != nil {
			return err
		}
		if _, err := tx.GetInventoryItem(inventoryItemId); err != nil {
			return err
		}
		found.InventoryItemId = &inventoryItemId
		if err := tx.Update(found); err != nil {
			return err
		}
		part = found
		return appendEvent(ctx, tx, "part", part.ID, "inventory_linked", map[string]int{"inventory_item_id": inventoryItemId})
	})
	return part, err
}

func (l *Ledger) LinkProductInventory(ctx context.Context, productId int, inventoryItemId int) (*models.Product, error) {
	var product *models.Product
	err := l.atomic(ctx, "LinkProductInventory", func(tx Tx) error {
		found, err := tx.GetProduct(productId)
		if err != nil {
			return err
		}
		if _, err := tx.GetInventoryItem(inventoryItemId); err != nil {
			return err
		}
		found.InventoryItemId = &inventoryItemId
		if err := tx.Update(found); err != nil {
			return err
		}
		product = found
		return appendEvent(ctx, tx, "product", product.ID, "inventory_linked", map[string]int{"inventory_item_id": inventoryItemId})
	})
	return product, err
}

func (l *Ledger) ListParts(ctx context.Context) ([]*models.Part, error) {
	var parts []*models.Part
	err := l.snapshot(ctx, "ListParts", func(r Reader) error {
		var err error
		parts, err = r.ListParts()
		return err
	})
	return parts, err
}

func (l *Ledger) ListProducts(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := l.snapshot(ctx, "ListProducts", func(r Reader) error {
		var err error
		products, err = r.ListProducts()
		return err
	})
	return products, err
}

func recipeComponentIds(lines []models.NewRecipeLine) []int {
	ids := make([]int, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ComponentPartId)
	}
	return ids
}

func requireParts(tx Tx, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	parts, err := tx.GetParts(ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := parts[id]; !ok {
			return utils.NewNotFoundError("part", id)
		}
	}
	return nil
}

// resolveInventoryLink returns the inventory item id a new part or product
// should point at: the given one, one named after it (created empty when
// missing), or none.
func resolveInventoryLink(tx Tx, name string, inventoryItemId *int, create bool) (*int, error) {
	if inventoryItemId != nil {
		if _, err := tx.GetInventoryItem(*inventoryItemId); err != nil {
			return nil, err
		}
		return inventoryItemId, nil
	}
	if !create {
		return nil, nil
	}
	item, err := tx.FindInventoryItemByName(name)
	if err != nil {
		if !utils.IsNotFound(err) {
			return nil, err
		}
		item = &models.InventoryItem{Name: name, AverageCost: decimal.Zero}
		if err := tx.Insert(item); err != nil {
			return nil, err
		}
	}
	return &item.ID, nil
}

// detectRecipeCycle walks the part → components graph depth first and fails
// on the first part that (transitively) requires itself.
func detectRecipeCycle(graph map[int][]int) error {
	visited := make(map[int]bool)
	onStack := make(map[int]bool)

	var visit func(partId int) error
	visit = func(partId int) error {
		visited[partId] = true
		onStack[partId] = true
		for _, componentId := range graph[partId] {
			if onStack[componentId] {
				return utils.NewValidationError("recipe", "part %d would (transitively) require itself through part %d", componentId, partId)
			}
			if !visited[componentId] {
				if err := visit(componentId); err != nil {
					return err
				}
			}
		}
		onStack[partId] = false
		return nil
	}

	for partId := range graph {
		if !visited[partId] {
			if err := visit(partId); err != nil {
				return err
			}
		}
	}
	return nil
}
