package ledger_test

import (
	"context"
	"testing"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
)

func TestAddPartRejectsDuplicatesAndBadRecipes(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	steel := rawPart(t, l, "Steel")

	tests := []struct {
		name  string
		input *models.NewPart
		check func(error) bool
	}{
		{"duplicate name", &models.NewPart{Name: "Steel", Kind: models.PartKindRaw}, utils.IsValidation},
		{"unknown kind", &models.NewPart{Name: "Odd", Kind: "virtual"}, utils.IsValidation},
		{"raw with recipe", &models.NewPart{Name: "Odd", Kind: models.PartKindRaw, Recipe: []models.NewRecipeLine{{ComponentPartId: steel.ID, Quantity: 1}}}, utils.IsValidation},
		{"repeated component", &models.NewPart{Name: "Odd", Kind: models.PartKindAssembled, Recipe: []models.NewRecipeLine{{ComponentPartId: steel.ID, Quantity: 1}, {ComponentPartId: steel.ID, Quantity: 2}}}, utils.IsValidation},
		{"zero recipe quantity", &models.NewPart{Name: "Odd", Kind: models.PartKindAssembled, Recipe: []models.NewRecipeLine{{ComponentPartId: steel.ID, Quantity: 0}}}, utils.IsValidation},
		{"missing component", &models.NewPart{Name: "Odd", Kind: models.PartKindAssembled, Recipe: []models.NewRecipeLine{{ComponentPartId: 999, Quantity: 1}}}, utils.IsNotFound},
		{"missing inventory item", &models.NewPart{Name: "Odd", Kind: models.PartKindRaw, InventoryItemId: intPtr(999)}, utils.IsNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.AddPart(ctx, tt.input); !tt.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	parts, err := l.ListParts(ctx)
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("parts = %d, want only Steel", len(parts))
	}
}

func TestSetPartRecipeRejectsCycles(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	steel := rawPart(t, l, "Steel")
	frame := assembledPart(t, l, "Frame", models.NewRecipeLine{ComponentPartId: steel.ID, Quantity: 2})
	cart := assembledPart(t, l, "Cart", models.NewRecipeLine{ComponentPartId: frame.ID, Quantity: 1})

	if _, err := l.SetPartRecipe(ctx, frame.ID, &models.NewPartRecipe{Recipe: []models.NewRecipeLine{{ComponentPartId: cart.ID, Quantity: 1}}}); !utils.IsValidation(err) {
		t.Fatalf("cycle err = %v, want ValidationError", err)
	}
	if _, err := l.SetPartRecipe(ctx, frame.ID, &models.NewPartRecipe{Recipe: []models.NewRecipeLine{{ComponentPartId: frame.ID, Quantity: 1}}}); !utils.IsValidation(err) {
		t.Fatalf("self reference err = %v, want ValidationError", err)
	}
	if _, err := l.SetPartRecipe(ctx, steel.ID, &models.NewPartRecipe{Recipe: []models.NewRecipeLine{{ComponentPartId: frame.ID, Quantity: 1}}}); !utils.IsValidation(err) {
		t.Fatalf("raw part recipe err = %v, want ValidationError", err)
	}

	bolt := rawPart(t, l, "Bolt")
	updated, err := l.SetPartRecipe(ctx, frame.ID, &models.NewPartRecipe{Recipe: []models.NewRecipeLine{
		{ComponentPartId: steel.ID, Quantity: 3},
		{ComponentPartId: bolt.ID, Quantity: 8},
	}})
	if err != nil {
		t.Fatalf("SetPartRecipe: %v", err)
	}
	if len(updated.Recipe) != 2 {
		t.Fatalf("recipe lines = %d, want 2", len(updated.Recipe))
	}

	parts, err := l.ListParts(ctx)
	if err != nil {
		t.Fatalf("ListParts: %v", err)
	}
	for _, part := range parts {
		if part.ID == frame.ID && (len(part.Recipe) != 2 || part.Recipe[0].Quantity != 3) {
			t.Fatalf("stored frame recipe = %+v", part.Recipe)
		}
	}
}

func TestAddProductLinksInventory(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	mustPurchase(t, l, "Chair", 2, "10")
	existing := mustItem(t, l, "Chair")
	leg := rawPart(t, l, "Leg")

	chair, err := l.AddProduct(ctx, &models.NewProduct{
		Name:                "Chair",
		SalePrice:           dec("45"),
		CreateInventoryItem: true,
		Recipe:              []models.NewRecipeLine{{ComponentPartId: leg.ID, Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if chair.InventoryItemId == nil || *chair.InventoryItemId != existing.ID {
		t.Fatalf("inventory item = %v, want existing item %d", chair.InventoryItemId, existing.ID)
	}
	if len(chair.Recipe) != 1 || chair.Recipe[0].PartId != leg.ID {
		t.Fatalf("recipe = %+v", chair.Recipe)
	}

	if _, err := l.AddProduct(ctx, &models.NewProduct{Name: "Chair", SalePrice: dec("1")}); !utils.IsValidation(err) {
		t.Fatalf("duplicate product err = %v, want ValidationError", err)
	}
	if _, err := l.AddProduct(ctx, &models.NewProduct{Name: "Bench", InventoryItemId: &existing.ID, CreateInventoryItem: true}); !utils.IsValidation(err) {
		t.Fatalf("link and create err = %v, want ValidationError", err)
	}
	if _, err := l.LinkProductInventory(ctx, chair.ID, 999); !utils.IsNotFound(err) {
		t.Fatalf("link missing item err = %v, want NotFoundError", err)
	}
	if _, err := l.LinkPartInventory(ctx, 999, existing.ID); !utils.IsNotFound(err) {
		t.Fatalf("link missing part err = %v, want NotFoundError", err)
	}
}

func intPtr(v int) *int {
	return &v
}
