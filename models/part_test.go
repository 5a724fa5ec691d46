package models

import (
	"testing"

	"github.com/mmdatafocus/workshop_backend/utils"
)

func TestNewPartValidate(t *testing.T) {
	itemId := 4
	tests := []struct {
		name  string
		input NewPart
		ok    bool
	}{
		{"raw", NewPart{Name: " Steel Rod ", Kind: PartKindRaw}, true},
		{"assembled with recipe", NewPart{Name: "Frame", Kind: PartKindAssembled, Recipe: []NewRecipeLine{{ComponentPartId: 1, Quantity: 2}}}, true},
		{"unknown kind", NewPart{Name: "Frame", Kind: "welded"}, false},
		{"raw with recipe", NewPart{Name: "Rod", Kind: PartKindRaw, Recipe: []NewRecipeLine{{ComponentPartId: 1, Quantity: 1}}}, false},
		{"blank name", NewPart{Name: "   ", Kind: PartKindRaw}, false},
		{"link and create", NewPart{Name: "Rod", Kind: PartKindRaw, InventoryItemId: &itemId, CreateInventoryItem: true}, false},
		{"zero quantity line", NewPart{Name: "Frame", Kind: PartKindAssembled, Recipe: []NewRecipeLine{{ComponentPartId: 1}}}, false},
		{"repeated component", NewPart{Name: "Frame", Kind: PartKindAssembled, Recipe: []NewRecipeLine{{ComponentPartId: 1, Quantity: 1}, {ComponentPartId: 1, Quantity: 2}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !utils.IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestNewPartValidateTrimsName(t *testing.T) {
	input := NewPart{Name: "  Steel Rod\t", Kind: PartKindRaw}
	if err := input.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if input.Name != "Steel Rod" {
		t.Fatalf("name = %q", input.Name)
	}
}
