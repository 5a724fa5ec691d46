package models

import (
	"strings"
	"time"

	"github.com/mmdatafocus/workshop_backend/utils"
)

type Part struct {
	ID              int           `gorm:"primary_key" json:"id"`
	Name            string        `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Kind            PartKind      `gorm:"size:16;not null" json:"kind"`
	InventoryItemId *int          `gorm:"index" json:"inventory_item_id"`
	Recipe          []*PartRecipe `gorm:"foreignKey:AssembledPartId" json:"recipe,omitempty"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p Part) GetId() int {
	return p.ID
}

// PartRecipe is one component line of an assembled part's bill of materials.
// Lines are consumed in ID order.
type PartRecipe struct {
	ID              int `gorm:"primary_key" json:"id"`
	AssembledPartId int `gorm:"index;not null" json:"assembled_part_id"`
	ComponentPartId int `gorm:"index;not null" json:"component_part_id"`
	Quantity        int `gorm:"not null" json:"quantity"`
}

type NewRecipeLine struct {
	ComponentPartId int `json:"component_part_id" validate:"gt=0"`
	Quantity        int `json:"quantity" validate:"gt=0"`
}

type NewPart struct {
	Name                string          `json:"name" validate:"required,max=255"`
	Kind                PartKind        `json:"kind" validate:"required,oneof=raw assembled"`
	InventoryItemId     *int            `json:"inventory_item_id" validate:"omitempty,gt=0"`
	CreateInventoryItem bool            `json:"create_inventory_item"`
	Recipe              []NewRecipeLine `json:"recipe" validate:"dive"`
}

func (input *NewPart) Validate() error {
	input.Name = strings.TrimSpace(input.Name)
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if input.Kind == PartKindRaw && len(input.Recipe) > 0 {
		return utils.NewValidationError("recipe", "a raw part cannot have a recipe")
	}
	if input.InventoryItemId != nil && input.CreateInventoryItem {
		return utils.NewValidationError("inventory_item_id", "cannot link an existing inventory item and create a new one")
	}
	return validateRecipeLines(input.Recipe)
}

// validateRecipeLines rejects repeated components; quantities must be merged
// by the caller instead.
func validateRecipeLines(lines []NewRecipeLine) error {
	seen := make(map[int]bool, len(lines))
	for _, line := range lines {
		if seen[line.ComponentPartId] {
			return utils.NewValidationError("recipe", "component part %d listed more than once", line.ComponentPartId)
		}
		seen[line.ComponentPartId] = true
	}
	return nil
}

type NewPartRecipe struct {
	Recipe []NewRecipeLine `json:"recipe" validate:"required,min=1,dive"`
}

func (input *NewPartRecipe) Validate() error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	return validateRecipeLines(input.Recipe)
}
