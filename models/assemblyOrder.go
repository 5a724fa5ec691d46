package models

import (
	"time"

	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

// AssemblyOrder moves pending → fulfilled exactly once.
type AssemblyOrder struct {
	ID          int                 `gorm:"primary_key" json:"id"`
	PartId      int                 `gorm:"index;not null" json:"part_id"`
	Quantity    int                 `gorm:"not null" json:"quantity"`
	Status      AssemblyOrderStatus `gorm:"size:16;not null;default:pending" json:"status"`
	UnitCost    decimal.NullDecimal `gorm:"type:decimal(38,16)" json:"unit_cost"`
	FulfilledAt *time.Time          `json:"fulfilled_at"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o AssemblyOrder) GetId() int {
	return o.ID
}

func (o AssemblyOrder) IsFulfilled() bool {
	return o.Status == AssemblyOrderStatusFulfilled
}

// AssemblyOrderView is the list projection: the order joined with its part name.
type AssemblyOrderView struct {
	AssemblyOrder
	PartName string `json:"part_name"`
}

type NewAssemblyOrder struct {
	PartId   int `json:"part_id" validate:"gt=0"`
	Quantity int `json:"quantity" validate:"gt=0"`
}

func (input *NewAssemblyOrder) Validate() error {
	return utils.ValidateStruct(input)
}
