package models

import (
	"strings"
	"time"

	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          int                 `gorm:"primary_key" json:"id"`
	Name        string              `gorm:"size:255;not null" json:"name"`
	PaymentType EmployeePaymentType `gorm:"size:16;not null" json:"payment_type"`
	PaymentRate decimal.Decimal     `gorm:"type:decimal(20,4);not null;default:0" json:"payment_rate"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewEmployee struct {
	Name        string              `json:"name" validate:"required,max=255"`
	PaymentType EmployeePaymentType `json:"payment_type" validate:"required,oneof=daily hourly"`
	PaymentRate decimal.Decimal     `json:"payment_rate" validate:"gte=0"`
}

func (input *NewEmployee) Validate() error {
	input.Name = strings.TrimSpace(input.Name)
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	return utils.ValidateMoneyScale("payment_rate", input.PaymentRate)
}
