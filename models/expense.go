package models

import (
	"strings"
	"time"

	"github.com/mmdatafocus/workshop_backend/utils"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID              int             `gorm:"primary_key" json:"id"`
	Description     string          `gorm:"size:255;not null" json:"description"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	ExpenseDate     time.Time       `gorm:"type:date;not null;index" json:"expense_date"`
	SalaryPaymentId *int            `gorm:"index" json:"salary_payment_id"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewExpense struct {
	Description string          `json:"description" validate:"required,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	ExpenseDate time.Time       `json:"expense_date"`
}

func (input *NewExpense) Validate() error {
	input.Description = strings.TrimSpace(input.Description)
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if err := utils.ValidateMoneyScale("amount", input.Amount); err != nil {
		return err
	}
	if input.ExpenseDate.IsZero() {
		return utils.NewValidationError("expense_date", "is required")
	}
	input.ExpenseDate = utils.DateOnly(input.ExpenseDate)
	return nil
}

type SalaryPayment struct {
	ID              int             `gorm:"primary_key" json:"id"`
	EmployeeId      int             `gorm:"index;not null" json:"employee_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	PaymentDate     time.Time       `gorm:"type:date;not null" json:"payment_date"`
	PeriodStartDate time.Time       `gorm:"type:date;not null" json:"period_start_date"`
	PeriodEndDate   time.Time       `gorm:"type:date;not null" json:"period_end_date"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewSalaryPayment struct {
	EmployeeId      int             `json:"employee_id" validate:"gt=0"`
	Amount          decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentDate     time.Time       `json:"payment_date"`
	PeriodStartDate time.Time       `json:"period_start_date"`
	PeriodEndDate   time.Time       `json:"period_end_date"`
}

func (input *NewSalaryPayment) Validate() error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if err := utils.ValidateMoneyScale("amount", input.Amount); err != nil {
		return err
	}
	if input.PaymentDate.IsZero() {
		return utils.NewValidationError("payment_date", "is required")
	}
	if input.PeriodStartDate.IsZero() || input.PeriodEndDate.IsZero() {
		return utils.NewValidationError("period_start_date", "salary period is required")
	}
	input.PaymentDate = utils.DateOnly(input.PaymentDate)
	input.PeriodStartDate = utils.DateOnly(input.PeriodStartDate)
	input.PeriodEndDate = utils.DateOnly(input.PeriodEndDate)
	if input.PeriodEndDate.Before(input.PeriodStartDate) {
		return utils.NewValidationError("period_end_date", "must not be before period_start_date")
	}
	return nil
}
