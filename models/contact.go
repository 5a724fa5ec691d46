package models

import (
	"strings"
	"time"

	"github.com/mmdatafocus/workshop_backend/utils"
)

type Contact struct {
	ID        int         `gorm:"primary_key" json:"id"`
	Name      string      `gorm:"size:255;not null" json:"name"`
	Type      ContactType `gorm:"size:16;not null;index" json:"type"`
	Phone     string      `gorm:"size:32" json:"phone"`
	Address   string      `gorm:"type:text" json:"address"`
	Notes     string      `gorm:"type:text" json:"notes"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewContact struct {
	Name    string      `json:"name" validate:"required,max=255"`
	Type    ContactType `json:"type" validate:"required,oneof=customer supplier"`
	Phone   string      `json:"phone" validate:"max=32"`
	Address string      `json:"address"`
	Notes   string      `json:"notes"`
}

// Validate normalises the phone number to E.164 using countryCode as the
// default region.
func (input *NewContact) Validate(countryCode string) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, countryCode); err != nil {
			return utils.NewValidationError("phone", "%v", err)
		}
		input.Phone = utils.FormatPhoneNumber(input.Phone, countryCode)
	}
	return nil
}
