package models

import (
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model

	TenantID   uint `gorm:"index;column:tenant_id" json:"tenant_id"`
	CategoryID uint `gorm:"index;column:category_id" json:"category_id"`

	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Address     string `gorm:"type:text" json:"address"`
	City        string `gorm:"size:100;index" json:"city"`

	Tenant   User     `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Rooms    []Room   `gorm:"foreignKey:PropertyID" json:"rooms,omitempty"`
}
