package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	PropertyID uint   `gorm:"index;column:property_id" json:"property_id"`
	Name       string `gorm:"column:name;size:100" json:"name"`

	// BasePrice is the nightly price before any peak season rate applies.
	BasePrice   float64 `gorm:"column:base_price" json:"base_price"`
	Capacity    int     `gorm:"column:capacity;default:2" json:"capacity"`
	Description string  `gorm:"type:text" json:"description"`

	Property        Property         `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	PeakSeasonRates []PeakSeasonRate `gorm:"foreignKey:RoomID" json:"peak_season_rates,omitempty"`
}
