package models

import (
	"gorm.io/gorm"
)

// VehicleType values accepted at registration.
const (
	VehicleCar   = "car"
	VehicleBike  = "bike"
	VehicleVan   = "van"
	VehicleTruck = "truck"
)

type Driver struct {
	gorm.Model
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"unique"`
	Password    string `json:"-"` // bcrypt hash, never serialized
	PhoneNumber string `json:"phoneNumber"`

	IsOnline    bool `json:"isOnline" gorm:"default:false"`
	IsAvailable bool `json:"isAvailable" gorm:"default:true"`

	VehicleType string `json:"vehicleType"`
	PlateNumber string `json:"plateNumber"`

	Rating          float64 `json:"rating" gorm:"default:0"`
	TotalDeliveries int     `json:"totalDeliveries" gorm:"default:0"`
}

// ValidVehicleType reports whether t is one of the recognized vehicle types.
func ValidVehicleType(t string) bool {
	switch t {
	case VehicleCar, VehicleBike, VehicleVan, VehicleTruck:
		return true
	}
	return false
}
