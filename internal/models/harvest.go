package models

import "time"

// Harvest is a traceable batch of produce, identified by its QR batch id.
type Harvest struct {
	BatchID     string    `json:"batchId"`
	CropType    string    `json:"cropType" validate:"required"`
	Quantity    float64   `json:"quantity" validate:"gt=0"`
	Unit        string    `json:"unit" validate:"required"`
	Quality     string    `json:"quality" validate:"omitempty,oneof=premium excellent good fair poor"`
	Location    string    `json:"location" validate:"required"`
	HarvestDate time.Time `json:"harvestDate" validate:"required"`
	Farmer      Party     `json:"farmer"`
	Images      []string  `json:"images,omitempty" validate:"omitempty,dive,url"`
	Status      string    `json:"status,omitempty"`
}

// HarvestVerification is what the QR lookup returns.
type HarvestVerification struct {
	Verified bool    `json:"verified"`
	Harvest  Harvest `json:"harvest"`
}
