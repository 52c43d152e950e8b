package models

import "time"

type FarmerStatus string

const (
	FarmerActive    FarmerStatus = "active"
	FarmerInactive  FarmerStatus = "inactive"
	FarmerSuspended FarmerStatus = "suspended"
)

type Farmer struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	Location      string       `json:"location"`
	Status        FarmerStatus `json:"status"`
	JoinedAt      time.Time    `json:"joinedAt"`
	LastActivity  time.Time    `json:"lastActivity"`
	TotalHarvests int          `json:"totalHarvests"`
	TotalEarnings float64      `json:"totalEarnings"`
	Partner       string       `json:"partner"`
}
