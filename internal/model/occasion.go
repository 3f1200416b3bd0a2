package model

import "time"

// DefaultOccasionType is used when an occasion is created without a type.
const DefaultOccasionType = "other"

type Occasion struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Title       string          `json:"title"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
	Location    string          `json:"location"`
	DressCode   string          `json:"dressCode"`
	Notes       string          `json:"notes"`
	ClothesList []string        `json:"clothesList"`
	User        *AccountSummary `json:"user,omitempty"`
	Clothes     []Cloth         `json:"clothes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type OccasionFilter struct {
	UserID string
	Type   string
}
