package model

import "time"

// DefaultClothImage is stored when a cloth is created without an image.
const DefaultClothImage = "https://yourcdn.com/default-cloth.jpg"

type OwnerType string

const (
	OwnerPartner OwnerType = "partner"
	OwnerStyler  OwnerType = "styler"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) IsValid() bool { return v == VisibilityPublic || v == VisibilityPrivate }

// Cloth is a wardrobe item owned either by a partner (catalogue) or a styler
// (personal wardrobe). The two live in separate tables with the same shape.
type Cloth struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Color      string          `json:"color"`
	Category   string          `json:"category"`
	Price      float64         `json:"price"`
	OwnerType  OwnerType       `json:"ownerType"`
	OwnerID    string          `json:"ownerId"`
	Visibility Visibility      `json:"visibility"`
	Owner      *AccountSummary `json:"owner,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ClothFilter holds the optional listing filters for clothes.
type ClothFilter struct {
	Search     string
	Category   string
	Color      string
	MinPrice   *float64
	MaxPrice   *float64
	OwnerID    string
	Visibility Visibility
}
