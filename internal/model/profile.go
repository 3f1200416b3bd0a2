package model

import "time"

// PartnerProfile is the business profile a partner maintains.
type PartnerProfile struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Location       string    `json:"location"`
	PartnershipFee float64   `json:"partnershipFee"`
	IsApproved     bool      `json:"isApproved"`
	CreatedAt      time.Time `json:"createdAt"`
}

type PartnerFilter struct {
	OwnerID string
	Name    string
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var Genders = []any{GenderMale, GenderFemale, GenderOther}

type SkinTone string

const (
	SkinFair   SkinTone = "fair"
	SkinMedium SkinTone = "medium"
	SkinDark   SkinTone = "dark"
)

var SkinTones = []any{SkinFair, SkinMedium, SkinDark}

// StylerProfile is the personal profile a styler maintains.
type StylerProfile struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	Gender    Gender    `json:"gender"`
	Age       *int      `json:"age,omitempty"`
	Country   string    `json:"country"`
	SkinTone  SkinTone  `json:"skinTone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type StylerFilter struct {
	OwnerID string
	Name    string
	Country string
	Gender  Gender
}
