package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Location is a physical site assets are kept at.
type Location struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	StickerShortCode string     `json:"sticker_short_code"`
	Address          string     `json:"address,omitempty"`
	ParentID         *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Programme groups projects under a funding line.
type Programme struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category classifies assets and carries their depreciation parameters.
type Category struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	StickerShortCode string          `json:"sticker_short_code"`
	DepreciationRate decimal.Decimal `json:"depreciation_rate"`
	UsefulLifeYears  int             `json:"useful_life_years"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Vendor supplies assets.
type Vendor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Project is a unit of work that can hold assets and members.
type Project struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	ProgrammeID uuid.UUID   `json:"programme_id"`
	LocationID  uuid.UUID   `json:"location_id"`
	Description string      `json:"description,omitempty"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Members     []uuid.UUID `json:"members"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ProjectRequest is the payload of the add and edit project forms. Dates
// use the YYYY-MM-DD form the date pickers produce.
type ProjectRequest struct {
	Name        string      `json:"name"`
	ProgrammeID uuid.UUID   `json:"programme_id"`
	LocationID  uuid.UUID   `json:"location_id"`
	Description string      `json:"description,omitempty"`
	StartDate   string      `json:"start_date,omitempty"`
	EndDate     string      `json:"end_date,omitempty"`
	Members     []uuid.UUID `json:"members,omitempty"`
}
