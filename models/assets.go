package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetStatus is the lifecycle state of an asset.
type AssetStatus string

const (
	AssetAvailable AssetStatus = "available"
	AssetAssigned  AssetStatus = "assigned"
	AssetDisposed  AssetStatus = "disposed"
)

// Valid reports whether s is a known status.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetAvailable, AssetAssigned, AssetDisposed:
		return true
	}
	return false
}

// AssignmentType says whether an asset is held by a user or a project.
type AssignmentType string

const (
	AssignedToUser    AssignmentType = "user"
	AssignedToProject AssignmentType = "project"
)

// Asset is a registered piece of organisational property.
type Asset struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	StickerSeq        string          `json:"sticker_seq"`
	Description       string          `json:"description,omitempty"`
	CategoryID        uuid.UUID       `json:"category_id"`
	VendorID          *uuid.UUID      `json:"vendor_id,omitempty"`
	LocationID        uuid.UUID       `json:"location_id"`
	ProgrammeID       *uuid.UUID      `json:"programme_id,omitempty"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	Price             decimal.Decimal `json:"price"`
	SalvageValue      decimal.Decimal `json:"salvage_value"`
	InvoiceKey        *string         `json:"invoice_key,omitempty"`
	Status            AssetStatus     `json:"status"`
	AssignmentType    *AssignmentType `json:"assignment_type,omitempty"`
	AssignedUserID    *uuid.UUID      `json:"assigned_user_id,omitempty"`
	AssignedProjectID *uuid.UUID      `json:"assigned_project_id,omitempty"`
	AssignedAt        *time.Time      `json:"assigned_at,omitempty"`
	CreatedBy         uuid.UUID       `json:"created_by"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// AssetRequest is the payload of the add and edit asset forms.
type AssetRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryID   uuid.UUID       `json:"category_id"`
	VendorID     *uuid.UUID      `json:"vendor_id,omitempty"`
	LocationID   uuid.UUID       `json:"location_id"`
	ProgrammeID  *uuid.UUID      `json:"programme_id,omitempty"`
	PurchaseDate string          `json:"purchase_date"`
	Price        decimal.Decimal `json:"price"`
	SalvageValue decimal.Decimal `json:"salvage_value"`
}

// AssignRequest names exactly one assignee.
type AssignRequest struct {
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
}

// AssetFilter narrows an asset listing.
type AssetFilter struct {
	Search            string
	Status            AssetStatus
	CategoryID        *uuid.UUID
	LocationID        *uuid.UUID
	ProgrammeID       *uuid.UUID
	AssignedUserID    *uuid.UUID
	AssignedProjectID *uuid.UUID
	// HolderID restricts results to assets held by the user directly or
	// through a project they are a member of.
	HolderID *uuid.UUID
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

// AssetHistory is one entry of an asset's audit trail.
type AssetHistory struct {
	ID        uuid.UUID  `json:"id"`
	AssetID   uuid.UUID  `json:"asset_id"`
	Action    string     `json:"action"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
	Details   string     `json:"details,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// InvoiceResponse carries a temporary download link for an asset invoice.
type InvoiceResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}
