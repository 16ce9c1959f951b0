package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CountBy is a labelled count used by dashboard charts.
type CountBy struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardScope restricts dashboard aggregates.
type DashboardScope struct {
	LocationID *uuid.UUID
}

// Dashboard is the role-gated landing page payload.
type Dashboard struct {
	Role              Role            `json:"role"`
	TotalAssets       int             `json:"total_assets"`
	ByStatus          []CountBy       `json:"by_status,omitempty"`
	ByCategory        []CountBy       `json:"by_category,omitempty"`
	ByLocation        []CountBy       `json:"by_location,omitempty"`
	TotalPurchase     decimal.Decimal `json:"total_purchase_value"`
	TotalCurrentValue decimal.Decimal `json:"total_current_value"`
	RecentAssets      []Asset         `json:"recent_assets,omitempty"`
	UserCount         int             `json:"user_count,omitempty"`
	MyAssets          []Asset         `json:"my_assets,omitempty"`
}

// ReportAsset is the joined row the depreciation report is built from.
type ReportAsset struct {
	Asset
	CategoryName     string
	LocationName     string
	DepreciationRate decimal.Decimal
	UsefulLifeYears  int
}

// ReportFilter narrows a depreciation report.
type ReportFilter struct {
	LocationID *uuid.UUID
	CategoryID *uuid.UUID
}

// DepreciationRow is one asset line of the depreciation report.
type DepreciationRow struct {
	AssetID      uuid.UUID       `json:"asset_id"`
	Name         string          `json:"name"`
	StickerSeq   string          `json:"sticker_seq"`
	Category     string          `json:"category"`
	Location     string          `json:"location"`
	Status       AssetStatus     `json:"status"`
	PurchaseDate string          `json:"purchase_date"`
	Price        decimal.Decimal `json:"price"`
	AgeYears     decimal.Decimal `json:"age_years"`
	Accumulated  decimal.Decimal `json:"accumulated_depreciation"`
	CurrentValue decimal.Decimal `json:"current_value"`
}

// DepreciationReport is the full report payload.
type DepreciationReport struct {
	Method            string            `json:"method"`
	AsOf              time.Time         `json:"as_of"`
	Rows              []DepreciationRow `json:"rows"`
	TotalPrice        decimal.Decimal   `json:"total_price"`
	TotalAccumulated  decimal.Decimal   `json:"total_accumulated_depreciation"`
	TotalCurrentValue decimal.Decimal   `json:"total_current_value"`
}
