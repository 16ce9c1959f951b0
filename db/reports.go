package db

import (
	"context"
	"fmt"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
)

// ReportAssets returns every asset in the filter joined with the category
// and location data the depreciation report needs.
func (a *AssetDB) ReportAssets(ctx context.Context, f models.ReportFilter) ([]models.ReportAsset, error) {
	rows, err := a.DB.QueryContext(ctx, `
		SELECT `+assetColumns+`, c.name, l.name, c.depreciation_rate, c.useful_life_years
		FROM assets a
		INNER JOIN categories c ON c.id = a.category_id
		INNER JOIN locations l ON l.id = a.location_id
		WHERE ($1::uuid IS NULL OR a.location_id = $1)
			AND ($2::uuid IS NULL OR a.category_id = $2)
		ORDER BY a.sticker_seq`, f.LocationID, f.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving report assets: %w", err)
	}
	defer rows.Close()

	out := []models.ReportAsset{}
	for rows.Next() {
		var ra models.ReportAsset
		as, err := scanAsset(rows, &ra.CategoryName, &ra.LocationName, &ra.DepreciationRate, &ra.UsefulLifeYears)
		if err != nil {
			return nil, fmt.Errorf("error scanning report asset: %w", err)
		}
		ra.Asset = *as
		out = append(out, ra)
	}
	return out, rows.Err()
}
