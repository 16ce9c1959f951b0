package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/shopspring/decimal"
)

// Every dashboard query takes the location scope as $1; NULL means global.

func (a *AssetDB) countBy(ctx context.Context, query string, scope models.DashboardScope) ([]models.CountBy, error) {
	rows, err := a.DB.QueryContext(ctx, query, scope.LocationID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating assets: %w", err)
	}
	defer rows.Close()

	out := []models.CountBy{}
	for rows.Next() {
		var c models.CountBy
		if err := rows.Scan(&c.Key, &c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning aggregate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountAssetsByStatus groups assets in scope by status.
func (a *AssetDB) CountAssetsByStatus(ctx context.Context, scope models.DashboardScope) ([]models.CountBy, error) {
	return a.countBy(ctx, `
		SELECT status, status, count(*) FROM assets
		WHERE $1::uuid IS NULL OR location_id = $1
		GROUP BY status ORDER BY status`, scope)
}

// CountAssetsByCategory groups assets in scope by category.
func (a *AssetDB) CountAssetsByCategory(ctx context.Context, scope models.DashboardScope) ([]models.CountBy, error) {
	return a.countBy(ctx, `
		SELECT c.id::text, c.name, count(*) FROM assets a
		INNER JOIN categories c ON c.id = a.category_id
		WHERE $1::uuid IS NULL OR a.location_id = $1
		GROUP BY c.id, c.name ORDER BY c.name`, scope)
}

// CountAssetsByLocation groups assets in scope by location.
func (a *AssetDB) CountAssetsByLocation(ctx context.Context, scope models.DashboardScope) ([]models.CountBy, error) {
	return a.countBy(ctx, `
		SELECT l.id::text, l.name, count(*) FROM assets a
		INNER JOIN locations l ON l.id = a.location_id
		WHERE $1::uuid IS NULL OR a.location_id = $1
		GROUP BY l.id, l.name ORDER BY l.name`, scope)
}

// TotalPurchaseValue sums the price of non-disposed assets in scope.
func (a *AssetDB) TotalPurchaseValue(ctx context.Context, scope models.DashboardScope) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := a.DB.QueryRowContext(ctx, `
		SELECT COALESCE(sum(price), 0) FROM assets
		WHERE status <> 'disposed' AND ($1::uuid IS NULL OR location_id = $1)`,
		scope.LocationID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error summing purchase value: %w", err)
	}
	return total, nil
}

// RecentAssets returns the n most recently created assets in scope.
func (a *AssetDB) RecentAssets(ctx context.Context, scope models.DashboardScope, n int) ([]models.Asset, error) {
	rows, err := a.DB.QueryContext(ctx, `
		SELECT `+assetColumns+` FROM assets a
		WHERE $1::uuid IS NULL OR a.location_id = $1
		ORDER BY a.created_at DESC, a.id
		LIMIT $2`, scope.LocationID, n)
	if err != nil {
		return nil, fmt.Errorf("error retrieving recent assets: %w", err)
	}
	defer rows.Close()

	return collectAssets(rows)
}

func collectAssets(rows *sql.Rows) ([]models.Asset, error) {
	assets := []models.Asset{}
	for rows.Next() {
		as, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning asset: %w", err)
		}
		assets = append(assets, *as)
	}
	return assets, rows.Err()
}
