package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
)

func (a *AssetDB) appendHistory(ctx context.Context, tx *sql.Tx, assetID uuid.UUID, action string, actor *uuid.UUID, details string) error {
	_, err := a.execQuery(ctx, tx, `
		INSERT INTO asset_history (id, asset_id, action, actor_id, details)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), assetID, action, actor, details)
	if err != nil {
		return fmt.Errorf("error inserting asset history: %w", err)
	}
	return nil
}

// AppendHistory records an entry in an asset's audit trail outside of any
// other write, e.g. for notifications delivered by the event consumer.
func (a *AssetDB) AppendHistory(ctx context.Context, h models.AssetHistory) error {
	return a.withTx(ctx, func(tx *sql.Tx) error {
		return a.appendHistory(ctx, tx, h.AssetID, h.Action, h.ActorID, h.Details)
	})
}

// AssetHistory returns the audit trail of an asset, oldest first.
func (a *AssetDB) AssetHistory(ctx context.Context, assetID uuid.UUID) ([]models.AssetHistory, error) {
	rows, err := a.DB.QueryContext(ctx, `
		SELECT id, asset_id, action, actor_id, details, created_at
		FROM asset_history WHERE asset_id = $1
		ORDER BY created_at, id`, assetID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving asset history: %w", err)
	}
	defer rows.Close()

	history := []models.AssetHistory{}
	for rows.Next() {
		var h models.AssetHistory
		if err := rows.Scan(&h.ID, &h.AssetID, &h.Action, &h.ActorID, &h.Details, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning asset history: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
