package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/sticker"
)

// NextSticker allocates the next sticker number for the location/category
// pair inside tx. Concurrent callers serialise on the sequence row.
func (a *AssetDB) NextSticker(ctx context.Context, tx *sql.Tx, locationCode, categoryCode string) (string, error) {
	prefix := sticker.Prefix(locationCode, categoryCode)

	var n int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO sticker_sequences (prefix, last_value) VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET last_value = sticker_sequences.last_value + 1
		RETURNING last_value`, prefix).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("error allocating sticker for %s: %w", prefix, err)
	}

	return sticker.Format(prefix, n), nil
}

// ReconcileStickerSequences raises every counter to at least the highest
// sticker number present in assets, creating missing counters. It returns
// the number of prefixes inspected.
func (a *AssetDB) ReconcileStickerSequences(ctx context.Context) (int, error) {
	rows, err := a.DB.QueryContext(ctx, `SELECT sticker_seq FROM assets`)
	if err != nil {
		return 0, fmt.Errorf("error retrieving stickers: %w", err)
	}

	highest := make(map[string]int64)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			rows.Close()
			return 0, fmt.Errorf("error scanning sticker: %w", err)
		}
		prefix, n, err := sticker.Parse(s)
		if err != nil {
			a.Log.Warn().Str("sticker", s).Msg("Skipping malformed sticker")
			continue
		}
		if n > highest[prefix] {
			highest[prefix] = n
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating stickers: %w", err)
	}

	err = a.withTx(ctx, func(tx *sql.Tx) error {
		for prefix, n := range highest {
			_, err := a.execQuery(ctx, tx, `
				INSERT INTO sticker_sequences (prefix, last_value) VALUES ($1, $2)
				ON CONFLICT (prefix) DO UPDATE
				SET last_value = GREATEST(sticker_sequences.last_value, EXCLUDED.last_value)`,
				prefix, n)
			if err != nil {
				return fmt.Errorf("error reconciling sequence %s: %w", prefix, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(highest), nil
}
