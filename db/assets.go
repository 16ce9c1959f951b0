package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/search"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
)

const assetColumns = `a.id, a.name, a.sticker_seq, a.description, a.category_id, a.vendor_id, a.location_id,
	a.programme_id, a.purchase_date, a.price, a.salvage_value, a.invoice_key, a.status, a.assignment_type,
	a.assigned_user_id, a.assigned_project_id, a.assigned_at, a.created_by, a.created_at, a.updated_at`

// AssetSortColumns are the fields an asset listing may be sorted by.
var AssetSortColumns = []string{"name", "created_at", "price", "purchase_date", "sticker_seq"}

func scanAsset(row rowScanner, extra ...interface{}) (*models.Asset, error) {
	var as models.Asset
	dest := []interface{}{
		&as.ID, &as.Name, &as.StickerSeq, &as.Description, &as.CategoryID, &as.VendorID, &as.LocationID,
		&as.ProgrammeID, &as.PurchaseDate, &as.Price, &as.SalvageValue, &as.InvoiceKey, &as.Status,
		&as.AssignmentType, &as.AssignedUserID, &as.AssignedProjectID, &as.AssignedAt, &as.CreatedBy,
		&as.CreatedAt, &as.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &as, nil
}

// CreateAsset inserts an asset, allocating its sticker and writing the first
// history entry in the same transaction. The location and category must exist.
func (a *AssetDB) CreateAsset(ctx context.Context, as *models.Asset) error {
	if as.ID == uuid.Nil {
		as.ID = uuid.New()
	}
	as.Status = models.AssetAvailable

	return a.withTx(ctx, func(tx *sql.Tx) error {
		var locationCode, categoryCode string
		err := tx.QueryRowContext(ctx, `
			SELECT l.sticker_short_code, c.sticker_short_code
			FROM locations l, categories c
			WHERE l.id = $1 AND c.id = $2`, as.LocationID, as.CategoryID).Scan(&locationCode, &categoryCode)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: unknown location or category", models.ErrInvalidInput)
		}
		if err != nil {
			return fmt.Errorf("error resolving sticker codes: %w", err)
		}

		as.StickerSeq, err = a.NextSticker(ctx, tx, locationCode, categoryCode)
		if err != nil {
			return err
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO assets (id, name, sticker_seq, description, category_id, vendor_id, location_id,
				programme_id, purchase_date, price, salvage_value, invoice_key, status, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING created_at, updated_at`,
			as.ID, as.Name, as.StickerSeq, as.Description, as.CategoryID, as.VendorID, as.LocationID,
			as.ProgrammeID, as.PurchaseDate, as.Price, as.SalvageValue, as.InvoiceKey, as.Status, as.CreatedBy,
		).Scan(&as.CreatedAt, &as.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error inserting asset: %w", err)
		}

		return a.appendHistory(ctx, tx, as.ID, "created", &as.CreatedBy, "sticker "+as.StickerSeq)
	})
}

// GetAsset returns the asset with the given id, or nil if there is none.
func (a *AssetDB) GetAsset(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	as, err := scanAsset(a.DB.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets a WHERE a.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving asset: %w", err)
	}
	return as, nil
}

func assetWhere(f models.AssetFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}

	if f.Search != "" {
		add(`(a.name ILIKE ? OR a.sticker_seq ILIKE ? OR a.description ILIKE ?)`, search.ContainsPattern(f.Search))
	}
	if f.Status != "" {
		add(`a.status = ?`, f.Status)
	}
	if f.CategoryID != nil {
		add(`a.category_id = ?`, *f.CategoryID)
	}
	if f.LocationID != nil {
		add(`a.location_id = ?`, *f.LocationID)
	}
	if f.ProgrammeID != nil {
		add(`a.programme_id = ?`, *f.ProgrammeID)
	}
	if f.AssignedUserID != nil {
		add(`a.assigned_user_id = ?`, *f.AssignedUserID)
	}
	if f.AssignedProjectID != nil {
		add(`a.assigned_project_id = ?`, *f.AssignedProjectID)
	}
	if f.HolderID != nil {
		add(`(a.assigned_user_id = ? OR a.assigned_project_id IN (
			SELECT project_id FROM project_members WHERE user_id = ?))`, *f.HolderID)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListAssets returns one page of assets matching f and the total match count.
func (a *AssetDB) ListAssets(ctx context.Context, f models.AssetFilter) ([]models.Asset, int, error) {
	where, args := assetWhere(f)

	var total int
	if err := a.DB.QueryRowContext(ctx, `SELECT count(*) FROM assets a`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting assets: %w", err)
	}

	order := "a.created_at"
	for _, c := range AssetSortColumns {
		if c == f.SortBy {
			order = "a." + c
		}
	}
	if f.SortDesc {
		order += " DESC"
	}

	query := `SELECT ` + assetColumns + ` FROM assets a` + where + ` ORDER BY ` + order + `, a.id`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := a.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving assets: %w", err)
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		as, err := scanAsset(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning asset: %w", err)
		}
		assets = append(assets, *as)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating assets: %w", err)
	}
	return assets, total, nil
}

// lockAsset loads an asset row for update inside tx.
func (a *AssetDB) lockAsset(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.Asset, error) {
	as, err := scanAsset(tx.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets a WHERE a.id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error locking asset: %w", err)
	}
	return as, nil
}

// UpdateAsset edits the descriptive fields of an asset. The sticker and the
// assignment are left untouched; disposed assets cannot be edited. A non-nil
// InvoiceKey replaces the stored key, otherwise the stored key is kept.
func (a *AssetDB) UpdateAsset(ctx context.Context, as *models.Asset, actor uuid.UUID) error {
	return a.withTx(ctx, func(tx *sql.Tx) error {
		current, err := a.lockAsset(ctx, tx, as.ID)
		if err != nil {
			return err
		}
		if current.Status == models.AssetDisposed {
			return models.ErrDisposed
		}

		err = tx.QueryRowContext(ctx, `
			UPDATE assets
			SET name = $2, description = $3, category_id = $4, vendor_id = $5, location_id = $6,
				programme_id = $7, purchase_date = $8, price = $9, salvage_value = $10,
				invoice_key = COALESCE($11, invoice_key), updated_at = now()
			WHERE id = $1
			RETURNING `+strings.ReplaceAll(assetColumns, "a.", ""),
			as.ID, as.Name, as.Description, as.CategoryID, as.VendorID, as.LocationID,
			as.ProgrammeID, as.PurchaseDate, as.Price, as.SalvageValue, as.InvoiceKey,
		).Scan(
			&as.ID, &as.Name, &as.StickerSeq, &as.Description, &as.CategoryID, &as.VendorID, &as.LocationID,
			&as.ProgrammeID, &as.PurchaseDate, &as.Price, &as.SalvageValue, &as.InvoiceKey, &as.Status,
			&as.AssignmentType, &as.AssignedUserID, &as.AssignedProjectID, &as.AssignedAt, &as.CreatedBy,
			&as.CreatedAt, &as.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("error updating asset: %w", err)
		}

		return a.appendHistory(ctx, tx, as.ID, "updated", &actor, "")
	})
}

// AssignAsset hands an available asset to exactly one user or project.
func (a *AssetDB) AssignAsset(ctx context.Context, id uuid.UUID, req models.AssignRequest, actor uuid.UUID) (*models.Asset, error) {
	if (req.UserID == nil) == (req.ProjectID == nil) {
		return nil, fmt.Errorf("%w: exactly one of user_id or project_id is required", models.ErrInvalidInput)
	}

	var out *models.Asset
	err := a.withTx(ctx, func(tx *sql.Tx) error {
		current, err := a.lockAsset(ctx, tx, id)
		if err != nil {
			return err
		}
		switch current.Status {
		case models.AssetDisposed:
			return models.ErrDisposed
		case models.AssetAssigned:
			return models.ErrAlreadyAssigned
		}

		kind := models.AssignedToUser
		details := ""
		if req.ProjectID != nil {
			kind = models.AssignedToProject
			details = "project " + req.ProjectID.String()
		} else {
			details = "user " + req.UserID.String()
		}

		now := time.Now().UTC()
		_, err = a.execQuery(ctx, tx, `
			UPDATE assets
			SET status = $2, assignment_type = $3, assigned_user_id = $4, assigned_project_id = $5,
				assigned_at = $6, updated_at = $6
			WHERE id = $1`,
			id, models.AssetAssigned, kind, req.UserID, req.ProjectID, now)
		if err != nil {
			return fmt.Errorf("error assigning asset: %w", err)
		}

		current.Status = models.AssetAssigned
		current.AssignmentType = &kind
		current.AssignedUserID = req.UserID
		current.AssignedProjectID = req.ProjectID
		current.AssignedAt = &now
		current.UpdatedAt = now
		out = current

		return a.appendHistory(ctx, tx, id, "assigned", &actor, details)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UnassignAsset returns an assigned asset to the available pool.
func (a *AssetDB) UnassignAsset(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*models.Asset, error) {
	var out *models.Asset
	err := a.withTx(ctx, func(tx *sql.Tx) error {
		current, err := a.lockAsset(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.Status != models.AssetAssigned {
			return models.ErrNotAssigned
		}

		now := time.Now().UTC()
		_, err = a.execQuery(ctx, tx, `
			UPDATE assets
			SET status = $2, assignment_type = NULL, assigned_user_id = NULL, assigned_project_id = NULL,
				assigned_at = NULL, updated_at = $3
			WHERE id = $1`, id, models.AssetAvailable, now)
		if err != nil {
			return fmt.Errorf("error unassigning asset: %w", err)
		}

		details := ""
		if current.AssignedUserID != nil {
			details = "user " + current.AssignedUserID.String()
		} else if current.AssignedProjectID != nil {
			details = "project " + current.AssignedProjectID.String()
		}

		current.Status = models.AssetAvailable
		current.AssignmentType = nil
		current.AssignedUserID = nil
		current.AssignedProjectID = nil
		current.AssignedAt = nil
		current.UpdatedAt = now
		out = current

		return a.appendHistory(ctx, tx, id, "unassigned", &actor, details)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DisposeAsset retires an unassigned asset. Disposal is final.
func (a *AssetDB) DisposeAsset(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*models.Asset, error) {
	var out *models.Asset
	err := a.withTx(ctx, func(tx *sql.Tx) error {
		current, err := a.lockAsset(ctx, tx, id)
		if err != nil {
			return err
		}
		switch current.Status {
		case models.AssetDisposed:
			return models.ErrDisposed
		case models.AssetAssigned:
			return models.ErrAlreadyAssigned
		}

		now := time.Now().UTC()
		_, err = a.execQuery(ctx, tx,
			`UPDATE assets SET status = $2, updated_at = $3 WHERE id = $1`, id, models.AssetDisposed, now)
		if err != nil {
			return fmt.Errorf("error disposing asset: %w", err)
		}

		current.Status = models.AssetDisposed
		current.UpdatedAt = now
		out = current

		return a.appendHistory(ctx, tx, id, "disposed", &actor, "")
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SuggestAssets returns candidate assets whose name or sticker matches q.
// Descriptions are not searched since they never appear in the label.
func (a *AssetDB) SuggestAssets(ctx context.Context, q string, f models.AssetFilter, limit int) ([]models.Suggestion, error) {
	f.Search = ""
	where, args := assetWhere(f)
	args = append(args, search.ContainsPattern(q), search.PrefixPattern(q), limit)
	n := len(args)

	match := fmt.Sprintf(`(a.name ILIKE $%d OR a.sticker_seq ILIKE $%d)`, n-2, n-2)
	if where == "" {
		where = " WHERE " + match
	} else {
		where += " AND " + match
	}

	rows, err := a.DB.QueryContext(ctx, fmt.Sprintf(`
		SELECT a.id, a.sticker_seq || ' ' || a.name
		FROM assets a%s
		ORDER BY (a.name ILIKE $%d OR a.sticker_seq ILIKE $%d) DESC, a.name
		LIMIT $%d`, where, n-1, n-1, n), args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving asset suggestions: %w", err)
	}
	defer rows.Close()

	return scanSuggestions(rows)
}
