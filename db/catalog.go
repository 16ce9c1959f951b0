package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/search"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
)

// deleteByID removes one row from table and maps a missing row to ErrNotFound.
func (a *AssetDB) deleteByID(ctx context.Context, table string, id uuid.UUID) error {
	return a.withTx(ctx, func(tx *sql.Tx) error {
		n, err := a.execQuery(ctx, tx, `DELETE FROM `+table+` WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting from %s: %w", table, err)
		}
		if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

// updateOne runs an UPDATE and maps a missing row to ErrNotFound.
func (a *AssetDB) updateOne(ctx context.Context, what, query string, args ...interface{}) error {
	return a.withTx(ctx, func(tx *sql.Tx) error {
		n, err := a.execQuery(ctx, tx, query, args...)
		if err != nil {
			return fmt.Errorf("error updating %s: %w", what, err)
		}
		if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

// Locations

const locationColumns = `id, name, sticker_short_code, address, parent_id, created_at`

func scanLocation(row rowScanner) (*models.Location, error) {
	var l models.Location
	if err := row.Scan(&l.ID, &l.Name, &l.StickerShortCode, &l.Address, &l.ParentID, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (a *AssetDB) CreateLocation(ctx context.Context, l *models.Location) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	err := a.DB.QueryRowContext(ctx, `
		INSERT INTO locations (id, name, sticker_short_code, address, parent_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		l.ID, l.Name, l.StickerShortCode, l.Address, l.ParentID).Scan(&l.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting location: %w", err)
	}
	return nil
}

func (a *AssetDB) GetLocation(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	l, err := scanLocation(a.DB.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving location: %w", err)
	}
	return l, nil
}

func (a *AssetDB) ListLocations(ctx context.Context, q string, limit, offset int) ([]models.Location, int, error) {
	pattern := search.ContainsPattern(q)

	var total int
	err := a.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM locations WHERE name ILIKE $1 OR sticker_short_code ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting locations: %w", err)
	}

	rows, err := a.DB.QueryContext(ctx, `
		SELECT `+locationColumns+` FROM locations
		WHERE name ILIKE $1 OR sticker_short_code ILIKE $1
		ORDER BY name
		LIMIT $2 OFFSET $3`, pattern, limitOrAll(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving locations: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning location: %w", err)
		}
		locations = append(locations, *l)
	}
	return locations, total, rows.Err()
}

// UpdateLocation edits a location. Setting a parent that would make the
// location its own ancestor is rejected with ErrInvalidInput.
func (a *AssetDB) UpdateLocation(ctx context.Context, l *models.Location) error {
	return a.withTx(ctx, func(tx *sql.Tx) error {
		if l.ParentID != nil {
			var cycle bool
			err := tx.QueryRowContext(ctx, `
				WITH RECURSIVE ancestors(id) AS (
					SELECT $1::uuid
					UNION
					SELECT loc.parent_id FROM locations loc
					INNER JOIN ancestors an ON loc.id = an.id
					WHERE loc.parent_id IS NOT NULL
				)
				SELECT EXISTS (SELECT 1 FROM ancestors WHERE id = $2)`,
				*l.ParentID, l.ID).Scan(&cycle)
			if err != nil {
				return fmt.Errorf("error checking location ancestry: %w", err)
			}
			if cycle {
				return fmt.Errorf("%w: a location cannot be nested under itself", models.ErrInvalidInput)
			}
		}

		n, err := a.execQuery(ctx, tx, `
			UPDATE locations SET name = $2, sticker_short_code = $3, address = $4, parent_id = $5
			WHERE id = $1`,
			l.ID, l.Name, l.StickerShortCode, l.Address, l.ParentID)
		if err != nil {
			return fmt.Errorf("error updating location: %w", err)
		}
		if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

func (a *AssetDB) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return a.deleteByID(ctx, "locations", id)
}

// Programmes

func scanProgramme(row rowScanner) (*models.Programme, error) {
	var p models.Programme
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *AssetDB) CreateProgramme(ctx context.Context, p *models.Programme) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := a.DB.QueryRowContext(ctx, `
		INSERT INTO programmes (id, name, description) VALUES ($1, $2, $3)
		RETURNING created_at`, p.ID, p.Name, p.Description).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting programme: %w", err)
	}
	return nil
}

func (a *AssetDB) GetProgramme(ctx context.Context, id uuid.UUID) (*models.Programme, error) {
	p, err := scanProgramme(a.DB.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM programmes WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving programme: %w", err)
	}
	return p, nil
}

func (a *AssetDB) ListProgrammes(ctx context.Context, q string, limit, offset int) ([]models.Programme, int, error) {
	pattern := search.ContainsPattern(q)

	var total int
	if err := a.DB.QueryRowContext(ctx, `SELECT count(*) FROM programmes WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting programmes: %w", err)
	}

	rows, err := a.DB.QueryContext(ctx, `
		SELECT id, name, description, created_at FROM programmes
		WHERE name ILIKE $1 ORDER BY name LIMIT $2 OFFSET $3`, pattern, limitOrAll(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving programmes: %w", err)
	}
	defer rows.Close()

	programmes := []models.Programme{}
	for rows.Next() {
		p, err := scanProgramme(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning programme: %w", err)
		}
		programmes = append(programmes, *p)
	}
	return programmes, total, rows.Err()
}

func (a *AssetDB) UpdateProgramme(ctx context.Context, p *models.Programme) error {
	return a.updateOne(ctx, "programme",
		`UPDATE programmes SET name = $2, description = $3 WHERE id = $1`, p.ID, p.Name, p.Description)
}

func (a *AssetDB) DeleteProgramme(ctx context.Context, id uuid.UUID) error {
	return a.deleteByID(ctx, "programmes", id)
}

// Categories

const categoryColumns = `id, name, sticker_short_code, depreciation_rate, useful_life_years, created_at`

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.StickerShortCode, &c.DepreciationRate, &c.UsefulLifeYears, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *AssetDB) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	err := a.DB.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, sticker_short_code, depreciation_rate, useful_life_years)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		c.ID, c.Name, c.StickerShortCode, c.DepreciationRate, c.UsefulLifeYears).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting category: %w", err)
	}
	return nil
}

func (a *AssetDB) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := scanCategory(a.DB.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}
	return c, nil
}

func (a *AssetDB) ListCategories(ctx context.Context, q string, limit, offset int) ([]models.Category, int, error) {
	pattern := search.ContainsPattern(q)

	var total int
	err := a.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM categories WHERE name ILIKE $1 OR sticker_short_code ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting categories: %w", err)
	}

	rows, err := a.DB.QueryContext(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE name ILIKE $1 OR sticker_short_code ILIKE $1
		ORDER BY name LIMIT $2 OFFSET $3`, pattern, limitOrAll(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, total, rows.Err()
}

func (a *AssetDB) UpdateCategory(ctx context.Context, c *models.Category) error {
	return a.updateOne(ctx, "category", `
		UPDATE categories
		SET name = $2, sticker_short_code = $3, depreciation_rate = $4, useful_life_years = $5
		WHERE id = $1`,
		c.ID, c.Name, c.StickerShortCode, c.DepreciationRate, c.UsefulLifeYears)
}

func (a *AssetDB) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return a.deleteByID(ctx, "categories", id)
}

// Vendors

const vendorColumns = `id, name, email, phone, address, created_at`

func scanVendor(row rowScanner) (*models.Vendor, error) {
	var v models.Vendor
	if err := row.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (a *AssetDB) CreateVendor(ctx context.Context, v *models.Vendor) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	err := a.DB.QueryRowContext(ctx, `
		INSERT INTO vendors (id, name, email, phone, address) VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`, v.ID, v.Name, v.Email, v.Phone, v.Address).Scan(&v.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting vendor: %w", err)
	}
	return nil
}

func (a *AssetDB) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	v, err := scanVendor(a.DB.QueryRowContext(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving vendor: %w", err)
	}
	return v, nil
}

func (a *AssetDB) ListVendors(ctx context.Context, q string, limit, offset int) ([]models.Vendor, int, error) {
	pattern := search.ContainsPattern(q)

	var total int
	err := a.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM vendors WHERE name ILIKE $1 OR email ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting vendors: %w", err)
	}

	rows, err := a.DB.QueryContext(ctx, `
		SELECT `+vendorColumns+` FROM vendors
		WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY name LIMIT $2 OFFSET $3`, pattern, limitOrAll(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving vendors: %w", err)
	}
	defer rows.Close()

	vendors := []models.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning vendor: %w", err)
		}
		vendors = append(vendors, *v)
	}
	return vendors, total, rows.Err()
}

func (a *AssetDB) UpdateVendor(ctx context.Context, v *models.Vendor) error {
	return a.updateOne(ctx, "vendor",
		`UPDATE vendors SET name = $2, email = $3, phone = $4, address = $5 WHERE id = $1`,
		v.ID, v.Name, v.Email, v.Phone, v.Address)
}

func (a *AssetDB) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	return a.deleteByID(ctx, "vendors", id)
}

// limitOrAll turns a non-positive limit into NULL, which LIMIT treats as no limit.
func limitOrAll(limit int) interface{} {
	if limit <= 0 {
		return nil
	}
	return limit
}
