package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/search"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
)

const userColumns = `id, first_name, last_name, email, role, location_id, phone, password_hash, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role,
		&u.LocationID, &u.Phone, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. The caller supplies the password hash.
func (a *AssetDB) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	err := a.DB.QueryRowContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, role, location_id, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		u.ID, u.FirstName, u.LastName, u.Email, u.Role, u.LocationID, u.Phone, u.PasswordHash,
	).Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

// GetUser returns the user with the given id, or nil if there is none.
func (a *AssetDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := a.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks a user up by their (already normalised) email.
func (a *AssetDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := a.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	return u, nil
}

func userWhere(f models.UserFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Search != "" {
		args = append(args, search.ContainsPattern(f.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(first_name || ' ' || last_name ILIKE $%d OR email ILIKE $%d)`, n, n))
	}
	if f.Role != "" {
		args = append(args, f.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.LocationID != nil {
		args = append(args, *f.LocationID)
		conds = append(conds, fmt.Sprintf("location_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListUsers returns one page of users matching f and the total match count.
func (a *AssetDB) ListUsers(ctx context.Context, f models.UserFilter) ([]models.User, int, error) {
	where, args := userWhere(f)

	var total int
	if err := a.DB.QueryRowContext(ctx, `SELECT count(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY last_name, first_name, id`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := a.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}
	return users, total, nil
}

// UpdateUser overwrites the editable fields of a user. An empty
// PasswordHash keeps the current password.
func (a *AssetDB) UpdateUser(ctx context.Context, u *models.User) error {
	return a.withTx(ctx, func(tx *sql.Tx) error {
		n, err := a.execQuery(ctx, tx, `
			UPDATE users
			SET first_name = $2, last_name = $3, email = $4, role = $5, location_id = $6, phone = $7,
				password_hash = COALESCE(NULLIF($8, ''), password_hash)
			WHERE id = $1`,
			u.ID, u.FirstName, u.LastName, u.Email, u.Role, u.LocationID, u.Phone, u.PasswordHash)
		if err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}
		if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

// DeleteUser removes a user. Users still holding assets cannot be deleted.
func (a *AssetDB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return a.withTx(ctx, func(tx *sql.Tx) error {
		n, err := a.execQuery(ctx, tx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

// CountUsers counts users, optionally restricted to a location.
func (a *AssetDB) CountUsers(ctx context.Context, scope models.DashboardScope) (int, error) {
	var n int
	err := a.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM users WHERE $1::uuid IS NULL OR location_id = $1`, scope.LocationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return n, nil
}

// CountSuperusers reports how many superusers exist.
func (a *AssetDB) CountSuperusers(ctx context.Context) (int, error) {
	var n int
	err := a.DB.QueryRowContext(ctx, `SELECT count(*) FROM users WHERE role = $1`, models.RoleSuperuser).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting superusers: %w", err)
	}
	return n, nil
}

// SuggestUsers returns candidate users whose name or email matches q.
func (a *AssetDB) SuggestUsers(ctx context.Context, q string, scope models.DashboardScope, limit int) ([]models.Suggestion, error) {
	rows, err := a.DB.QueryContext(ctx, `
		SELECT id, first_name || ' ' || last_name || ' <' || email || '>'
		FROM users
		WHERE (first_name || ' ' || last_name ILIKE $1 OR email ILIKE $1)
			AND ($2::uuid IS NULL OR location_id = $2)
		ORDER BY (first_name || ' ' || last_name ILIKE $3 OR email ILIKE $3) DESC, first_name, last_name
		LIMIT $4`,
		search.ContainsPattern(q), scope.LocationID, search.PrefixPattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user suggestions: %w", err)
	}
	defer rows.Close()

	return scanSuggestions(rows)
}

func scanSuggestions(rows *sql.Rows) ([]models.Suggestion, error) {
	out := []models.Suggestion{}
	for rows.Next() {
		var s models.Suggestion
		if err := rows.Scan(&s.ID, &s.Label); err != nil {
			return nil, fmt.Errorf("error scanning suggestion: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suggestions: %w", err)
	}
	return out, nil
}
