package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/search"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const projectColumns = `id, name, programme_id, location_id, description, start_date, end_date, created_at`

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.ProgrammeID, &p.LocationID, &p.Description,
		&p.StartDate, &p.EndDate, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Members = []uuid.UUID{}
	return &p, nil
}

// CreateProject inserts a project together with its initial members.
func (a *AssetDB) CreateProject(ctx context.Context, p *models.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	return a.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO projects (id, name, programme_id, location_id, description, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at`,
			p.ID, p.Name, p.ProgrammeID, p.LocationID, p.Description, p.StartDate, p.EndDate,
		).Scan(&p.CreatedAt)
		if err != nil {
			return fmt.Errorf("error inserting project: %w", err)
		}

		return a.replaceMembers(ctx, tx, p.ID, p.Members)
	})
}

func (a *AssetDB) replaceMembers(ctx context.Context, tx *sql.Tx, projectID uuid.UUID, members []uuid.UUID) error {
	if _, err := a.execQuery(ctx, tx, `DELETE FROM project_members WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("error clearing project members: %w", err)
	}
	if len(members) == 0 {
		return nil
	}

	_, err := a.execQuery(ctx, tx, `
		INSERT INTO project_members (project_id, user_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING`,
		projectID, pq.Array(uuidStrings(members)))
	if err != nil {
		return fmt.Errorf("error inserting project members: %w", err)
	}
	return nil
}

// GetProject returns a project with its member ids, or nil if there is none.
func (a *AssetDB) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p, err := scanProject(a.DB.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}

	members, err := a.projectMembers(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return nil, err
	}
	p.Members = append(p.Members, members[p.ID]...)
	return p, nil
}

// ListProjects returns a page of projects, optionally restricted to a location.
func (a *AssetDB) ListProjects(ctx context.Context, q string, locationID *uuid.UUID, limit, offset int) ([]models.Project, int, error) {
	pattern := search.ContainsPattern(q)

	var total int
	err := a.DB.QueryRowContext(ctx, `
		SELECT count(*) FROM projects
		WHERE name ILIKE $1 AND ($2::uuid IS NULL OR location_id = $2)`,
		pattern, locationID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting projects: %w", err)
	}

	rows, err := a.DB.QueryContext(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE name ILIKE $1 AND ($2::uuid IS NULL OR location_id = $2)
		ORDER BY name LIMIT $3 OFFSET $4`,
		pattern, locationID, limitOrAll(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	var ids []uuid.UUID
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning project: %w", err)
		}
		projects = append(projects, *p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating projects: %w", err)
	}

	members, err := a.projectMembers(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range projects {
		projects[i].Members = append(projects[i].Members, members[projects[i].ID]...)
	}
	return projects, total, nil
}

// projectMembers fetches member ids keyed by project.
func (a *AssetDB) projectMembers(ctx context.Context, projectIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	members := make(map[uuid.UUID][]uuid.UUID)
	if len(projectIDs) == 0 {
		return members, nil
	}

	rows, err := a.DB.QueryContext(ctx, `
		SELECT project_id, user_id FROM project_members
		WHERE project_id = ANY($1::uuid[])
		ORDER BY user_id`, pq.Array(uuidStrings(projectIDs)))
	if err != nil {
		return nil, fmt.Errorf("error retrieving project members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID, userID uuid.UUID
		if err := rows.Scan(&projectID, &userID); err != nil {
			return nil, fmt.Errorf("error scanning project member: %w", err)
		}
		members[projectID] = append(members[projectID], userID)
	}
	return members, rows.Err()
}

// UpdateProject edits a project. A nil Members slice leaves membership as is.
func (a *AssetDB) UpdateProject(ctx context.Context, p *models.Project) error {
	return a.withTx(ctx, func(tx *sql.Tx) error {
		n, err := a.execQuery(ctx, tx, `
			UPDATE projects
			SET name = $2, programme_id = $3, location_id = $4, description = $5, start_date = $6, end_date = $7
			WHERE id = $1`,
			p.ID, p.Name, p.ProgrammeID, p.LocationID, p.Description, p.StartDate, p.EndDate)
		if err != nil {
			return fmt.Errorf("error updating project: %w", err)
		}
		if n == 0 {
			return models.ErrNotFound
		}
		if p.Members == nil {
			return nil
		}
		return a.replaceMembers(ctx, tx, p.ID, p.Members)
	})
}

func (a *AssetDB) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return a.deleteByID(ctx, "projects", id)
}

// AddProjectMember adds a user to a project. Adding an existing member is a no-op.
func (a *AssetDB) AddProjectMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return a.withTx(ctx, func(tx *sql.Tx) error {
		_, err := a.execQuery(ctx, tx, `
			INSERT INTO project_members (project_id, user_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, projectID, userID)
		if err != nil {
			return fmt.Errorf("error adding project member: %w", err)
		}
		return nil
	})
}

func (a *AssetDB) RemoveProjectMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return a.withTx(ctx, func(tx *sql.Tx) error {
		n, err := a.execQuery(ctx, tx,
			`DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`, projectID, userID)
		if err != nil {
			return fmt.Errorf("error removing project member: %w", err)
		}
		if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

// IsProjectMember reports whether the user belongs to the project.
func (a *AssetDB) IsProjectMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := a.DB.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2)`,
		projectID, userID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("error checking project membership: %w", err)
	}
	return ok, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
