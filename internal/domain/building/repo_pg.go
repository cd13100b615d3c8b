package building

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carepoint/timetrack/internal/platform/auth"
	"github.com/carepoint/timetrack/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const buildingCols = `b.id, b.name, b.site_id, s.name AS site_name, b.is_active, b.created_at`

const buildingFrom = `FROM buildings b LEFT JOIN sites s ON s.id = b.site_id`

func scanBuilding(row pgx.Row) (*Building, error) {
	var b Building
	err := row.Scan(&b.ID, &b.Name, &b.SiteID, &b.SiteName, &b.IsActive, &b.CreatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &b, nil
}

func (r *repoPG) Create(ctx context.Context, b *Building) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO buildings (name, site_id, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		b.Name, b.SiteID, b.IsActive).
		Scan(&b.ID, &b.CreatedAt)
	return db.TranslateError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id int64, scope auth.Scope) (*Building, error) {
	query := `SELECT ` + buildingCols + ` ` + buildingFrom + ` WHERE b.id = $1`
	args := []interface{}{id}
	if !scope.All {
		query += ` AND b.site_id = ANY($2)`
		args = append(args, scope.SiteIDs)
	}
	b, err := scanBuilding(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return b, nil
}

var buildingSortKeys = map[string]string{
	"name":       "b.name",
	"site_name":  "s.name",
	"created_at": "b.created_at",
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Building, int, error) {
	var conds []string
	var args []interface{}

	if !scope.All {
		args = append(args, scope.SiteIDs)
		conds = append(conds, fmt.Sprintf("b.site_id = ANY($%d)", len(args)))
	}
	if filter.SiteID != 0 {
		args = append(args, filter.SiteID)
		conds = append(conds, fmt.Sprintf("b.site_id = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conds = append(conds, fmt.Sprintf("b.name ILIKE $%d", len(args)))
	}
	switch filter.Status {
	case "active":
		conds = append(conds, "b.is_active = TRUE")
	case "inactive":
		conds = append(conds, "b.is_active = FALSE")
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) `+buildingFrom+` `+where, args...).Scan(&total); err != nil {
		return nil, 0, db.TranslateError(err)
	}

	orderBy := "b.created_at DESC"
	if col, ok := buildingSortKeys[filter.SortKey]; ok {
		dir := "ASC"
		if strings.EqualFold(filter.SortDir, "desc") {
			dir = "DESC"
		}
		orderBy = col + " " + dir
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		buildingCols, buildingFrom, where, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.TranslateError(err)
	}
	defer rows.Close()

	items := []*Building{}
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Building, error) {
	var sets []string
	var args []interface{}
	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.SiteID != nil {
		set("site_id", *patch.SiteID)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}

	if len(sets) == 0 {
		return nil, db.ErrNoFields
	}

	args = append(args, id)
	cond := fmt.Sprintf("id = $%d", len(args))
	if !scope.All {
		args = append(args, scope.SiteIDs)
		cond += fmt.Sprintf(" AND site_id = ANY($%d)", len(args))
	}

	query := fmt.Sprintf(`UPDATE buildings SET %s WHERE %s RETURNING id`,
		strings.Join(sets, ", "), cond)
	var updatedID int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		return nil, db.TranslateError(err)
	}
	return r.GetByID(ctx, updatedID, scope)
}

func (r *repoPG) Delete(ctx context.Context, id int64, scope auth.Scope) error {
	query := `DELETE FROM buildings WHERE id = $1`
	args := []interface{}{id}
	if !scope.All {
		query += ` AND site_id = ANY($2)`
		args = append(args, scope.SiteIDs)
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
