package site

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

const siteCols = `id, name, address, city, state, zip, is_active, created_at`

func scanSite(row pgx.Row) (*Site, error) {
	var s Site
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.State, &s.Zip, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &s, nil
}

func (r *repoPG) Create(ctx context.Context, s *Site) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sites (name, address, city, state, zip, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		s.Name, s.Address, s.City, s.State, s.Zip, s.IsActive).
		Scan(&s.ID, &s.CreatedAt)
	return db.TranslateError(err)
}

func (r *repoPG) GetByID(ctx context.Context, id int64, scope auth.Scope) (*Site, error) {
	query := `SELECT ` + siteCols + ` FROM sites WHERE id = $1`
	args := []interface{}{id}
	if !scope.All {
		query += ` AND id = ANY($2)`
		args = append(args, scope.SiteIDs)
	}
	return scanSite(r.pool.QueryRow(ctx, query, args...))
}

var siteSortKeys = map[string]string{
	"name":       "name",
	"city":       "city",
	"state":      "state",
	"created_at": "created_at",
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Site, int, error) {
	var conds []string
	var args []interface{}

	if !scope.All {
		args = append(args, scope.SiteIDs)
		conds = append(conds, fmt.Sprintf("id = ANY($%d)", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR city ILIKE $%d OR state ILIKE $%d)", len(args), len(args), len(args)))
	}
	switch filter.Status {
	case "active":
		conds = append(conds, "is_active = TRUE")
	case "inactive":
		conds = append(conds, "is_active = FALSE")
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sites `+where, args...).Scan(&total); err != nil {
		return nil, 0, db.TranslateError(err)
	}

	orderBy := "name ASC"
	if col, ok := siteSortKeys[filter.SortKey]; ok {
		orderBy = col + " " + sortDirection(filter.SortDir)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM sites %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		siteCols, where, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.TranslateError(err)
	}
	defer rows.Close()

	items := []*Site{}
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

// ListWithBuildings returns every in-scope site with its buildings inlined.
// Sites without buildings are still listed, with an empty array.
func (r *repoPG) ListWithBuildings(ctx context.Context, scope auth.Scope) ([]*SiteWithBuildings, error) {
	query := `
		SELECT s.id, s.name, s.address, s.city, s.state, s.zip, s.is_active, s.created_at,
		       b.id, b.name, b.is_active
		FROM sites s
		LEFT JOIN buildings b ON b.site_id = s.id`
	var args []interface{}
	if !scope.All {
		query += ` WHERE s.id = ANY($1)`
		args = append(args, scope.SiteIDs)
	}
	query += ` ORDER BY s.name ASC, b.name ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	defer rows.Close()

	items := []*SiteWithBuildings{}
	byID := map[int64]*SiteWithBuildings{}
	for rows.Next() {
		var s Site
		var bID *int64
		var bName *string
		var bActive *bool
		err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.State, &s.Zip, &s.IsActive, &s.CreatedAt,
			&bID, &bName, &bActive)
		if err != nil {
			return nil, db.TranslateError(err)
		}
		sw, ok := byID[s.ID]
		if !ok {
			sw = &SiteWithBuildings{Site: s, Buildings: []SiteBuilding{}}
			byID[s.ID] = sw
			items = append(items, sw)
		}
		if bID != nil {
			sw.Buildings = append(sw.Buildings, SiteBuilding{ID: *bID, Name: *bName, IsActive: *bActive})
		}
	}
	return items, rows.Err()
}

func sortDirection(dir string) string {
	if strings.EqualFold(dir, "desc") {
		return "DESC"
	}
	return "ASC"
}

func (r *repoPG) Update(ctx context.Context, id int64, patch Patch) (*Site, error) {
	var sets []string
	var args []interface{}
	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Address != nil {
		set("address", *patch.Address)
	}
	if patch.City != nil {
		set("city", *patch.City)
	}
	if patch.State != nil {
		set("state", *patch.State)
	}
	if patch.Zip != nil {
		set("zip", *patch.Zip)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}

	if len(sets) == 0 {
		return nil, db.ErrNoFields
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE sites SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), siteCols)
	return scanSite(r.pool.QueryRow(ctx, query, args...))
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
