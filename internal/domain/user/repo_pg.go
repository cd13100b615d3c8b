package user

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

const userCols = `u.id, u.first_name, u.last_name, u.email, u.password_hash, u.role,
	u.primary_site_id, u.assigned_site_ids,
	COALESCE(sp.name, '') AS primary_site,
	COALESCE(
		(SELECT array_agg(sa.name ORDER BY sa.name)
		 FROM sites sa WHERE sa.id = ANY(u.assigned_site_ids)),
		'{}'
	) AS assigned_sites,
	u.created_at`

const userFrom = `FROM users u LEFT JOIN sites sp ON sp.id = u.primary_site_id`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role,
		&u.PrimarySiteID, &u.AssignedSiteIDs, &u.PrimarySiteName, &u.AssignedSiteNames,
		&u.CreatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	if u.AssignedSiteIDs == nil {
		u.AssignedSiteIDs = []int64{}
	}
	return &u, nil
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, role, primary_site_id, assigned_site_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Role, u.PrimarySiteID, u.AssignedSiteIDs).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return db.TranslateError(err)
	}
	return nil
}

// scopeCond matches users attached to any in-scope site, by primary
// assignment or by the assigned set overlapping the scope.
func scopeCond(args *[]interface{}, scope auth.Scope) string {
	if scope.All {
		return ""
	}
	*args = append(*args, scope.SiteIDs)
	n := len(*args)
	return fmt.Sprintf("(u.primary_site_id = ANY($%d) OR u.assigned_site_ids && $%d)", n, n)
}

func (r *repoPG) GetByID(ctx context.Context, id int64, scope auth.Scope) (*User, error) {
	args := []interface{}{id}
	query := `SELECT ` + userCols + ` ` + userFrom + ` WHERE u.id = $1`
	if cond := scopeCond(&args, scope); cond != "" {
		query += ` AND ` + cond
	}
	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` `+userFrom+` WHERE LOWER(u.email) = LOWER($1)`, email))
}

var userSortKeys = map[string]string{
	"name":         "u.last_name || ' ' || u.first_name",
	"email":        "u.email",
	"role":         "u.role",
	"primary_site": "sp.name",
	"created_at":   "u.created_at",
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*User, int, error) {
	var conds []string
	var args []interface{}

	if cond := scopeCond(&args, scope); cond != "" {
		conds = append(conds, cond)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(u.first_name || ' ' || u.last_name ILIKE $%d OR u.email ILIKE $%d)", n, n))
	}
	if filter.Role != "" && filter.Role != "all" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf("u.role = $%d", len(args)))
	}
	if filter.SiteID != 0 {
		args = append(args, filter.SiteID)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(u.primary_site_id = $%d OR $%d = ANY(u.assigned_site_ids))", n, n))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) `+userFrom+` `+where, args...).Scan(&total); err != nil {
		return nil, 0, db.TranslateError(err)
	}

	orderBy := "u.last_name ASC, u.first_name ASC"
	if col, ok := userSortKeys[filter.SortKey]; ok {
		dir := "ASC"
		if strings.EqualFold(filter.SortDir, "desc") {
			dir = "DESC"
		}
		orderBy = col + " " + dir
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		userCols, userFrom, where, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.TranslateError(err)
	}
	defer rows.Close()

	items := []*User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id int64, patch Patch) (*User, error) {
	var sets []string
	var args []interface{}
	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.FirstName != nil {
		set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		set("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		set("email", strings.ToLower(*patch.Email))
	}
	if patch.Role != nil {
		set("role", *patch.Role)
	}
	if patch.PrimarySiteID != nil {
		set("primary_site_id", *patch.PrimarySiteID)
	}
	if patch.AssignedSiteIDs != nil {
		set("assigned_site_ids", *patch.AssignedSiteIDs)
	}
	if patch.NewPassword != nil {
		// Service layer has already hashed the value.
		set("password_hash", *patch.NewPassword)
	}

	if len(sets) == 0 {
		return nil, db.ErrNoFields
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING id`,
		strings.Join(sets, ", "), len(args))
	var updatedID int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		return nil, db.TranslateError(err)
	}
	return r.GetByID(ctx, updatedID, auth.AllSites())
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return db.TranslateError(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
