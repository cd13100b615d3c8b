package activity

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

const activityCols = `a.id, a.patient_id, a.user_id, a.activity_type, a.pharm_flag,
	a.notes, a.service_start, a.service_end, a.duration_minutes,
	p.first_name || ' ' || p.last_name AS patient_name,
	UPPER(LEFT(u.first_name, 1) || LEFT(u.last_name, 1)) AS user_initials,
	p.site_id, s.name AS site_name, a.created_at`

const activityFrom = `FROM activities a
	JOIN patients p ON p.id = a.patient_id
	LEFT JOIN users u ON u.id = a.user_id
	LEFT JOIN sites s ON s.id = p.site_id`

func scanActivity(row pgx.Row) (*Activity, error) {
	var a Activity
	err := row.Scan(&a.ID, &a.PatientID, &a.UserID, &a.ActivityType, &a.PharmFlag,
		&a.Notes, &a.ServiceStart, &a.ServiceEnd, &a.DurationMinutes,
		&a.PatientName, &a.UserInitials,
		&a.SiteID, &a.SiteName, &a.CreatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Activity) (*Activity, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO activities (patient_id, user_id, activity_type, pharm_flag,
			notes, service_start, service_end, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		a.PatientID, a.UserID, a.ActivityType, a.PharmFlag,
		a.Notes, a.ServiceStart, a.ServiceEnd, a.DurationMinutes).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return r.GetByID(ctx, a.ID, auth.AllSites())
}

func (r *repoPG) GetByID(ctx context.Context, id int64, scope auth.Scope) (*Activity, error) {
	query := `SELECT ` + activityCols + ` ` + activityFrom + ` WHERE a.id = $1`
	args := []interface{}{id}
	if !scope.All {
		query += ` AND p.site_id = ANY($2)`
		args = append(args, scope.SiteIDs)
	}
	return scanActivity(r.pool.QueryRow(ctx, query, args...))
}

var activitySortKeys = map[string]string{
	"patient_name":     "patient_name",
	"activity_type":    "a.activity_type",
	"site_name":        "s.name",
	"pharm_flag":       "a.pharm_flag",
	"service_start":    "a.service_start",
	"duration_minutes": "a.duration_minutes",
	"created_at":       "a.created_at",
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Activity, int, error) {
	var conds []string
	var args []interface{}

	if !scope.All {
		args = append(args, scope.SiteIDs)
		conds = append(conds, fmt.Sprintf("p.site_id = ANY($%d)", len(args)))
	}
	if filter.PatientID != 0 {
		args = append(args, filter.PatientID)
		conds = append(conds, fmt.Sprintf("a.patient_id = $%d", len(args)))
	}
	if len(filter.PatientIDs) > 0 {
		args = append(args, filter.PatientIDs)
		conds = append(conds, fmt.Sprintf("a.patient_id = ANY($%d)", len(args)))
	}
	if filter.SiteID != 0 {
		args = append(args, filter.SiteID)
		conds = append(conds, fmt.Sprintf("p.site_id = $%d", len(args)))
	}
	if filter.ActivityType != "" && filter.ActivityType != "all" {
		args = append(args, filter.ActivityType)
		conds = append(conds, fmt.Sprintf("a.activity_type = $%d", len(args)))
	}
	switch filter.PharmFlag {
	case "true":
		conds = append(conds, "a.pharm_flag = TRUE")
	case "false":
		conds = append(conds, "a.pharm_flag = FALSE")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(p.first_name || ' ' || p.last_name ILIKE $%d OR a.activity_type ILIKE $%d OR a.notes ILIKE $%d)",
			n, n, n))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) `+activityFrom+` `+where, args...).Scan(&total); err != nil {
		return nil, 0, db.TranslateError(err)
	}

	orderBy := "a.created_at DESC"
	if col, ok := activitySortKeys[filter.SortKey]; ok {
		dir := "ASC"
		if strings.EqualFold(filter.SortDir, "desc") {
			dir = "DESC"
		}
		orderBy = col + " " + dir
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		activityCols, activityFrom, where, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.TranslateError(err)
	}
	defer rows.Close()

	items := []*Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Activity, error) {
	var sets []string
	var args []interface{}
	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.PatientID != nil {
		set("patient_id", *patch.PatientID)
	}
	if patch.UserID != nil {
		set("user_id", *patch.UserID)
	}
	if patch.ActivityType != nil {
		set("activity_type", *patch.ActivityType)
	}
	if patch.PharmFlag != nil {
		set("pharm_flag", *patch.PharmFlag)
	}
	if patch.Notes != nil {
		set("notes", *patch.Notes)
	}
	if patch.ServiceStart != nil {
		set("service_start", *patch.ServiceStart)
	}
	if patch.ServiceEnd != nil {
		set("service_end", *patch.ServiceEnd)
	}
	if patch.DurationMinutes != nil {
		set("duration_minutes", *patch.DurationMinutes)
	}

	if len(sets) == 0 {
		return nil, db.ErrNoFields
	}

	args = append(args, id)
	cond := fmt.Sprintf("id = $%d", len(args))
	if !scope.All {
		args = append(args, scope.SiteIDs)
		cond += fmt.Sprintf(
			" AND patient_id IN (SELECT id FROM patients WHERE site_id = ANY($%d))", len(args))
	}

	query := fmt.Sprintf(`UPDATE activities SET %s WHERE %s RETURNING id`,
		strings.Join(sets, ", "), cond)
	var updatedID int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		return nil, db.TranslateError(err)
	}
	return r.GetByID(ctx, updatedID, scope)
}

func (r *repoPG) Delete(ctx context.Context, id int64, scope auth.Scope) error {
	query := `DELETE FROM activities WHERE id = $1`
	args := []interface{}{id}
	if !scope.All {
		query += ` AND patient_id IN (SELECT id FROM patients WHERE site_id = ANY($2))`
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

func (r *repoPG) PatientSiteID(ctx context.Context, patientID int64, scope auth.Scope) (int64, error) {
	query := `SELECT site_id FROM patients WHERE id = $1`
	args := []interface{}{patientID}
	if !scope.All {
		query += ` AND site_id = ANY($2)`
		args = append(args, scope.SiteIDs)
	}
	var siteID int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&siteID); err != nil {
		return 0, db.TranslateError(err)
	}
	return siteID, nil
}
