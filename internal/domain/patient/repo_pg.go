package patient

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

const patientCols = `p.id, p.first_name, p.last_name, p.birthdate, p.gender,
	p.phone_number, p.contact_name, p.contact_phone_number, p.insurance,
	p.is_active, p.site_id, p.building_id,
	s.name AS site_name, COALESCE(b.name, '') AS building_name, p.created_at`

const patientFrom = `FROM patients p
	LEFT JOIN sites s ON s.id = p.site_id
	LEFT JOIN buildings b ON b.id = p.building_id`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Birthdate, &p.Gender,
		&p.PhoneNumber, &p.ContactName, &p.ContactPhoneNumber, &p.Insurance,
		&p.IsActive, &p.SiteID, &p.BuildingID,
		&p.SiteName, &p.BuildingName, &p.CreatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) (*Patient, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patients (first_name, last_name, birthdate, gender,
			phone_number, contact_name, contact_phone_number, insurance,
			is_active, site_id, building_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		p.FirstName, p.LastName, p.Birthdate, p.Gender,
		p.PhoneNumber, p.ContactName, p.ContactPhoneNumber, p.Insurance,
		p.IsActive, p.SiteID, p.BuildingID).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return r.GetByID(ctx, p.ID, auth.AllSites())
}

func (r *repoPG) GetByID(ctx context.Context, id int64, scope auth.Scope) (*Patient, error) {
	query := `SELECT ` + patientCols + ` ` + patientFrom + ` WHERE p.id = $1`
	args := []interface{}{id}
	if !scope.All {
		query += ` AND p.site_id = ANY($2)`
		args = append(args, scope.SiteIDs)
	}
	return scanPatient(r.pool.QueryRow(ctx, query, args...))
}

var patientSortKeys = map[string]string{
	"name":          "p.last_name",
	"birthdate":     "p.birthdate",
	"site_name":     "s.name",
	"building_name": "b.name",
	"created_at":    "p.created_at",
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, scope auth.Scope, limit, offset int) ([]*Patient, int, error) {
	var conds []string
	var args []interface{}

	if !scope.All {
		args = append(args, scope.SiteIDs)
		conds = append(conds, fmt.Sprintf("p.site_id = ANY($%d)", len(args)))
	}
	if filter.SiteID != 0 {
		args = append(args, filter.SiteID)
		conds = append(conds, fmt.Sprintf("p.site_id = $%d", len(args)))
	}
	if filter.BuildingID != 0 {
		args = append(args, filter.BuildingID)
		conds = append(conds, fmt.Sprintf("p.building_id = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(p.first_name || ' ' || p.last_name ILIKE $%d OR p.phone_number ILIKE $%d OR p.insurance ILIKE $%d)",
			n, n, n))
	}
	switch filter.Status {
	case "active":
		conds = append(conds, "p.is_active = TRUE")
	case "inactive":
		conds = append(conds, "p.is_active = FALSE")
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) `+patientFrom+` `+where, args...).Scan(&total); err != nil {
		return nil, 0, db.TranslateError(err)
	}

	orderBy := "p.created_at DESC"
	if col, ok := patientSortKeys[filter.SortKey]; ok {
		dir := "ASC"
		if strings.EqualFold(filter.SortDir, "desc") {
			dir = "DESC"
		}
		orderBy = col + " " + dir
		if filter.SortKey == "name" {
			orderBy += ", p.first_name " + dir
		}
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		patientCols, patientFrom, where, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, db.TranslateError(err)
	}
	defer rows.Close()

	items := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id int64, patch Patch, scope auth.Scope) (*Patient, error) {
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
	if patch.Birthdate != nil {
		set("birthdate", *patch.Birthdate)
	}
	if patch.Gender != nil {
		set("gender", *patch.Gender)
	}
	if patch.PhoneNumber != nil {
		set("phone_number", *patch.PhoneNumber)
	}
	if patch.ContactName != nil {
		set("contact_name", *patch.ContactName)
	}
	if patch.ContactPhoneNumber != nil {
		set("contact_phone_number", *patch.ContactPhoneNumber)
	}
	if patch.Insurance != nil {
		set("insurance", *patch.Insurance)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}
	if patch.SiteID != nil {
		set("site_id", *patch.SiteID)
	}
	if patch.BuildingID != nil {
		// zero clears the building assignment
		if *patch.BuildingID == 0 {
			set("building_id", nil)
		} else {
			set("building_id", *patch.BuildingID)
		}
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

	query := fmt.Sprintf(`UPDATE patients SET %s WHERE %s RETURNING id`,
		strings.Join(sets, ", "), cond)
	var updatedID int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		return nil, db.TranslateError(err)
	}
	return r.GetByID(ctx, updatedID, scope)
}

func (r *repoPG) Delete(ctx context.Context, id int64, scope auth.Scope) error {
	query := `DELETE FROM patients WHERE id = $1`
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
