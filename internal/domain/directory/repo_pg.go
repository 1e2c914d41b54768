package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("directory entry not found")

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const userCols = `id, name, email, role, agent_type, hospital_ids, university_ids, active, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var agentType *string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &agentType,
		&u.HospitalIDs, &u.UniversityIDs, &u.Active, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if agentType != nil {
		u.AgentType = *agentType
	}
	return &u, nil
}

func (r *repoPG) GetUser(ctx context.Context, id string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM directory_users WHERE id = $1`, id))
}

func (r *repoPG) ListUsersByRole(ctx context.Context, role string, limit, offset int) ([]*User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM directory_users WHERE role = $1`, role).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userCols+` FROM directory_users WHERE role = $1 ORDER BY name LIMIT $2 OFFSET $3`, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}

const hospitalCols = `id, name, city, country, specialty, active, created_at`

func scanHospital(row pgx.Row) (*Hospital, error) {
	var h Hospital
	var specialty *string
	err := row.Scan(&h.ID, &h.Name, &h.City, &h.Country, &specialty, &h.Active, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if specialty != nil {
		h.Specialty = *specialty
	}
	return &h, nil
}

func (r *repoPG) GetHospital(ctx context.Context, id string) (*Hospital, error) {
	return scanHospital(r.pool.QueryRow(ctx, `SELECT `+hospitalCols+` FROM hospitals WHERE id = $1`, id))
}

func (r *repoPG) ListHospitals(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM hospitals WHERE active`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+hospitalCols+` FROM hospitals WHERE active ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Hospital
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, h)
	}
	return items, total, rows.Err()
}

const universityCols = `id, name, city, country, programs, active, created_at`

func scanUniversity(row pgx.Row) (*University, error) {
	var u University
	err := row.Scan(&u.ID, &u.Name, &u.City, &u.Country, &u.Programs, &u.Active, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repoPG) GetUniversity(ctx context.Context, id string) (*University, error) {
	return scanUniversity(r.pool.QueryRow(ctx, `SELECT `+universityCols+` FROM universities WHERE id = $1`, id))
}

func (r *repoPG) ListUniversities(ctx context.Context, limit, offset int) ([]*University, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM universities WHERE active`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+universityCols+` FROM universities WHERE active ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}
