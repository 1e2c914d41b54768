package cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type caseRepoPG struct{ pool *pgxpool.Pool }

// NewCaseRepoPG returns a CaseRepository backed by PostgreSQL. Indexed scalar
// fields are columns; sub-records are stored as JSONB documents.
func NewCaseRepoPG(pool *pgxpool.Pool) CaseRepository {
	return &caseRepoPG{pool: pool}
}

const caseCols = `id, client_id, agent_id, status, priority,
	assigned_hospital, assigned_university,
	client_info, attender_info, treatment_plan, visa,
	status_history, documents, payments, comments, activity_log,
	created_at, updated_at`

func (r *caseRepoPG) scanCase(row pgx.Row) (*Case, error) {
	var (
		c                                        Case
		clientInfo, visa                         []byte
		attender, plan                           []byte
		history, docs, payments, comments, activity []byte
	)
	err := row.Scan(&c.ID, &c.ClientID, &c.AgentID, &c.Status, &c.Priority,
		&c.AssignedHospital, &c.AssignedUniversity,
		&clientInfo, &attender, &plan, &visa,
		&history, &docs, &payments, &comments, &activity,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(clientInfo, &c.ClientInfo); err != nil {
		return nil, fmt.Errorf("decode client_info: %w", err)
	}
	if len(attender) > 0 {
		if err := json.Unmarshal(attender, &c.AttenderInfo); err != nil {
			return nil, fmt.Errorf("decode attender_info: %w", err)
		}
	}
	if len(plan) > 0 {
		if err := json.Unmarshal(plan, &c.TreatmentPlan); err != nil {
			return nil, fmt.Errorf("decode treatment_plan: %w", err)
		}
	}
	if err := json.Unmarshal(visa, &c.Visa); err != nil {
		return nil, fmt.Errorf("decode visa: %w", err)
	}
	if err := json.Unmarshal(history, &c.StatusHistory); err != nil {
		return nil, fmt.Errorf("decode status_history: %w", err)
	}
	if err := json.Unmarshal(docs, &c.Documents); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	if err := json.Unmarshal(payments, &c.Payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	if err := json.Unmarshal(comments, &c.Comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	if err := json.Unmarshal(activity, &c.ActivityLog); err != nil {
		return nil, fmt.Errorf("decode activity_log: %w", err)
	}
	return &c, nil
}

func encodeCase(c *Case) (clientInfo, attender, plan, visa, history, docs, payments, comments, activity []byte, err error) {
	if clientInfo, err = json.Marshal(c.ClientInfo); err != nil {
		return
	}
	if c.AttenderInfo != nil {
		if attender, err = json.Marshal(c.AttenderInfo); err != nil {
			return
		}
	}
	if c.TreatmentPlan != nil {
		if plan, err = json.Marshal(c.TreatmentPlan); err != nil {
			return
		}
	}
	if visa, err = json.Marshal(c.Visa); err != nil {
		return
	}
	if history, err = json.Marshal(c.StatusHistory); err != nil {
		return
	}
	if docs, err = json.Marshal(c.Documents); err != nil {
		return
	}
	if payments, err = json.Marshal(c.Payments); err != nil {
		return
	}
	if comments, err = json.Marshal(c.Comments); err != nil {
		return
	}
	activity, err = json.Marshal(c.ActivityLog)
	return
}

func (r *caseRepoPG) Create(ctx context.Context, c *Case) error {
	clientInfo, attender, plan, visa, history, docs, payments, comments, activity, err := encodeCase(c)
	if err != nil {
		return fmt.Errorf("encode case: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO cases (id, client_id, agent_id, status, priority,
			assigned_hospital, assigned_university,
			client_info, attender_info, treatment_plan, visa,
			status_history, documents, payments, comments, activity_log,
			created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		c.ID, c.ClientID, c.AgentID, c.Status, c.Priority,
		c.AssignedHospital, c.AssignedUniversity,
		clientInfo, attender, plan, visa,
		history, docs, payments, comments, activity,
		c.CreatedAt, c.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}

func (r *caseRepoPG) GetByID(ctx context.Context, id string) (*Case, error) {
	return r.scanCase(r.pool.QueryRow(ctx, `SELECT `+caseCols+` FROM cases WHERE id = $1`, id))
}

func (r *caseRepoPG) Update(ctx context.Context, c *Case) error {
	clientInfo, attender, plan, visa, history, docs, payments, comments, activity, err := encodeCase(c)
	if err != nil {
		return fmt.Errorf("encode case: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE cases SET client_id=$2, agent_id=$3, status=$4, priority=$5,
			assigned_hospital=$6, assigned_university=$7,
			client_info=$8, attender_info=$9, treatment_plan=$10, visa=$11,
			status_history=$12, documents=$13, payments=$14, comments=$15, activity_log=$16,
			updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.ClientID, c.AgentID, c.Status, c.Priority,
		c.AssignedHospital, c.AssignedUniversity,
		clientInfo, attender, plan, visa,
		history, docs, payments, comments, activity)
	return err
}

func (r *caseRepoPG) listWhere(ctx context.Context, where string, arg interface{}, limit, offset int) ([]*Case, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cases WHERE `+where, arg).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+caseCols+` FROM cases WHERE `+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`, arg, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Case
	for rows.Next() {
		c, err := r.scanCase(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

func (r *caseRepoPG) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*Case, int, error) {
	return r.listWhere(ctx, `client_id = $1`, clientID, limit, offset)
}

func (r *caseRepoPG) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]*Case, int, error) {
	return r.listWhere(ctx, `agent_id = $1`, agentID, limit, offset)
}

func (r *caseRepoPG) ListByHospital(ctx context.Context, hospitalID string, limit, offset int) ([]*Case, int, error) {
	return r.listWhere(ctx, `assigned_hospital = $1`, hospitalID, limit, offset)
}

func (r *caseRepoPG) ListByUniversity(ctx context.Context, universityID string, limit, offset int) ([]*Case, int, error) {
	return r.listWhere(ctx, `assigned_university = $1`, universityID, limit, offset)
}

func (r *caseRepoPG) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Case, int, error) {
	return r.listWhere(ctx, `status = $1`, string(status), limit, offset)
}
