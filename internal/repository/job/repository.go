package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/volkante/student-job-market/internal/dto"
)

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

const jobColumns = `
id,
title,
company,
location,
salary,
employment_type,
field,
contact_email,
description,
requirements,
benefits,
to_char(start_date,'YYYY-MM-DD'),
status,
created_at`

// Create stores a posting and returns the assigned id. The store owns id
// and created_at; whatever the caller put there is ignored.
func (r *Repository) Create(ctx context.Context, p dto.JobPosting) (int64, error) {
	query := `
insert into job
  (title, company, location, salary, employment_type, field, contact_email, description, requirements, benefits, start_date, status, created_at)
values
  (@title, @company, @location, @salary, @employment_type, @field, @contact_email, @description, @requirements, @benefits, nullif(@start_date, '')::date, @status, now())
returning id;
`
	args := pgx.NamedArgs{
		"title":           p.Title,
		"company":         p.Company,
		"location":        p.Location,
		"salary":          p.Salary,
		"employment_type": p.EmploymentType,
		"field":           p.Field,
		"contact_email":   p.ContactEmail,
		"description":     p.Description,
		"requirements":    p.Requirements,
		"benefits":        p.Benefits,
		"start_date":      strptr(p.StartDate),
		"status":          string(p.Status),
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args).Scan(&id); err != nil {
		return 0, fmt.Errorf("pool.QueryRow: %w", err)
	}

	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*dto.JobPosting, error) {
	query := `select ` + jobColumns + ` from job where id = $1;`

	row := r.pool.QueryRow(ctx, query, id)

	out, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return out, nil
}

// ListByStatus returns every posting in the given status. The recency order
// here is a store-level default; callers sort explicitly and must not rely
// on it.
func (r *Repository) ListByStatus(ctx context.Context, status dto.Status) ([]dto.JobPosting, error) {
	query := `select ` + jobColumns + ` from job where status = $1 order by created_at desc, id desc;`

	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

func (r *Repository) ListAll(ctx context.Context) ([]dto.JobPosting, error) {
	query := `select ` + jobColumns + ` from job order by created_at desc, id desc;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// UpdateStatus sets the moderation status in a single statement, so two
// admins racing on the same id serialize at the row and the last write wins.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status dto.Status) error {
	query := `update job set status = $2 where id = $1;`

	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `delete from job where id = $1;`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

func (r *Repository) CountByStatus(ctx context.Context) (dto.Stats, error) {
	query := `
select
  count(*) filter (where status = 'pending'),
  count(*) filter (where status = 'approved'),
  count(*) filter (where status = 'rejected'),
  count(*)
from job;
`
	var stats dto.Stats

	row := r.pool.QueryRow(ctx, query)
	if err := row.Scan(&stats.Pending, &stats.Approved, &stats.Rejected, &stats.Total); err != nil {
		return dto.Stats{}, fmt.Errorf("row.Scan: %w", err)
	}

	return stats, nil
}

func scanJob(row pgx.Row) (*dto.JobPosting, error) {
	var (
		out       dto.JobPosting
		status    string
		startDate *string
	)

	err := row.Scan(
		&out.ID,
		&out.Title,
		&out.Company,
		&out.Location,
		&out.Salary,
		&out.EmploymentType,
		&out.Field,
		&out.ContactEmail,
		&out.Description,
		&out.Requirements,
		&out.Benefits,
		&startDate,
		&status,
		&out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	out.StartDate = startDate
	out.Status = dto.Status(status)

	return &out, nil
}

func collectJobs(rows pgx.Rows) ([]dto.JobPosting, error) {
	var out []dto.JobPosting

	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

func strptr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
