package jobs

import (
	"context"
	"database/sql"
)

// PGRepo implements JobsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert stores a saved job.
func (r *PGRepo) Insert(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, owner_id, company, title, location, description, redirect_url, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.OwnerID,
		job.Company,
		job.Title,
		job.Location,
		job.Description,
		job.RedirectURL,
		job.SubmittedAt,
	)
	return err
}

// ListByOwner returns the user's saved jobs, newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerId string) ([]Job, error) {
	const query = `
SELECT id, owner_id, company, title, location, description, redirect_url, submitted_at
FROM jobs
WHERE owner_id = $1
ORDER BY submitted_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, ownerId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(
			&job.ID,
			&job.OwnerID,
			&job.Company,
			&job.Title,
			&job.Location,
			&job.Description,
			&job.RedirectURL,
			&job.SubmittedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// DeleteByOwner removes every saved job owned by a user and reports the count.
func (r *PGRepo) DeleteByOwner(ctx context.Context, ownerId string) (int, error) {
	const query = `DELETE FROM jobs WHERE owner_id = $1`
	res, err := r.DB.ExecContext(ctx, query, ownerId)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	return int(deleted), nil
}

var _ JobsRepo = (*PGRepo)(nil)
