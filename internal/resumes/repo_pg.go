package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements ResumesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, owner_id, file_key, description, ats_score, submitted_at`

// Insert stores a new resume record.
func (r *PGRepo) Insert(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (id, owner_id, file_key, description, ats_score, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.OwnerID,
		res.FileKey,
		res.Description,
		res.ATSScore,
		res.SubmittedAt,
	)
	return err
}

// FindByKey returns the caller's resume record with the given file key.
func (r *PGRepo) FindByKey(ctx context.Context, ownerId, fileKey string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE owner_id = $1 AND file_key = $2
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, ownerId, fileKey))
}

// FindLatestByOwner returns the most recently submitted resume for a user.
func (r *PGRepo) FindLatestByOwner(ctx context.Context, ownerId string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE owner_id = $1
ORDER BY submitted_at DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, ownerId))
}

// ListByOwner returns all resumes for a user, oldest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerId string) ([]Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE owner_id = $1
ORDER BY submitted_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, ownerId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		var res Resume
		if err := rows.Scan(
			&res.ID,
			&res.OwnerID,
			&res.FileKey,
			&res.Description,
			&res.ATSScore,
			&res.SubmittedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// UpsertScore writes the score for the record with the given file key,
// creating the record if no upload registered it first. The conflict target
// is the unique file_key index, so concurrent writers settle on one row.
func (r *PGRepo) UpsertScore(ctx context.Context, ownerId, fileKey string, score int) (Resume, error) {
	const query = `
INSERT INTO resumes (id, owner_id, file_key, description, ats_score, submitted_at)
VALUES ($1, $2, $3, '', $4, $5)
ON CONFLICT (file_key) DO UPDATE SET ats_score = EXCLUDED.ats_score
RETURNING ` + resumeColumns

	row := r.DB.QueryRowContext(
		ctx,
		query,
		uuid.NewString(),
		ownerId,
		fileKey,
		score,
		time.Now().UTC(),
	)
	return r.scanOne(row)
}

// UpdateDescription replaces the description on the caller's record.
func (r *PGRepo) UpdateDescription(ctx context.Context, ownerId, id, description string) (Resume, error) {
	const query = `
UPDATE resumes
SET description = $1
WHERE owner_id = $2 AND id = $3
RETURNING ` + resumeColumns
	return r.scanOne(r.DB.QueryRowContext(ctx, query, description, ownerId, id))
}

// DeleteByOwner removes every resume owned by a user and reports the count.
func (r *PGRepo) DeleteByOwner(ctx context.Context, ownerId string) (int, error) {
	const query = `DELETE FROM resumes WHERE owner_id = $1`
	res, err := r.DB.ExecContext(ctx, query, ownerId)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	return int(deleted), nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Resume, error) {
	var res Resume
	err := row.Scan(
		&res.ID,
		&res.OwnerID,
		&res.FileKey,
		&res.Description,
		&res.ATSScore,
		&res.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

var _ ResumesRepo = (*PGRepo)(nil)
