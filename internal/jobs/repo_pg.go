package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"placement-backend/internal/catalog"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Replace writes snap and its postings in one transaction and drops every
// older version.
func (r *PGRepo) Replace(ctx context.Context, snap Snapshot) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_versions`); err != nil {
		return fmt.Errorf("clear versions: %w", err)
	}

	const insertVersion = `
INSERT INTO catalog_versions (id, source, accepted, rejected, loaded_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertVersion,
		snap.Version,
		snap.Source,
		len(snap.Jobs),
		len(snap.Rejected),
		snap.LoadedAt,
	); err != nil {
		return fmt.Errorf("insert version: %w", err)
	}

	const insertJob = `
INSERT INTO catalog_jobs (
    version_id,
    position,
    job_id,
    title,
    company,
    location,
    salary_range,
    required_skills,
    experience_level,
    description
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, job := range snap.Jobs {
		skills, err := json.Marshal(job.RequiredSkills)
		if err != nil {
			return fmt.Errorf("encode skills for job %s: %w", job.ID, err)
		}
		if _, err := tx.ExecContext(ctx, insertJob,
			snap.Version,
			i,
			job.ID,
			job.Title,
			job.Company,
			job.Location,
			job.SalaryRange,
			skills,
			job.ExperienceLevel,
			job.Description,
		); err != nil {
			return fmt.Errorf("insert job %s: %w", job.ID, err)
		}
	}

	const insertRejection = `
INSERT INTO catalog_rejections (version_id, line, reason, raw)
VALUES ($1, $2, $3, $4)`
	for _, rej := range snap.Rejected {
		if _, err := tx.ExecContext(ctx, insertRejection, snap.Version, rej.Line, rej.Reason(), rej.Raw); err != nil {
			return fmt.Errorf("insert rejection line %d: %w", rej.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Latest loads the newest version with its postings in catalog order.
// Rejections are kept for audit only and are not loaded back.
func (r *PGRepo) Latest(ctx context.Context) (Snapshot, error) {
	const versionQuery = `
SELECT id, source, loaded_at
FROM catalog_versions
ORDER BY loaded_at DESC
LIMIT 1`
	var snap Snapshot
	err := r.DB.QueryRowContext(ctx, versionQuery).Scan(&snap.Version, &snap.Source, &snap.LoadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}

	const jobsQuery = `
SELECT job_id, title, company, location, salary_range, required_skills, experience_level, description
FROM catalog_jobs
WHERE version_id = $1
ORDER BY position ASC`
	rows, err := r.DB.QueryContext(ctx, jobsQuery, snap.Version)
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var job catalog.JobPosting
		var skills []byte
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Company,
			&job.Location,
			&job.SalaryRange,
			&skills,
			&job.ExperienceLevel,
			&job.Description,
		); err != nil {
			return Snapshot{}, err
		}
		if err := json.Unmarshal(skills, &job.RequiredSkills); err != nil {
			return Snapshot{}, fmt.Errorf("decode skills for job %s: %w", job.ID, err)
		}
		snap.Jobs = append(snap.Jobs, job)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

var _ Repo = (*PGRepo)(nil)
