// AngelaMos | 2026
// repository.go

package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baytalsudani/console/internal/core"
)

type AdRepository interface {
	List(ctx context.Context, page core.PageRequest) (core.Page[Ad], error)
	GetByID(ctx context.Context, id int64) (*Ad, error)
	Create(ctx context.Context, ad *Ad) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type JobRepository interface {
	List(ctx context.Context, page core.PageRequest) (core.Page[Job], error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	Create(ctx context.Context, job *Job) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// Ads and jobs own nothing, so deletes are single statements.

type adRepository struct {
	db core.DBTX
}

func NewAdRepository(db core.DBTX) AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) List(ctx context.Context, page core.PageRequest) (core.Page[Ad], error) {
	page.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM ads`); err != nil {
		return core.Page[Ad]{}, fmt.Errorf("count ads: %w", err)
	}

	var ads []Ad
	err := r.db.SelectContext(ctx, &ads, `
		SELECT id, title, description, image_url, is_active, created_at, updated_at
		FROM ads
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, page.PageSize, page.Offset())
	if err != nil {
		return core.Page[Ad]{}, fmt.Errorf("list ads: %w", err)
	}

	return core.NewPage(ads, total, page), nil
}

func (r *adRepository) GetByID(ctx context.Context, id int64) (*Ad, error) {
	var ad Ad
	err := r.db.GetContext(ctx, &ad, `
		SELECT id, title, description, image_url, is_active, created_at, updated_at
		FROM ads
		WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ad: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ad: %w", err)
	}
	return &ad, nil
}

func (r *adRepository) Create(ctx context.Context, ad *Ad) error {
	err := r.db.GetContext(ctx, ad, `
		INSERT INTO ads (title, description, image_url, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		ad.Title, ad.Description, ad.ImageURL, ad.IsActive)
	if err != nil {
		return fmt.Errorf("create ad: %w", err)
	}
	return nil
}

func (r *adRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return core.ExecOne(ctx, r.db, "set ad active", `
		UPDATE ads
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`, id, active)
}

func (r *adRepository) Delete(ctx context.Context, id int64) error {
	return core.ExecOne(ctx, r.db, "delete ad", `DELETE FROM ads WHERE id = $1`, id)
}

type jobRepository struct {
	db core.DBTX
}

func NewJobRepository(db core.DBTX) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) List(ctx context.Context, page core.PageRequest) (core.Page[Job], error) {
	page.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM jobs`); err != nil {
		return core.Page[Job]{}, fmt.Errorf("count jobs: %w", err)
	}

	var jobs []Job
	err := r.db.SelectContext(ctx, &jobs, `
		SELECT id, title, description, company, location, salary, is_active,
		       created_at, updated_at
		FROM jobs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, page.PageSize, page.Offset())
	if err != nil {
		return core.Page[Job]{}, fmt.Errorf("list jobs: %w", err)
	}

	return core.NewPage(jobs, total, page), nil
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*Job, error) {
	var job Job
	err := r.db.GetContext(ctx, &job, `
		SELECT id, title, description, company, location, salary, is_active,
		       created_at, updated_at
		FROM jobs
		WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) Create(ctx context.Context, job *Job) error {
	err := r.db.GetContext(ctx, job, `
		INSERT INTO jobs (title, description, company, location, salary, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		job.Title, job.Description, job.Company, job.Location, job.Salary, job.IsActive)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (r *jobRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return core.ExecOne(ctx, r.db, "set job active", `
		UPDATE jobs
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`, id, active)
}

func (r *jobRepository) Delete(ctx context.Context, id int64) error {
	return core.ExecOne(ctx, r.db, "delete job", `DELETE FROM jobs WHERE id = $1`, id)
}
