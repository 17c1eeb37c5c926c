// AngelaMos | 2026
// moderation.go

package remote

import (
	"context"
	"fmt"

	"github.com/baytalsudani/console/internal/apiclient"
	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/moderation"
)

type apiAd struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   apiclient.Time `json:"created_at"`
	UpdatedAt   apiclient.Time `json:"updated_at"`
}

func (a apiAd) toAd() (moderation.Ad, error) {
	return moderation.Ad{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt.Time,
		UpdatedAt:   a.UpdatedAt.Time,
	}, nil
}

type apiJob struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Company     string         `json:"company"`
	Location    string         `json:"location"`
	Salary      string         `json:"salary"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   apiclient.Time `json:"created_at"`
	UpdatedAt   apiclient.Time `json:"updated_at"`
}

func (j apiJob) toJob() (moderation.Job, error) {
	return moderation.Job{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Company:     j.Company,
		Location:    j.Location,
		Salary:      j.Salary,
		IsActive:    j.IsActive,
		CreatedAt:   j.CreatedAt.Time,
		UpdatedAt:   j.UpdatedAt.Time,
	}, nil
}

type AdRepository struct {
	ads *apiclient.Resource[apiAd]
}

func NewAdRepository(client *apiclient.Client) *AdRepository {
	return &AdRepository{ads: apiclient.NewResource[apiAd](client, "/ads", "ads", "ad")}
}

var _ moderation.AdRepository = (*AdRepository)(nil)

func (r *AdRepository) List(ctx context.Context, page core.PageRequest) (core.Page[moderation.Ad], error) {
	page.Normalize()
	items, err := r.ads.List(ctx, page, nil)
	if err != nil {
		return core.Page[moderation.Ad]{}, fmt.Errorf("list ads: %w", err)
	}
	return mapPage(items, apiAd.toAd)
}

func (r *AdRepository) GetByID(ctx context.Context, id int64) (*moderation.Ad, error) {
	item, err := r.ads.Get(ctx, id)
	return one(item, err, "get ad", apiAd.toAd)
}

func (r *AdRepository) Create(ctx context.Context, ad *moderation.Ad) error {
	item, err := r.ads.Create(ctx, map[string]any{
		"title":       ad.Title,
		"description": ad.Description,
		"image_url":   ad.ImageURL,
		"is_active":   ad.IsActive,
	})
	created, err := one(item, err, "create ad", apiAd.toAd)
	if err != nil {
		return err
	}
	ad.ID = created.ID
	ad.CreatedAt = created.CreatedAt
	ad.UpdatedAt = created.UpdatedAt
	return nil
}

func (r *AdRepository) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := r.ads.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set ad active: %w", err)
	}
	return nil
}

func (r *AdRepository) Delete(ctx context.Context, id int64) error {
	if err := r.ads.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ad %d: %w", id, err)
	}
	return nil
}

type JobRepository struct {
	jobs *apiclient.Resource[apiJob]
}

func NewJobRepository(client *apiclient.Client) *JobRepository {
	return &JobRepository{jobs: apiclient.NewResource[apiJob](client, "/jobs", "jobs", "job")}
}

var _ moderation.JobRepository = (*JobRepository)(nil)

func (r *JobRepository) List(ctx context.Context, page core.PageRequest) (core.Page[moderation.Job], error) {
	page.Normalize()
	items, err := r.jobs.List(ctx, page, nil)
	if err != nil {
		return core.Page[moderation.Job]{}, fmt.Errorf("list jobs: %w", err)
	}
	return mapPage(items, apiJob.toJob)
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*moderation.Job, error) {
	item, err := r.jobs.Get(ctx, id)
	return one(item, err, "get job", apiJob.toJob)
}

func (r *JobRepository) Create(ctx context.Context, job *moderation.Job) error {
	item, err := r.jobs.Create(ctx, map[string]any{
		"title":       job.Title,
		"description": job.Description,
		"company":     job.Company,
		"location":    job.Location,
		"salary":      job.Salary,
		"is_active":   job.IsActive,
	})
	created, err := one(item, err, "create job", apiJob.toJob)
	if err != nil {
		return err
	}
	job.ID = created.ID
	job.CreatedAt = created.CreatedAt
	job.UpdatedAt = created.UpdatedAt
	return nil
}

func (r *JobRepository) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := r.jobs.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set job active: %w", err)
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	if err := r.jobs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job %d: %w", id, err)
	}
	return nil
}
