// AngelaMos | 2026
// service.go

package moderation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/baytalsudani/console/internal/core"
)

type Service struct {
	ads  AdRepository
	jobs JobRepository
}

func NewService(ads AdRepository, jobs JobRepository) *Service {
	return &Service{ads: ads, jobs: jobs}
}

func (s *Service) ListAds(ctx context.Context, page core.PageRequest) (core.Page[Ad], error) {
	return s.ads.List(ctx, page)
}

func (s *Service) CreateAd(ctx context.Context, req AdRequest) (*Ad, error) {
	if err := core.Validate(req); err != nil {
		return nil, err
	}

	ad := &Ad{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		IsActive:    true,
	}
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "ad created", "ad_id", ad.ID)
	return ad, nil
}

func (s *Service) ToggleAd(ctx context.Context, id int64) (*Ad, error) {
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ad.IsActive = !ad.IsActive
	if err := s.ads.SetActive(ctx, id, ad.IsActive); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *Service) DeleteAd(ctx context.Context, id int64) error {
	return s.ads.Delete(ctx, id)
}

func (s *Service) ListJobs(ctx context.Context, page core.PageRequest) (core.Page[Job], error) {
	return s.jobs.List(ctx, page)
}

// CreateJob stores a posting that still awaits approval.
func (s *Service) CreateJob(ctx context.Context, req JobRequest) (*Job, error) {
	if err := core.Validate(req); err != nil {
		return nil, err
	}

	job := &Job{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Company:     strings.TrimSpace(req.Company),
		Location:    strings.TrimSpace(req.Location),
		Salary:      strings.TrimSpace(req.Salary),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "job created", "job_id", job.ID)
	return job, nil
}

func (s *Service) ApproveJob(ctx context.Context, id int64) (*Job, error) {
	return s.reviewJob(ctx, id, true)
}

func (s *Service) RejectJob(ctx context.Context, id int64) (*Job, error) {
	return s.reviewJob(ctx, id, false)
}

func (s *Service) reviewJob(ctx context.Context, id int64, approved bool) (*Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.IsActive != approved {
		if err := s.jobs.SetActive(ctx, id, approved); err != nil {
			return nil, err
		}
		job.IsActive = approved
	}

	slog.InfoContext(ctx, "job reviewed", "job_id", id, "approved", approved)
	return job, nil
}

func (s *Service) DeleteJob(ctx context.Context, id int64) error {
	return s.jobs.Delete(ctx, id)
}
