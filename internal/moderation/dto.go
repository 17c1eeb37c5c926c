// AngelaMos | 2026
// dto.go

package moderation

import (
	"time"
)

type AdRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	ImageURL    string `json:"image_url"   validate:"omitempty,url,max=255"`
}

type JobRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Description string `json:"description" validate:"max=4000"`
	Company     string `json:"company"     validate:"required,max=100"`
	Location    string `json:"location"    validate:"max=100"`
	Salary      string `json:"salary"      validate:"max=50"`
}

type AdResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type JobResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToAdResponse(a Ad) AdResponse {
	return AdResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
}

func ToJobResponse(j Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Company:     j.Company,
		Location:    j.Location,
		Salary:      j.Salary,
		IsActive:    j.IsActive,
		CreatedAt:   j.CreatedAt,
	}
}
