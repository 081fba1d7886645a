package models

import (
	"math"
	"time"
)

// ProfessionalProfile is a provider's public listing. Rating and ReviewCount
// are derived from the reviews that reference the profile.
type ProfessionalProfile struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex"`
	Position     int       `json:"-"`
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Bio          string    `json:"bio"`
	Location     string    `json:"location"`
	Skills       []string  `json:"skills" gorm:"serializer:json"`
	Experience   string    `json:"experience"`
	Availability string    `json:"availability"`
	AvatarURL    string    `json:"avatar_url"`
	HourlyRate   float64   `json:"hourly_rate"`
	Rating       float64   `json:"rating" gorm:"type:decimal(2,1)"`
	ReviewCount  int       `json:"review_count"`
	Services     []Service `json:"services" gorm:"foreignKey:ProfessionalID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FindService returns the service with the given id, if the profile offers it.
func (p *ProfessionalProfile) FindService(id string) (Service, bool) {
	for _, s := range p.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// HasCategory reports whether any offered service is in category.
func (p *ProfessionalProfile) HasCategory(category string) bool {
	for _, s := range p.Services {
		if s.Category == category {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with p.
func (p ProfessionalProfile) Clone() ProfessionalProfile {
	if p.Skills != nil {
		p.Skills = append([]string(nil), p.Skills...)
	}
	if p.Services != nil {
		p.Services = append([]Service(nil), p.Services...)
	}
	return p
}

// AverageRating is the mean of ratings rounded to one decimal, 0 when empty.
// Ratings are integers so the sum, and therefore the result, does not depend
// on the order they were recorded in.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}
