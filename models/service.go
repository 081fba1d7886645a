package models

// Service is a priced offering listed under a professional profile. Its ID is
// unique within the owning profile's list.
type Service struct {
	ID             string   `json:"id" gorm:"primaryKey"`
	ProfessionalID string   `json:"professional_id" gorm:"primaryKey"`
	Position       int      `json:"-"`
	Name           string   `json:"name"`
	Category       string   `json:"category" gorm:"index"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	Duration       Duration `json:"duration" gorm:"type:jsonb"`
}
