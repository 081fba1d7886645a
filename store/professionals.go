package store

import (
	"strings"
	"time"

	"github.com/meinhoongagan/taskr/models"
)

// ProfileInput holds the editable listing fields of a professional profile.
type ProfileInput struct {
	Title        string
	Bio          string
	Location     string
	Skills       []string
	Experience   string
	Availability string
	HourlyRate   float64
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	Title        *string
	Bio          *string
	Location     *string
	Skills       []string
	Experience   *string
	Availability *string
	HourlyRate   *float64
	AvatarURL    *string
}

// ServiceInput describes a service to list under a profile.
type ServiceInput struct {
	Name        string
	Category    string
	Description string
	Price       float64
	Duration    models.Duration
}

// CreateProfessionalProfile opens a listing for a professional user. Each
// user can own at most one profile.
func (s *Store) CreateProfessionalProfile(userID string, in ProfileInput) (models.ProfessionalProfile, error) {
	if in.HourlyRate < 0 {
		return models.ProfessionalProfile{}, newError(KindInvalidValue, "hourly rate must not be negative")
	}

	var created models.ProfessionalProfile
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		u := st.userIndex(userID)
		if u < 0 {
			return nil, newError(KindUnknownUser, "user %s not found", userID)
		}
		owner := st.users[u]
		if !owner.Role.CanOwnProfile() {
			return nil, newError(KindRoleNotPermitted, "role %s cannot own a professional profile", owner.Role)
		}
		if st.profileIndexByUser(userID) >= 0 {
			return nil, newError(KindProfileAlreadyExists, "user %s already has a profile", userID)
		}
		created = models.ProfessionalProfile{
			ID:           s.newID(),
			UserID:       userID,
			Name:         owner.Name,
			Title:        strings.TrimSpace(in.Title),
			Bio:          in.Bio,
			Location:     in.Location,
			Skills:       cleanSkills(in.Skills),
			Experience:   in.Experience,
			Availability: in.Availability,
			HourlyRate:   in.HourlyRate,
			Services:     []models.Service{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		st.profiles = append(st.profiles, created)
		return []Event{{Kind: EventProfileCreated, EntityID: created.ID}}, nil
	})
	return created.Clone(), err
}

// UpdateProfessionalProfile merges the non-nil fields of upd. Identity,
// services and review aggregates are not reachable through it.
func (s *Store) UpdateProfessionalProfile(id string, upd ProfileUpdate) (models.ProfessionalProfile, error) {
	if upd.HourlyRate != nil && *upd.HourlyRate < 0 {
		return models.ProfessionalProfile{}, newError(KindInvalidValue, "hourly rate must not be negative")
	}

	var updated models.ProfessionalProfile
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		i := st.profileIndex(id)
		if i < 0 {
			return nil, newError(KindUnknownProfessional, "profile %s not found", id)
		}
		p := st.profiles[i]
		if upd.Title != nil {
			p.Title = strings.TrimSpace(*upd.Title)
		}
		if upd.Bio != nil {
			p.Bio = *upd.Bio
		}
		if upd.Location != nil {
			p.Location = *upd.Location
		}
		if upd.Skills != nil {
			p.Skills = cleanSkills(upd.Skills)
		}
		if upd.Experience != nil {
			p.Experience = *upd.Experience
		}
		if upd.Availability != nil {
			p.Availability = *upd.Availability
		}
		if upd.HourlyRate != nil {
			p.HourlyRate = *upd.HourlyRate
		}
		if upd.AvatarURL != nil {
			p.AvatarURL = *upd.AvatarURL
		}
		p.UpdatedAt = now
		st.profiles[i] = p
		updated = p
		return []Event{{Kind: EventProfileUpdated, EntityID: id}}, nil
	})
	return updated.Clone(), err
}

// GetProfessional returns the profile with id.
func (s *Store) GetProfessional(id string) (models.ProfessionalProfile, error) {
	var (
		p  models.ProfessionalProfile
		ok bool
	)
	s.read(func(st *state) {
		if i := st.profileIndex(id); i >= 0 {
			p, ok = st.profiles[i].Clone(), true
		}
	})
	if !ok {
		return models.ProfessionalProfile{}, newError(KindUnknownProfessional, "profile %s not found", id)
	}
	return p, nil
}

// GetProfessionalByUser returns the profile owned by userID.
func (s *Store) GetProfessionalByUser(userID string) (models.ProfessionalProfile, error) {
	var (
		p  models.ProfessionalProfile
		ok bool
	)
	s.read(func(st *state) {
		if i := st.profileIndexByUser(userID); i >= 0 {
			p, ok = st.profiles[i].Clone(), true
		}
	})
	if !ok {
		return models.ProfessionalProfile{}, newError(KindUnknownProfessional, "user %s has no profile", userID)
	}
	return p, nil
}

// AddService appends a new service to the profile's ordered list.
func (s *Store) AddService(profileID string, in ServiceInput) (models.Service, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Service{}, newError(KindMissingRequiredField, "service name is required")
	}
	if in.Price < 0 {
		return models.Service{}, newError(KindInvalidValue, "price must not be negative")
	}
	if !in.Duration.Valid() {
		return models.Service{}, newError(KindInvalidValue, "invalid duration %dh %dm", in.Duration.Hours, in.Duration.Minutes)
	}

	var added models.Service
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		i := st.profileIndex(profileID)
		if i < 0 {
			return nil, newError(KindUnknownProfessional, "profile %s not found", profileID)
		}
		p := st.profiles[i]
		id := s.newID()
		if _, taken := p.FindService(id); taken {
			return nil, newError(KindInvalidValue, "service id %s already used", id)
		}
		added = models.Service{
			ID:             id,
			ProfessionalID: profileID,
			Name:           name,
			Category:       strings.TrimSpace(in.Category),
			Description:    in.Description,
			Price:          in.Price,
			Duration:       in.Duration,
		}
		p.Services = append(p.Services, added)
		p.UpdatedAt = now
		st.profiles[i] = p
		return []Event{{Kind: EventServiceAdded, EntityID: added.ID}}, nil
	})
	return added, err
}

// RemoveService drops a service from the profile. Removing a service that is
// not listed is a no-op. Bookings that reference it are kept.
func (s *Store) RemoveService(profileID, serviceID string) error {
	return s.mutate(func(st *state, now time.Time) ([]Event, error) {
		i := st.profileIndex(profileID)
		if i < 0 {
			return nil, newError(KindUnknownProfessional, "profile %s not found", profileID)
		}
		p := st.profiles[i]
		kept := p.Services[:0]
		removed := false
		for _, svc := range p.Services {
			if svc.ID == serviceID {
				removed = true
				continue
			}
			kept = append(kept, svc)
		}
		if !removed {
			return nil, nil
		}
		p.Services = kept
		p.UpdatedAt = now
		st.profiles[i] = p
		return []Event{{Kind: EventServiceRemoved, EntityID: serviceID}}, nil
	})
}

// ReviewInput carries optional attribution for a review.
type ReviewInput struct {
	UserID    string
	BookingID string
}

// RecordReview appends a review and recomputes the profile's rating and
// review count from every review that references it.
func (s *Store) RecordReview(profileID string, rating int, comment string, in ReviewInput) (models.Review, error) {
	if !models.ValidRating(rating) {
		return models.Review{}, newError(KindInvalidRating, "rating must be between %d and %d, got %d", models.MinRating, models.MaxRating, rating)
	}

	var recorded models.Review
	err := s.mutate(func(st *state, now time.Time) ([]Event, error) {
		i := st.profileIndex(profileID)
		if i < 0 {
			return nil, newError(KindUnknownProfessional, "profile %s not found", profileID)
		}
		recorded = models.Review{
			ID:             s.newID(),
			ProfessionalID: profileID,
			Rating:         rating,
			Comment:        strings.TrimSpace(comment),
			CreatedAt:      now,
		}
		if in.UserID != "" {
			uid := in.UserID
			recorded.UserID = &uid
		}
		if in.BookingID != "" {
			bid := in.BookingID
			recorded.BookingID = &bid
		}
		st.reviews = append(st.reviews, recorded)

		var ratings []int
		for _, r := range st.reviews {
			if r.ProfessionalID == profileID {
				ratings = append(ratings, r.Rating)
			}
		}
		p := st.profiles[i]
		p.Rating = models.AverageRating(ratings)
		p.ReviewCount = len(ratings)
		st.profiles[i] = p
		return []Event{{Kind: EventReviewRecorded, EntityID: recorded.ID}}, nil
	})
	return recorded.Clone(), err
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		if sk = strings.TrimSpace(sk); sk != "" {
			out = append(out, sk)
		}
	}
	return out
}
