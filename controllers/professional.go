package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/middleware"
	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/query"
	"github.com/meinhoongagan/taskr/store"
	"github.com/meinhoongagan/taskr/utils"
)

// ListProfessionals searches the directory by q, category and sort.
func (h *Handler) ListProfessionals(c *fiber.Ctx) error {
	found := query.SearchProfessionals(
		h.Store.Snapshot(),
		c.Query("q"),
		c.Query("category", query.AllCategories),
		query.SortKey(c.Query("sort", string(query.SortRating))),
	)
	items, p := paginate(c, found)
	return c.JSON(fiber.Map{
		"professionals": items,
		"total":         p.Total,
		"page":          p.Page,
		"limit":         p.Limit,
		"pages":         p.Pages,
	})
}

func (h *Handler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": query.Categories(h.Store.Snapshot())})
}

func (h *Handler) GetProfessional(c *fiber.Ctx) error {
	p, err := h.Store.GetProfessional(c.Params("id"))
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) GetProfessionalReviews(c *fiber.Ctx) error {
	snap := h.Store.Snapshot()
	id := c.Params("id")
	if _, ok := snap.Professional(id); !ok {
		return utils.RespondError(c, store.ErrUnknownProfessional)
	}
	return c.JSON(fiber.Map{"reviews": query.ProfessionalReviews(snap, id)})
}

type profileBody struct {
	Title        *string  `json:"title"`
	Bio          *string  `json:"bio"`
	Location     *string  `json:"location"`
	Skills       []string `json:"skills"`
	Experience   *string  `json:"experience"`
	Availability *string  `json:"availability"`
	HourlyRate   *float64 `json:"hourly_rate"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// CreateProfile opens the caller's professional listing.
func (h *Handler) CreateProfile(c *fiber.Ctx) error {
	body := new(profileBody)
	if err := c.BodyParser(body); err != nil {
		return badBody(c)
	}
	p, err := h.Store.CreateProfessionalProfile(middleware.UserID(c), store.ProfileInput{
		Title:        deref(body.Title),
		Bio:          deref(body.Bio),
		Location:     deref(body.Location),
		Skills:       body.Skills,
		Experience:   deref(body.Experience),
		Availability: deref(body.Availability),
		HourlyRate:   deref(body.HourlyRate),
	})
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	p, err := h.ownedProfile(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	body := new(profileBody)
	if err := c.BodyParser(body); err != nil {
		return badBody(c)
	}
	updated, err := h.Store.UpdateProfessionalProfile(p.ID, store.ProfileUpdate{
		Title:        body.Title,
		Bio:          body.Bio,
		Location:     body.Location,
		Skills:       body.Skills,
		Experience:   body.Experience,
		Availability: body.Availability,
		HourlyRate:   body.HourlyRate,
	})
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) AddService(c *fiber.Ctx) error {
	p, err := h.ownedProfile(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	body := new(struct {
		Name        string          `json:"name"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Price       float64         `json:"price"`
		Duration    models.Duration `json:"duration"`
	})
	if err := c.BodyParser(body); err != nil {
		return badBody(c)
	}
	svc, err := h.Store.AddService(p.ID, store.ServiceInput{
		Name:        body.Name,
		Category:    body.Category,
		Description: body.Description,
		Price:       body.Price,
		Duration:    body.Duration,
	})
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(svc)
}

func (h *Handler) RemoveService(c *fiber.Ctx) error {
	p, err := h.ownedProfile(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	if err := h.Store.RemoveService(p.ID, c.Params("serviceId")); err != nil {
		return utils.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadAvatar stores the "avatar" form file and points the profile at it.
func (h *Handler) UploadAvatar(c *fiber.Ctx) error {
	if h.Uploader == nil {
		return utils.Fail(c, fiber.StatusServiceUnavailable, "Media uploads are not configured")
	}
	p, err := h.ownedProfile(c)
	if err != nil {
		return utils.RespondError(c, err)
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "avatar file is required")
	}
	file, err := fh.Open()
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "cannot read avatar file")
	}
	defer file.Close()

	url, err := h.Uploader.Upload(c.UserContext(), file, fh.Filename, fmt.Sprintf("avatar_%s", p.ID), "taskr/avatars")
	if err != nil {
		return utils.RespondError(c, err)
	}
	updated, err := h.Store.UpdateProfessionalProfile(p.ID, store.ProfileUpdate{AvatarURL: &url})
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(updated)
}

// CreateReview records a rating against a profile. When booking_id is given
// it must be a completed booking the caller made with that professional.
func (h *Handler) CreateReview(c *fiber.Ctx) error {
	body := new(struct {
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
		BookingID string `json:"booking_id"`
	})
	if err := c.BodyParser(body); err != nil {
		return badBody(c)
	}
	profileID := c.Params("id")
	userID := middleware.UserID(c)
	in := store.ReviewInput{UserID: userID}

	if body.BookingID != "" {
		b, err := h.Store.GetBooking(body.BookingID)
		if err != nil {
			return utils.RespondError(c, err)
		}
		if b.UserID != userID || b.ProfessionalID != profileID {
			return utils.Fail(c, fiber.StatusForbidden, "You can only review your own bookings")
		}
		if b.Status != models.BookingCompleted {
			return utils.RespondError(c, &store.Error{Kind: store.KindInvalidTransition, Message: "only completed bookings can be reviewed"})
		}
		in.BookingID = body.BookingID
	}

	r, err := h.Store.RecordReview(profileID, body.Rating, body.Comment, in)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

// ownedProfile loads the :id profile and checks the caller owns it. Admins
// may act on any profile.
func (h *Handler) ownedProfile(c *fiber.Ctx) (models.ProfessionalProfile, error) {
	p, err := h.Store.GetProfessional(c.Params("id"))
	if err != nil {
		return models.ProfessionalProfile{}, err
	}
	if p.UserID != middleware.UserID(c) && middleware.Role(c) != models.RoleAdmin {
		return models.ProfessionalProfile{}, &store.Error{Kind: store.KindRoleNotPermitted, Message: "profile belongs to another user"}
	}
	return p, nil
}
