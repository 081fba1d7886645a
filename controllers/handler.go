// Package controllers exposes the marketplace store over HTTP.
package controllers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/store"
	"github.com/meinhoongagan/taskr/utils"
)

// ActivityFeed lists recently committed store events.
type ActivityFeed interface {
	Recent(ctx context.Context, n int) ([]store.Event, error)
}

// Handler carries the dependencies shared by every route. Uploader and
// Activity are optional.
type Handler struct {
	Store    *store.Store
	Secret   string
	TokenTTL time.Duration
	Uploader utils.Uploader
	Activity ActivityFeed
	Now      func() time.Time
}

func NewHandler(s *store.Store, secret string, ttl time.Duration) *Handler {
	return &Handler{
		Store:    s,
		Secret:   secret,
		TokenTTL: ttl,
		Now:      time.Now,
	}
}

func badBody(c *fiber.Ctx) error {
	return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
}

type page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// paginate slices items by the page and limit query parameters. A limit of
// zero or less returns everything.
func paginate[T any](c *fiber.Ctx, items []T) ([]T, page) {
	p, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	if p < 1 {
		p = 1
	}
	if items == nil {
		items = []T{}
	}
	total := len(items)
	if limit <= 0 {
		return items, page{Page: 1, Limit: total, Total: total, Pages: 1}
	}
	if limit > total {
		limit = total
	}
	if limit == 0 {
		return items, page{Page: p, Limit: 0, Total: 0, Pages: 0}
	}
	start := total
	if p-1 < (total+limit-1)/limit {
		start = (p - 1) * limit
	}
	end := start + min(limit, total-start)
	return items[start:end], page{Page: p, Limit: limit, Total: total, Pages: (total + limit - 1) / limit}
}
