package utils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/taskr/store"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string     `json:"message"`
	Error   string     `json:"error"`
	Code    store.Kind `json:"code,omitempty"`
}

// StatusFor maps a store error kind to an HTTP status.
func StatusFor(err error) int {
	switch store.KindOf(err) {
	case store.KindDuplicateEmail, store.KindProfileAlreadyExists:
		return fiber.StatusConflict
	case store.KindUnknownProfessional, store.KindUnknownService, store.KindUnknownUser,
		store.KindUnknownBooking, store.KindUnknownTicket:
		return fiber.StatusNotFound
	case store.KindMissingRequiredField, store.KindInvalidValue, store.KindInvalidRating:
		return fiber.StatusBadRequest
	case store.KindInvalidTransition, store.KindTicketClosed:
		return fiber.StatusUnprocessableEntity
	case store.KindRoleNotPermitted:
		return fiber.StatusForbidden
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// RespondError writes err as an ErrorResponse. Unexpected errors are logged
// and their details withheld from the client.
func RespondError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	resp := ErrorResponse{Message: err.Error(), Error: statusText(status), Code: store.KindOf(err)}
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		resp.Message = "Something went wrong"
	}
	return c.Status(status).JSON(resp)
}

// Fail writes a plain ErrorResponse with the given status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Message: message, Error: statusText(status)})
}

func statusText(status int) string {
	return fiber.NewError(status).Message
}
