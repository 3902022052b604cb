// Package handler defines the HTTP handlers translating requests into
// service calls. Handlers bind and parse input, map service results to
// status codes (404 not found, 409 blocked delete, 422 validation) and
// never leak raw storage errors to clients.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cinema-management/internal/model"
	"cinema-management/internal/service"
)

// Handler bundles the application services used by the HTTP layer.
type Handler struct {
	Genres  *service.GenreService
	Movies  *service.MovieService
	Tickets *service.TicketService
}

// NewHandler constructs a Handler and panics if any dependency is nil.
func NewHandler(genres *service.GenreService, movies *service.MovieService, tickets *service.TicketService) *Handler {
	if genres == nil || movies == nil || tickets == nil {
		panic("nil service passed to NewHandler")
	}
	return &Handler{Genres: genres, Movies: movies, Tickets: tickets}
}

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// fieldError renders a validation failure as a 422 with the offending
// field tagged, so clients can redisplay the form with the message in
// place.
func fieldError(c echo.Context, fe *model.FieldError) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"error":   "validation_failed",
		"field":   fe.Field,
		"message": fe.Message,
	})
}
