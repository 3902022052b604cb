package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cinema-management/internal/model"
	"cinema-management/internal/repository"
)

// ListGenres handles GET /v1/genres and returns all genres sorted by
// title.
func (h *Handler) ListGenres(c echo.Context) error {
	items, err := h.Genres.GetAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateGenre handles POST /v1/genres.
func (h *Handler) CreateGenre(c echo.Context) error {
	var g model.Genre
	if err := c.Bind(&g); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	g.ID = 0 // ID is never taken from the body
	g.Title = strings.TrimSpace(g.Title)

	fe, err := h.Genres.Save(c.Request().Context(), &g)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create genre"})
	}
	if fe != nil {
		return fieldError(c, fe)
	}
	return c.JSON(http.StatusCreated, g)
}

// GetGenre handles GET /v1/genres/:id and returns the genre together
// with the movies filed under it.
func (h *Handler) GetGenre(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	g, err := h.Genres.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	movies, err := h.Movies.GetByGenre(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"genre": g, "movies": movies})
}

// UpdateGenre handles PUT /v1/genres/:id.
func (h *Handler) UpdateGenre(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var g model.Genre
	if err := c.Bind(&g); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	g.ID = id
	g.Title = strings.TrimSpace(g.Title)

	fe, err := h.Genres.Save(c.Request().Context(), &g)
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if fe != nil {
		return fieldError(c, fe)
	}
	return c.JSON(http.StatusOK, g)
}

// DeleteGenre handles DELETE /v1/genres/:id. Deletion is refused with
// 409 Conflict while movies still reference the genre; the genre and
// its movies are left untouched in that case.
func (h *Handler) DeleteGenre(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	err = h.Genres.Delete(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrGenreNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		case errors.Is(err, repository.ErrGenreInUse):
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete genre: movies still reference it"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
