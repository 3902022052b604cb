package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"cinema-management/internal/model"
	"cinema-management/internal/repository"
)

// ListMovies handles GET /v1/movies. A non-empty ?search= wins over
// ?genre_id=; with neither, the whole catalog is returned sorted by
// title.
func (h *Handler) ListMovies(c echo.Context) error {
	ctx := c.Request().Context()
	search := strings.TrimSpace(c.QueryParam("search"))
	genreParam := strings.TrimSpace(c.QueryParam("genre_id"))

	var (
		items []*model.Movie
		err   error
	)
	switch {
	case search != "":
		items, err = h.Movies.Search(ctx, search)
	case genreParam != "":
		genreID, perr := strconv.ParseUint(genreParam, 10, 64)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre_id"})
		}
		items, err = h.Movies.GetByGenre(ctx, genreID)
	default:
		items, err = h.Movies.GetAll(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateMovie handles POST /v1/movies.
func (h *Handler) CreateMovie(c echo.Context) error {
	var m model.Movie
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m.ID = 0
	m.Title = strings.TrimSpace(m.Title)

	fe, err := h.Movies.Save(c.Request().Context(), &m)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}
	if fe != nil {
		return fieldError(c, fe)
	}
	return c.JSON(http.StatusCreated, m)
}

// GetMovie handles GET /v1/movies/:id and returns the movie together
// with the tickets sold for it.
func (h *Handler) GetMovie(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	tickets, err := h.Tickets.GetByMovie(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie":    m,
		"tickets":  tickets,
		"duration": m.FormattedDuration(),
		"price":    m.FormattedTicketPrice(),
	})
}

// UpdateMovie handles PUT /v1/movies/:id.
func (h *Handler) UpdateMovie(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var m model.Movie
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m.ID = id
	m.Title = strings.TrimSpace(m.Title)

	fe, err := h.Movies.Save(c.Request().Context(), &m)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if fe != nil {
		return fieldError(c, fe)
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMovie handles DELETE /v1/movies/:id. All tickets sold for the
// movie are deleted along with it, in one transaction.
func (h *Handler) DeleteMovie(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
