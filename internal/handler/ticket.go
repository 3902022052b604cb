package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cinema-management/internal/model"
	"cinema-management/internal/repository"
)

// ListTickets handles GET /v1/tickets. With ?customer= the list is
// narrowed to purchases by matching customer names; either way tickets
// come back most recent first.
func (h *Handler) ListTickets(c echo.Context) error {
	ctx := c.Request().Context()
	customer := strings.TrimSpace(c.QueryParam("customer"))

	var (
		items []*model.Ticket
		err   error
	)
	if customer != "" {
		items, err = h.Tickets.GetByCustomer(ctx, customer)
	} else {
		items, err = h.Tickets.GetAll(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateTicket handles POST /v1/tickets. The purchase date defaults to
// now when omitted.
func (h *Handler) CreateTicket(c echo.Context) error {
	var t model.Ticket
	if err := c.Bind(&t); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	t.ID = 0
	t.CustomerName = strings.TrimSpace(t.CustomerName)

	fe, err := h.Tickets.Save(c.Request().Context(), &t)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create ticket"})
	}
	if fe != nil {
		return fieldError(c, fe)
	}
	return c.JSON(http.StatusCreated, echo.Map{"ticket": t, "total_price": t.TotalPrice()})
}

// GetTicket handles GET /v1/tickets/:id.
func (h *Handler) GetTicket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Tickets.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ticket":      t,
		"total_price": t.TotalPrice(),
		"date":        t.FormattedDate(),
	})
}

// UpdateTicket handles PUT /v1/tickets/:id. Changing movie_id moves the
// ticket to the new movie.
func (h *Handler) UpdateTicket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var t model.Ticket
	if err := c.Bind(&t); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	t.ID = id
	t.CustomerName = strings.TrimSpace(t.CustomerName)

	fe, err := h.Tickets.Save(c.Request().Context(), &t)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if fe != nil {
		return fieldError(c, fe)
	}
	return c.JSON(http.StatusOK, echo.Map{"ticket": t, "total_price": t.TotalPrice()})
}

// DeleteTicket handles DELETE /v1/tickets/:id.
func (h *Handler) DeleteTicket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Tickets.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
