// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"cinema-management/internal/handler"
)

// RegisterRoutes wires every endpoint onto the provided Echo instance.
// The cache middleware is applied to the read-heavy collection GETs
// only; detail and mutating routes always hit the database.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, cache echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	genres := v1.Group("/genres")
	genres.GET("", h.ListGenres, cache)
	genres.POST("", h.CreateGenre)
	genres.GET("/:id", h.GetGenre)
	genres.PUT("/:id", h.UpdateGenre)
	genres.DELETE("/:id", h.DeleteGenre)

	movies := v1.Group("/movies")
	movies.GET("", h.ListMovies, cache)
	movies.POST("", h.CreateMovie)
	movies.GET("/:id", h.GetMovie)
	movies.PUT("/:id", h.UpdateMovie)
	movies.DELETE("/:id", h.DeleteMovie)

	tickets := v1.Group("/tickets")
	tickets.GET("", h.ListTickets, cache)
	tickets.POST("", h.CreateTicket)
	tickets.GET("/:id", h.GetTicket)
	tickets.PUT("/:id", h.UpdateTicket)
	tickets.DELETE("/:id", h.DeleteTicket)
}
