package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gamevault/catalog-api/internal/api/metrics"
	"github.com/gamevault/catalog-api/internal/core/ports"
)

// GameHandler handles HTTP requests for the catalog resource.
type GameHandler struct {
	service ports.GameService
}

func NewGameHandler(service ports.GameService) *GameHandler {
	return &GameHandler{service: service}
}

// List returns every catalog entry.
//
// @Summary      List video games
// @Tags         games
// @Produce      json
// @Success      200  {array}   domain.Game
// @Failure      401  {object}  map[string]any
// @Router       /games [get]
func (h *GameHandler) List(c echo.Context) error {
	games, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, games)
}

// Get returns one catalog entry by id.
//
// @Summary      Get a video game
// @Tags         games
// @Produce      json
// @Param        id   path      string  true  "Game id"
// @Success      200  {object}  domain.Game
// @Failure      404  {object}  map[string]any
// @Router       /games/{id} [get]
func (h *GameHandler) Get(c echo.Context) error {
	game, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, game)
}

// Create adds a catalog entry.
//
// @Summary      Create a video game
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        body  body      gameRequest  true  "Game details"
// @Success      201   {object}  domain.Game
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /games [post]
func (h *GameHandler) Create(c echo.Context) error {
	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	game, err := h.service.Create(c.Request().Context(), ports.GameInput{
		Name:        req.Name,
		ReleaseDate: req.ReleaseDate,
		DevelopedBy: req.DevelopedBy,
		Genre:       req.Genre,
	})
	if err != nil {
		return err
	}

	metrics.GamesCreatedTotal.WithLabelValues(game.Genre).Inc()
	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/games/"+game.ID)
	return c.JSON(http.StatusCreated, game)
}

// Update overwrites a catalog entry.
//
// @Summary      Update a video game
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Game id"
// @Param        body  body      gameRequest  true  "Game details"
// @Success      200   {object}  domain.Game
// @Failure      404   {object}  map[string]any
// @Router       /games/{id} [put]
func (h *GameHandler) Update(c echo.Context) error {
	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	game, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.GameInput{
		Name:        req.Name,
		ReleaseDate: req.ReleaseDate,
		DevelopedBy: req.DevelopedBy,
		Genre:       req.Genre,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, game)
}

// Delete removes one catalog entry.
//
// @Summary      Delete a video game
// @Tags         games
// @Param        id  path  string  true  "Game id"
// @Success      204  "game deleted"
// @Failure      404  {object}  map[string]any
// @Router       /games/{id} [delete]
func (h *GameHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAll empties the catalog.
//
// @Summary      Delete all video games
// @Tags         games
// @Success      204  "catalog emptied"
// @Router       /games [delete]
func (h *GameHandler) DeleteAll(c echo.Context) error {
	if err := h.service.DeleteAll(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
