// Package web exposes the collection store over a JSON API for the
// presentation layer.
package web

import (
	"strconv"

	"gameshelf/core/logger"
	"gameshelf/feature/collection"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the read-only query endpoints.
type Handler struct {
	store  *collection.Store
	logger *zap.Logger
}

// NewHandler wires a handler.
func NewHandler(store *collection.Store, l *zap.Logger) *Handler {
	return &Handler{store: store, logger: l}
}

// Register mounts the routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.health)
	app.Get("/api/users", h.users)
	app.Get("/api/games", h.games)
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) users(c *fiber.Ctx) error {
	users, err := h.store.Users()
	if err != nil {
		logger.WithRayID(h.logger, c).Error("list users failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "query failed")
	}
	return c.JSON(fiber.Map{"users": users})
}

// games runs a store search built from query parameters:
//
//	owner, coop (true/false), expansions (include when true), maxTime,
//	maxWeight, players, playersMode (supports|recommended), name, sort,
//	dir (asc|desc), limit
func (h *Handler) games(c *fiber.Ctx) error {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	games, err := h.store.Search(criteria)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("search failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "query failed")
	}
	return c.JSON(fiber.Map{"games": games, "count": len(games)})
}

func criteriaFromQuery(c *fiber.Ctx) (collection.Criteria, error) {
	criteria := collection.Criteria{
		Owner:              c.Query("owner"),
		IncludeExpansions:  c.QueryBool("expansions"),
		MaxPlayTime:        c.QueryInt("maxTime"),
		NumPlayers:         c.QueryInt("players"),
		PlayersRecommended: c.Query("playersMode") == "recommended",
		Name:               c.Query("name"),
		SortBy:             c.Query("sort"),
		Ascending:          c.Query("dir") == "asc",
		Limit:              c.QueryInt("limit"),
	}
	if raw := c.Query("coop"); raw != "" {
		coop, err := strconv.ParseBool(raw)
		if err != nil {
			return criteria, err
		}
		criteria.Cooperative = &coop
	}
	if raw := c.Query("maxWeight"); raw != "" {
		weight, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, err
		}
		criteria.MaxWeight = weight
	}
	return criteria, nil
}
