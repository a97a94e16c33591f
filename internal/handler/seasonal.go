package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tsutsun/magicaltsutsunlist/internal/jikan"
)

// SeasonalHandler proxies the Jikan seasonal-anime feed, trimming the
// upstream payload down to what the frontend renders.
type SeasonalHandler struct {
	Client *jikan.Client
}

func NewSeasonalHandler(client *jikan.Client) *SeasonalHandler {
	return &SeasonalHandler{Client: client}
}

// Seasonal returns the animes of the current season.
func (h *SeasonalHandler) Seasonal(c echo.Context) error {
	animes, err := h.Client.SeasonNow(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error retrieving the seasonal animes"})
	}
	return c.JSON(http.StatusOK, animes)
}
